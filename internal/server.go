package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"gorm.io/gorm"

	"github.com/2beens/eridanus/internal/activities"
	"github.com/2beens/eridanus/internal/admin"
	"github.com/2beens/eridanus/internal/auth"
	"github.com/2beens/eridanus/internal/cache"
	"github.com/2beens/eridanus/internal/config"
	"github.com/2beens/eridanus/internal/dashboard"
	"github.com/2beens/eridanus/internal/db"
	"github.com/2beens/eridanus/internal/middleware"
	"github.com/2beens/eridanus/internal/store"
	"github.com/2beens/eridanus/internal/telemetry/metrics"
	"github.com/2beens/eridanus/internal/telemetry/tracing"
	"github.com/2beens/eridanus/internal/web"
	"github.com/2beens/eridanus/internal/weighing"
	"github.com/2beens/eridanus/pkg"
)

const maxRequestBodyBytes = 1 << 20

type activityStore interface {
	Create(ctx context.Context, activity activities.Activity) (*activities.Activity, error)
	Read(ctx context.Context, id int64) (*activities.Activity, error)
	Update(ctx context.Context, patch activities.Patch) (*activities.Activity, error)
	Delete(ctx context.Context, id int64) (bool, error)
	FetchByUsername(ctx context.Context, nickname string, order []store.Order) ([]activities.Activity, error)
}

type weighingStore interface {
	Create(ctx context.Context, weight weighing.Weight) (*weighing.Weight, error)
	Read(ctx context.Context, id int64) (*weighing.Weight, error)
	Update(ctx context.Context, patch weighing.Patch) (*weighing.Weight, error)
	Delete(ctx context.Context, id int64) (bool, error)
	FetchByUsername(ctx context.Context, nickname string, order []store.Order) ([]weighing.Weight, error)
}

// stores groups the repositories of one store driver with its request sessions.
type stores struct {
	sessions   db.Sessions
	activities map[activities.Kind]activityStore
	weighings  weighingStore
}

func postgresStores(pool *pgxpool.Pool) stores {
	s := stores{
		sessions:   db.NewPoolSessions(pool),
		activities: make(map[activities.Kind]activityStore, len(activities.Kinds)),
		weighings:  weighing.NewRepo(pool),
	}
	for _, kind := range activities.Kinds {
		s.activities[kind] = activities.NewRepo(pool, kind)
	}
	return s
}

func gormStores(gdb *gorm.DB) stores {
	s := stores{
		sessions:   db.NewGormSessions(gdb),
		activities: make(map[activities.Kind]activityStore, len(activities.Kinds)),
		weighings:  weighing.NewGormRepo(gdb),
	}
	for _, kind := range activities.Kinds {
		s.activities[kind] = activities.NewGormRepo(gdb, kind)
	}
	return s
}

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server

	config         *config.Config
	dbPool         *pgxpool.Pool
	gormDB         *gorm.DB
	stores         stores
	redisClient    *redis.Client
	dashboardCache cache.Cache
	importSource   admin.BlobSource
	gate           *auth.Gate
	renderer       *web.Renderer

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("new renderer: %w", err)
	}

	s := &Server{
		config:       cfg,
		renderer:     renderer,
		gate:         auth.NewGate(cfg.Env.AllowedUserEmail, cfg.Env.DevUserEmail, cfg.IsDevelopment()),
		otelShutdown: func() {},
	}
	if cfg.Env.AllowedUserEmail == "" {
		log.Errorf("allowed user email not set, use ALLOWED_USER_EMAIL; every request will be rejected")
	}

	var collectors []prometheus.Collector
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:         cfg.PostgresHost,
			DBPort:         cfg.PostgresPort,
			DBName:         cfg.PostgresDBName,
			DBUser:         cfg.PostgresUser,
			DBPassword:     cfg.Env.PostgresPassword,
			TracingEnabled: params.HoneycombTracingEnabled,
		})
		if err != nil {
			return nil, fmt.Errorf("new db pool: %w", err)
		}
		if err := dbPool.Ping(ctx); err != nil {
			log.Warnf("failed to ping db: %s", err)
		}
		if err := db.Migrate(ctx, dbPool); err != nil {
			return nil, err
		}

		s.dbPool = dbPool
		s.stores = postgresStores(dbPool)
		collectors = append(collectors, pgxpoolprometheus.NewCollector(
			dbPool,
			map[string]string{"db_name": cfg.PostgresDBName},
		))
	case config.StoreDriverSQLite:
		gormDB, err := db.OpenSQLite(cfg.SQLitePath, &activities.Row{}, &weighing.Row{})
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		s.gormDB = gormDB
		s.stores = gormStores(gormDB)
	}

	s.promRegistry = metrics.SetupPrometheus(collectors...)
	s.metricsManager = metrics.NewManager("eridanus", "main", s.promRegistry)
	s.metricsManager.GaugeLifeSignal.Set(0)

	if cfg.RedisHost != "" {
		s.redisClient = redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password: cfg.Env.RedisPassword,
			DB:       0, // use default DB
		})
		rdbStatus := s.redisClient.Ping(ctx)
		if err := rdbStatus.Err(); err != nil {
			log.Errorf("--> failed to ping redis: %s", err)
		} else {
			log.Debugf("redis ping: %s", rdbStatus.Val())
		}
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "eridanus", s.redisClient)
	if err != nil {
		return nil, err
	}
	s.otelShutdown = otelShutdown

	cacheTTL := time.Duration(cfg.DashboardCacheTTLSec) * time.Second
	switch cfg.DashboardCache {
	case config.DashboardCacheRedis:
		if s.redisClient == nil {
			return nil, errors.New("redis dashboard cache requires redis_host")
		}
		s.dashboardCache = cache.NewRedisCache(s.redisClient, "eridanus::", cacheTTL)
	case config.DashboardCacheMemory:
		s.dashboardCache = cache.NewMemoryCache(16, cacheTTL)
	default:
		s.dashboardCache = cache.NoopCache{}
	}

	switch cfg.ImportSource {
	case config.ImportSourceGCS:
		gcsSource, err := admin.NewGCSSource(ctx, cfg.Env.ImportBucket())
		if err != nil {
			log.Errorf("import source: %s; imports will fail until a bucket is configured", err)
		} else {
			s.importSource = gcsSource
		}
	case config.ImportSourceDisk:
		if exists, err := pkg.PathExists(cfg.ImportDiskRoot, true); err != nil || !exists {
			log.Warnf("import root %s not usable (exists: %t, err: %v)", cfg.ImportDiskRoot, exists, err)
		}
		s.importSource = admin.NewDiskSource(cfg.ImportDiskRoot)
	}
	if s.importSource != nil {
		log.Debugf("importing from %s", s.importSource)
	}

	return s, nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("eridanus-router"))

	dashboardService := dashboard.NewService(
		s.stores.activities[activities.KindRunning],
		s.stores.weighings,
		s.dashboardCache,
		s.metricsManager,
	)
	dashboardHandler := dashboard.NewHandler(dashboardService, s.renderer)
	r.HandleFunc("/", dashboard.HandleRedirectHome).Methods("GET").Name("root")
	r.HandleFunc("/home", dashboard.HandleRedirectHome).Methods("GET").Name("home")
	r.HandleFunc("/dashboard/", dashboardHandler.HandleDashboard).Methods("GET").Name("dashboard")

	activitiesHandler := activities.NewHandler(s.renderer, dashboardService, s.metricsManager)
	for kind, repo := range s.stores.activities {
		activitiesHandler.Register(kind, repo)
	}
	r.HandleFunc("/activities/{kind}/", activitiesHandler.HandleList).Methods("GET").Name("activities-list")
	r.HandleFunc("/activities/{kind}/list/", activitiesHandler.HandleList).Methods("GET").Name("activities-list-alias")
	r.HandleFunc("/activities/{kind}/create/", activitiesHandler.HandleCreateForm).Methods("GET").Name("activities-create-form")
	r.HandleFunc("/activities/{kind}/create/", activitiesHandler.HandleCreate).Methods("POST").Name("activities-create")
	r.HandleFunc("/activities/{kind}/edit/{id:[0-9]+}/", activitiesHandler.HandleEditForm).Methods("GET").Name("activities-edit-form")
	r.HandleFunc("/activities/{kind}/edit/{id:[0-9]+}/", activitiesHandler.HandleUpdate).Methods("POST").Name("activities-update")
	r.HandleFunc("/activities/{kind}/{id:[0-9]+}/delete/", activitiesHandler.HandleDelete).Methods("POST").Name("activities-delete")

	weighingHandler := weighing.NewHandler(s.stores.weighings, s.renderer, dashboardService, s.metricsManager)
	r.HandleFunc("/weighings/", weighingHandler.HandleList).Methods("GET").Name("weighings-list")
	r.HandleFunc("/weighings/list/", weighingHandler.HandleList).Methods("GET").Name("weighings-list-alias")
	r.HandleFunc("/weighings/create/", weighingHandler.HandleCreateForm).Methods("GET").Name("weighings-create-form")
	r.HandleFunc("/weighings/create/", weighingHandler.HandleCreate).Methods("POST").Name("weighings-create")
	r.HandleFunc("/weighings/edit/{id:[0-9]+}/", weighingHandler.HandleEditForm).Methods("GET").Name("weighings-edit-form")
	r.HandleFunc("/weighings/edit/{id:[0-9]+}/", weighingHandler.HandleUpdate).Methods("POST").Name("weighings-update")
	r.HandleFunc("/weighings/{id:[0-9]+}/delete/", weighingHandler.HandleDelete).Methods("POST").Name("weighings-delete")

	runs := s.stores.activities[activities.KindRunning]
	importSource := s.importSource
	if importSource == nil {
		importSource = unavailableSource{}
	}
	adminHandler := admin.NewHandler(
		runs,
		admin.NewExporter(runs, s.stores.weighings),
		admin.NewImporter(runs, s.stores.weighings, importSource, s.metricsManager),
		s.renderer,
		dashboardService,
	)
	adminRouter := r.PathPrefix("/admin").Subrouter()
	adminRouter.HandleFunc("/", adminHandler.HandleIndex).Methods("GET").Name("admin")
	adminRouter.HandleFunc("/export/{format}/", adminHandler.HandleExport).Methods("GET").Name("admin-export")
	adminRouter.HandleFunc("/import/{folder}", adminHandler.HandleImport).Methods("GET").Name("admin-import")
	adminRouter.HandleFunc("/backfill-speed/", adminHandler.HandleBackfillSpeed).Methods("POST").Name("admin-backfill-speed")
	if s.redisClient != nil {
		adminRouter.Use(middleware.RateLimit(
			redis_rate.NewLimiter(s.redisClient),
			"admin",
			s.config.AdminRateLimitAllowedPerMin,
			s.metricsManager,
		))
	}

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.DrainAndCloseRequest(maxRequestBodyBytes))
	r.Use(middleware.AuthCheck(s.gate, s.metricsManager))
	r.Use(middleware.StoreSession(s.stores.sessions))

	// all the rest - unhandled paths; router middlewares do not run here
	r.NotFoundHandler = middleware.PanicRecovery(s.metricsManager)(
		middleware.AuthCheck(s.gate, s.metricsManager)(
			http.HandlerFunc(s.renderer.NotFound),
		),
	)

	return r, nil
}

func (s *Server) Serve(host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	// stop taking requests before the stores below go away
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if s.gormDB != nil {
		if sqlDB, err := s.gormDB.DB(); err != nil {
			log.Errorf("get sqlite db: %s", err)
		} else if err := sqlDB.Close(); err != nil {
			log.Errorf("close sqlite db: %s", err)
		}
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeOpenConnections.Add(1)
	case http.StateClosed, http.StateHijacked:
		s.metricsManager.GaugeOpenConnections.Add(-1)
	default:
		// do nothing
	}
}

// unavailableSource answers every import while no bucket is configured.
type unavailableSource struct{}

func (unavailableSource) Read(context.Context, string) ([]byte, error) {
	return nil, errors.New("import source not configured, set BUCKET_NAME or GOOGLE_CLOUD_PROJECT")
}

func (unavailableSource) String() string {
	return "unconfigured"
}
