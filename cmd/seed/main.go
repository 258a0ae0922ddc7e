// Command seed fills a development store with fake activities and weighings
// of the dev user, or backfills the speed of stored runs.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/2beens/eridanus/internal/activities"
	"github.com/2beens/eridanus/internal/admin"
	"github.com/2beens/eridanus/internal/auth"
	"github.com/2beens/eridanus/internal/config"
	"github.com/2beens/eridanus/internal/db"
	"github.com/2beens/eridanus/internal/logging"
	"github.com/2beens/eridanus/internal/store"
	"github.com/2beens/eridanus/internal/weighing"

	"github.com/brianvoe/gofakeit/v6"
	log "github.com/sirupsen/logrus"
)

type activityStore interface {
	Create(ctx context.Context, activity activities.Activity) (*activities.Activity, error)
	Update(ctx context.Context, patch activities.Patch) (*activities.Activity, error)
	FetchByUsername(ctx context.Context, nickname string, order []store.Order) ([]activities.Activity, error)
}

type weighingStore interface {
	Create(ctx context.Context, weight weighing.Weight) (*weighing.Weight, error)
}

func main() {
	env := flag.String("env", "development", "environment [dev | development | prod | production]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	perKind := flag.Int("per-kind", 40, "number of fake records per activity kind")
	weighings := flag.Int("weighings", 30, "number of fake weighings")
	seed := flag.Int64("seed", 0, "faker seed, 0 for a random one")
	backfillSpeed := flag.Bool("backfill-speed", false, "only store the derived speed on runs lacking it")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.Load(ctx, *env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogToStdout: true,
		LogLevel:    cfg.LogLevel,
		Environment: cfg.Environment,
	})

	email := cfg.Env.DevUserEmail
	if email == "" {
		email = cfg.Env.AllowedUserEmail
	}
	if email == "" {
		log.Fatalln("no user to seed for, set DEV_USER_EMAIL or ALLOWED_USER_EMAIL")
	}
	nickname := auth.NicknameFromEmail(email)

	runs, activityStores, weights, closeStore, err := openStores(ctx, cfg)
	if err != nil {
		log.Fatalf("open store: %s", err)
	}
	defer closeStore()

	if *backfillSpeed {
		updated, err := admin.BackfillSpeed(ctx, runs, nickname)
		if err != nil {
			log.Fatalf("backfill speed: %s", err)
		}
		log.Printf("speed stored on %d runs of %s", updated, nickname)
		return
	}

	if !cfg.IsDevelopment() {
		log.Fatalln("refusing to seed fake data outside development")
	}

	faker := gofakeit.New(*seed)
	now := time.Now()
	for _, kind := range activities.Kinds {
		created := 0
		for _, activity := range fakeActivities(faker, kind, nickname, *perKind, now) {
			if _, err := activityStores[kind].Create(ctx, activity); err != nil {
				log.Fatalf("create %s: %s", kind, err)
			}
			created++
		}
		log.Printf("%d %s activities seeded for %s", created, kind, nickname)
	}

	for _, w := range fakeWeighings(faker, nickname, *weighings, faker.Float64Range(70, 95), now) {
		if _, err := weights.Create(ctx, w); err != nil {
			log.Fatalf("create weighing: %s", err)
		}
	}
	log.Printf("%d weighings seeded for %s", *weighings, nickname)
}

func openStores(ctx context.Context, cfg *config.Config) (activityStore, map[activities.Kind]activityStore, weighingStore, func(), error) {
	byKind := make(map[activities.Kind]activityStore, len(activities.Kinds))

	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		pool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:     cfg.PostgresHost,
			DBPort:     cfg.PostgresPort,
			DBName:     cfg.PostgresDBName,
			DBUser:     cfg.PostgresUser,
			DBPassword: cfg.Env.PostgresPassword,
		})
		if err != nil {
			return nil, nil, nil, nil, err
		}
		if err := db.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, nil, nil, err
		}
		for _, kind := range activities.Kinds {
			byKind[kind] = activities.NewRepo(pool, kind)
		}
		return byKind[activities.KindRunning], byKind, weighing.NewRepo(pool), pool.Close, nil
	case config.StoreDriverSQLite:
		gormDB, err := db.OpenSQLite(cfg.SQLitePath, &activities.Row{}, &weighing.Row{})
		if err != nil {
			return nil, nil, nil, nil, err
		}
		for _, kind := range activities.Kinds {
			byKind[kind] = activities.NewGormRepo(gormDB, kind)
		}
		closeDB := func() {
			if sqlDB, err := gormDB.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return byKind[activities.KindRunning], byKind, weighing.NewGormRepo(gormDB), closeDB, nil
	default:
		return nil, nil, nil, nil, fmt.Errorf("unknown store driver: %s", cfg.StoreDriver)
	}
}
