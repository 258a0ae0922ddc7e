package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sethvargo/go-envconfig"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"

	DashboardCacheRedis  = "redis"
	DashboardCacheMemory = "memory"
	DashboardCacheNone   = "none"

	ImportSourceGCS  = "gcs"
	ImportSourceDisk = "disk"
)

type Config struct {
	Environment string `toml:"-"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// storage
	StoreDriver    string `toml:"store_driver"`
	SQLitePath     string `toml:"sqlite_path"`
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`
	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// dashboard
	DashboardCache       string `toml:"dashboard_cache"`
	DashboardCacheTTLSec int    `toml:"dashboard_cache_ttl_sec"`
	// admin
	AdminRateLimitAllowedPerMin int    `toml:"admin_rate_limit_allowed_per_min"`
	ImportSource                string `toml:"import_source"`
	ImportDiskRoot              string `toml:"import_disk_root"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	Env EnvVars `toml:"-"`
}

// EnvVars holds secrets and deployment specific values, never kept in the TOML file.
type EnvVars struct {
	AllowedUserEmail   string `env:"ALLOWED_USER_EMAIL"`
	DevUserEmail       string `env:"DEV_USER_EMAIL"`
	SentryDSN          string `env:"SENTRY_DSN"`
	RedisPassword      string `env:"REDIS_PASSWORD"`
	PostgresPassword   string `env:"POSTGRES_PASSWORD"`
	BucketName         string `env:"BUCKET_NAME"`
	GoogleCloudProject string `env:"GOOGLE_CLOUD_PROJECT"`
	HoneycombEnabled   bool   `env:"HONEYCOMB_ENABLED, default=false"`
}

// ImportBucket resolves the bucket used for CSV imports: BUCKET_NAME first,
// then the project's default app engine bucket. Empty when neither is set.
func (e EnvVars) ImportBucket() string {
	if e.BucketName != "" {
		return e.BucketName
	}
	if e.GoogleCloudProject != "" {
		return e.GoogleCloudProject + ".appspot.com"
	}
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
		if cfg != nil {
			cfg.Environment = "development"
		}
	case "prod", "production":
		cfg = t.Production
		if cfg != nil {
			cfg.Environment = "production"
		}
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("config section for env %s missing", env)
	}
	return cfg, nil
}

// Load reads the TOML file, picks the section for env and overlays the environment variables.
func Load(ctx context.Context, env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode toml config %s: %w", path, err)
	}
	return fromToml(ctx, &t, env, envconfig.OsLookuper())
}

func fromToml(ctx context.Context, t *Toml, env string, lookuper envconfig.Lookuper) (*Config, error) {
	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}

	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg.Env,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("process env vars: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.StoreDriver == "" {
		c.StoreDriver = StoreDriverPostgres
	}
	if c.PostgresUser == "" {
		c.PostgresUser = "postgres"
	}
	if c.DashboardCache == "" {
		c.DashboardCache = DashboardCacheNone
	}
	if c.DashboardCacheTTLSec <= 0 {
		c.DashboardCacheTTLSec = 300
	}
	if c.ImportSource == "" {
		c.ImportSource = ImportSourceGCS
	}
	if c.AdminRateLimitAllowedPerMin <= 0 {
		c.AdminRateLimitAllowedPerMin = 10
	}
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case StoreDriverPostgres:
	case StoreDriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("sqlite store driver requires sqlite_path")
		}
	default:
		return fmt.Errorf("unknown store driver: %s", c.StoreDriver)
	}

	switch c.DashboardCache {
	case DashboardCacheRedis, DashboardCacheMemory, DashboardCacheNone:
	default:
		return fmt.Errorf("unknown dashboard cache: %s", c.DashboardCache)
	}

	switch c.ImportSource {
	case ImportSourceGCS:
	case ImportSourceDisk:
		if c.ImportDiskRoot == "" {
			return fmt.Errorf("disk import source requires import_disk_root")
		}
	default:
		return fmt.Errorf("unknown import source: %s", c.ImportSource)
	}

	return nil
}
