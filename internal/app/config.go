package app

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/sitebuilder-backend/internal/data/db"
	"github.com/yungbote/sitebuilder-backend/internal/http/middleware"
	"github.com/yungbote/sitebuilder-backend/internal/observability"
	"github.com/yungbote/sitebuilder-backend/internal/platform/envutil"
	"github.com/yungbote/sitebuilder-backend/internal/platform/logger"
)

type RedisConfig struct {
	Addr    string `yaml:"addr"`
	Channel string `yaml:"channel"`
}

type Config struct {
	HTTPAddr       string                   `yaml:"http_addr"`
	DB             db.Config                `yaml:"db"`
	JWTSecretKey   string                   `yaml:"jwt_secret_key"`
	AccessTokenTTL time.Duration            `yaml:"access_token_ttl"`
	AllowedOrigins []string                 `yaml:"cors_allowed_origins"`
	Redis          RedisConfig              `yaml:"redis"`
	Otel           observability.OtelConfig `yaml:"otel"`
	// SlowWrite is the aggregate write duration above which a warning is logged.
	SlowWrite time.Duration `yaml:"slow_write"`
}

func defaultConfig() Config {
	return Config{
		HTTPAddr: ":8080",
		DB: db.Config{
			Driver: db.DriverPostgres,
			Postgres: db.PostgresConfig{
				Host: "localhost",
				Port: "5432",
				User: "postgres",
				Name: "sitebuilder",
			},
			SQLitePath:    "sitebuilder.db",
			SlowThreshold: time.Second,
		},
		JWTSecretKey:   "defaultsecret",
		AccessTokenTTL: time.Hour,
		AllowedOrigins: middleware.DefaultAllowedOrigins,
		Redis:          RedisConfig{Channel: "sitebuilder.events"},
		Otel:           observability.OtelConfig{ServiceName: "sitebuilder"},
		SlowWrite:      500 * time.Millisecond,
	}
}

// LoadConfig layers defaults, the optional YAML file named by CONFIG_FILE,
// and environment variables, in that order.
func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := defaultConfig()
	if path := envutil.String("CONFIG_FILE", "", log); path != "" {
		if err := loadConfigFile(path, &cfg); err != nil {
			return Config{}, err
		}
		log.Info("Loaded config file", "path", path)
	}
	applyEnv(&cfg, log)
	if cfg.JWTSecretKey == "defaultsecret" {
		log.Warn("JWT_SECRET_KEY not set, using insecure default")
	}
	return cfg, nil
}

func loadConfigFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config, log *logger.Logger) {
	cfg.HTTPAddr = envutil.String("HTTP_ADDR", cfg.HTTPAddr, log)

	cfg.DB.Driver = envutil.String("DB_DRIVER", cfg.DB.Driver, log)
	cfg.DB.Postgres.Host = envutil.String("POSTGRES_HOST", cfg.DB.Postgres.Host, log)
	cfg.DB.Postgres.Port = envutil.String("POSTGRES_PORT", cfg.DB.Postgres.Port, log)
	cfg.DB.Postgres.User = envutil.String("POSTGRES_USER", cfg.DB.Postgres.User, log)
	cfg.DB.Postgres.Password = envutil.String("POSTGRES_PASSWORD", cfg.DB.Postgres.Password, log)
	cfg.DB.Postgres.Name = envutil.String("POSTGRES_NAME", cfg.DB.Postgres.Name, log)
	cfg.DB.Postgres.SSLMode = envutil.String("POSTGRES_SSLMODE", cfg.DB.Postgres.SSLMode, log)
	cfg.DB.SQLitePath = envutil.String("SQLITE_PATH", cfg.DB.SQLitePath, log)

	cfg.JWTSecretKey = envutil.String("JWT_SECRET_KEY", cfg.JWTSecretKey, log)
	cfg.AccessTokenTTL = envutil.Seconds("ACCESS_TOKEN_TTL", cfg.AccessTokenTTL, log)
	cfg.AllowedOrigins = envutil.List("CORS_ALLOWED_ORIGINS", cfg.AllowedOrigins, log)

	cfg.Redis.Addr = envutil.String("REDIS_ADDR", cfg.Redis.Addr, log)
	cfg.Redis.Channel = envutil.String("REDIS_CHANNEL", cfg.Redis.Channel, log)

	cfg.Otel.Enabled = envutil.Bool("OTEL_ENABLED", cfg.Otel.Enabled, log)
	cfg.Otel.ServiceName = envutil.String("OTEL_SERVICE_NAME", cfg.Otel.ServiceName, log)
	cfg.Otel.Environment = envutil.String("OTEL_ENVIRONMENT", cfg.Otel.Environment, log)
	cfg.Otel.Version = envutil.String("OTEL_SERVICE_VERSION", cfg.Otel.Version, log)
	cfg.Otel.Endpoint = envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Otel.Endpoint, log)
	cfg.Otel.Headers = envutil.String("OTEL_EXPORTER_OTLP_HEADERS", cfg.Otel.Headers, log)
	cfg.Otel.Insecure = envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", cfg.Otel.Insecure, log)
	if ratio := envutil.Int("OTEL_SAMPLE_PERCENT", -1, log); ratio >= 0 {
		cfg.Otel.SampleRatio = float64(ratio) / 100
	}
}
