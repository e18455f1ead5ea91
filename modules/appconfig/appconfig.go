package appconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"profile-service/modules/db/postgres"
	"profile-service/modules/db/redis"
	"profile-service/modules/middleware/ratelimit"
	"profile-service/modules/telemetry"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type (
	Config struct {
		Env  string `env:"ENV"  envDefault:"dev"`
		Host string `env:"HOST" envDefault:"0.0.0.0"`
		Port int    `env:"PORT" envDefault:"3002"`

		// DATABASE_URL wins over the discrete POSTGRES_PRIMARY_* settings.
		DatabaseURL string `env:"DATABASE_URL"`

		HTTP HTTPConfig `envPrefix:"HTTP_"`
		Log  LogConfig  `envPrefix:"LOG_"`

		// --- core infra ----
		Postgres postgres.PostgresConfig `envPrefix:"POSTGRES_"`
		Redis    redis.RedisConfig       `envPrefix:"REDIS_"`

		// --- middlewares ----
		RateLimit ratelimit.Config `envPrefix:"RATE_LIMIT_"`
		CORS      CORSConfig       `envPrefix:"CORS_"`

		// --- otel ----
		// OTEL_* names are standardised, so no prefix here
		Otel telemetry.Config
	}

	HTTPConfig struct {
		ReadTimeout     time.Duration `env:"READ_TIMEOUT"     envDefault:"10s"`
		WriteTimeout    time.Duration `env:"WRITE_TIMEOUT"    envDefault:"10s"`
		IdleTimeout     time.Duration `env:"IDLE_TIMEOUT"     envDefault:"60s"`
		ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	}

	LogConfig struct {
		Level  string `env:"LEVEL"  envDefault:"info"`
		Format string `env:"FORMAT" envDefault:"text"`
	}

	CORSConfig struct {
		AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"*"`
	}
)

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("appconfig: load .env: %w", err)
	}
	return Parse(env.Options{})
}

// Parse builds the config from opts; set opts.Environment to parse a fixed map.
func Parse(opts env.Options) (*Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return nil, fmt.Errorf("appconfig: parse: %w", err)
	}

	if cfg.Postgres.URL == "" {
		cfg.Postgres.URL = cfg.DatabaseURL
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(c *Config) error {
	var errs []error
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d out of range", c.Port))
	}
	if c.Postgres.URL == "" && c.Postgres.WriteConfig.Database == "" {
		errs = append(errs, errors.New("either DATABASE_URL or POSTGRES_PRIMARY_DATABASE is required"))
	}
	if _, err := c.Log.level(); err != nil {
		errs = append(errs, err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.Log.Format))
	}
	if err := c.RateLimit.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("appconfig: %w", errors.Join(errs...))
	}
	return nil
}
