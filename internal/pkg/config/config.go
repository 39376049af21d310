package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/V4T54L/seamline/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	LogLevel             string        `env:"LOG_LEVEL" envDefault:"info"`
	PostgresURL          string        `env:"POSTGRES_URL,required"`
	RedisAddr            string        `env:"REDIS_ADDR,required"`
	BatchRefreshInterval time.Duration `env:"BATCH_REFRESH_INTERVAL" envDefault:"1h"`
	SpeedConcurrency     int           `env:"SPEED_LOOKUP_CONCURRENCY" envDefault:"8"`
	QueryServerAddr      string        `env:"QUERY_SERVER_ADDR" envDefault:":8080"`
	AdminServerAddr      string        `env:"ADMIN_SERVER_ADDR" envDefault:":9091"`
}

// Load reads configuration from environment variables and validates it.
// An invalid batch cadence is a startup failure, never a per-query one.
func Load() (*Config, error) {
	// Attempt to load .env file for local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if cfg.BatchRefreshInterval <= 0 {
		return nil, fmt.Errorf("%w: batch refresh interval must be positive, got %s",
			domain.ErrConfiguration, cfg.BatchRefreshInterval)
	}
	if cfg.BatchRefreshInterval%domain.BucketWidth != 0 {
		return nil, fmt.Errorf("%w: batch refresh interval %s is not a whole multiple of the %s bucket width",
			domain.ErrConfiguration, cfg.BatchRefreshInterval, domain.BucketWidth)
	}

	return cfg, nil
}
