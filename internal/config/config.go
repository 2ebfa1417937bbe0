package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config contains server configuration parameters.
type Config struct {
	ServerPort string        `env:"SERVER_PORT" envDefault:"8080"`
	DBHost     string        `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string        `env:"DB_PORT" envDefault:"5432"`
	DBUser     string        `env:"DB_USER" envDefault:"orbit"`
	DBPassword string        `env:"DB_PASSWORD" envDefault:"orbit_dev_password"`
	DBName     string        `env:"DB_NAME" envDefault:"orbit"`
	JWTSecret  string        `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	TokenTTL   time.Duration `env:"TOKEN_TTL" envDefault:"2h"`
	LogLevel   int           `env:"LOG_LEVEL" envDefault:"0"`

	// Per-IP limit on signup/login attempts.
	AuthRatePerMinute int `env:"AUTH_RATE_PER_MINUTE" envDefault:"5"`
	AuthRateBurst     int `env:"AUTH_RATE_BURST" envDefault:"5"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// DSN builds the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}
