/*
config.go - Environment-based configuration

PURPOSE:
  Loads server configuration from the environment, with an optional .env
  file for local development. Every knob has a sensible default so the
  binary runs with zero configuration.

VARIABLES:
  APP_PORT                 HTTP port (default 8080)
  DB_PATH                  SQLite database file (default timeoff.db)
  DEFAULT_COUNTRY_CODE     Jurisdiction fallback for new employees (DE)
  LOG_LEVEL                debug | info | warn | error (default info)
  YEAREND_SCHEDULER        "true" to run the background year-end batch
  YEAREND_CHECK_INTERVAL   Go duration, e.g. "1h" (default 1h)

SEE ALSO:
  - cmd/server/main.go: consumes this config at startup
*/
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all server settings.
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Scheduler SchedulerConfig
}

// AppConfig holds HTTP and logging settings.
type AppConfig struct {
	Port               int
	LogLevel           string
	DefaultCountryCode string
}

// DatabaseConfig holds storage settings.
type DatabaseConfig struct {
	Path string
}

// SchedulerConfig controls the background year-end batch.
type SchedulerConfig struct {
	Enabled       bool
	CheckInterval time.Duration
}

// Load reads configuration from the environment. A .env file is applied
// first when present; a missing file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	interval, err := time.ParseDuration(getEnv("YEAREND_CHECK_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid YEAREND_CHECK_INTERVAL: %w", err)
	}

	return &Config{
		App: AppConfig{
			Port:               port,
			LogLevel:           getEnv("LOG_LEVEL", "info"),
			DefaultCountryCode: getEnv("DEFAULT_COUNTRY_CODE", "DE"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "timeoff.db"),
		},
		Scheduler: SchedulerConfig{
			Enabled:       getEnv("YEAREND_SCHEDULER", "false") == "true",
			CheckInterval: interval,
		},
	}, nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

// SlogLevel maps the configured log level to a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch c.App.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
