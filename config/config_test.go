package config_test

import (
	"log/slog"
	"testing"

	"github.com/cderinbogaz/zeitpal-sub001/config"
)

func TestLoad_Defaults(t *testing.T) {
	// GIVEN an empty environment
	// WHEN loading the config
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// THEN every knob has its default
	if cfg.App.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.App.Port)
	}
	if cfg.Database.Path != "timeoff.db" {
		t.Errorf("db path = %q", cfg.Database.Path)
	}
	if cfg.App.DefaultCountryCode != "DE" {
		t.Errorf("country = %q", cfg.App.DefaultCountryCode)
	}
	if cfg.Scheduler.Enabled {
		t.Error("scheduler should default to disabled")
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("addr = %q", cfg.Addr())
	}
}

func TestLoad_Overrides(t *testing.T) {
	// GIVEN overridden environment variables
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DB_PATH", "/tmp/leave.db")
	t.Setenv("YEAREND_SCHEDULER", "true")
	t.Setenv("LOG_LEVEL", "debug")

	// WHEN loading the config
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// THEN the overrides win
	if cfg.App.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.App.Port)
	}
	if cfg.Database.Path != "/tmp/leave.db" {
		t.Errorf("db path = %q", cfg.Database.Path)
	}
	if !cfg.Scheduler.Enabled {
		t.Error("scheduler should be enabled")
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("log level = %v, want debug", cfg.SlogLevel())
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	// GIVEN a non-numeric port
	t.Setenv("APP_PORT", "not-a-port")

	// WHEN loading the config
	_, err := config.Load()

	// THEN it is rejected
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}
