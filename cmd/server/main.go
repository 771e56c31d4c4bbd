/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the leave accounting server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load environment config (.env supported)
  2. Initialize SQLite store
  3. Wire workflow services and API handler
  4. Configure HTTP router
  5. Optionally start the year-end scheduler
  6. Start server with graceful shutdown

CONFIGURATION:
  Via environment variables, see config/config.go:
  APP_PORT, DB_PATH, DEFAULT_COUNTRY_CODE, LOG_LEVEL,
  YEAREND_SCHEDULER, YEAREND_CHECK_INTERVAL

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Stop the scheduler
  4. Close database connection
  5. Exit

EXAMPLES:
  # Run with file database
  DB_PATH=./data/leave.db ./server

  # Run with in-memory database on another port
  DB_PATH=":memory:" APP_PORT=3000 ./server

SEE ALSO:
  - config/config.go: environment config
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cderinbogaz/zeitpal-sub001/api"
	"github.com/cderinbogaz/zeitpal-sub001/config"
	"github.com/cderinbogaz/zeitpal-sub001/store/sqlite"
	"github.com/cderinbogaz/zeitpal-sub001/workflow"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})).With(slog.String("app", "leave-engine"))
	slog.SetDefault(logger)

	// Initialize store
	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Wire services
	requests := workflow.NewRequestService(store, logger)
	yearEnd := workflow.NewYearEndService(store, logger)
	onboarding := workflow.NewOnboardingService(store, logger)
	handler := api.NewHandler(store, requests, yearEnd, onboarding)

	router := api.NewRouter(handler, logger)

	// Background year-end batch, off by default
	scheduler := api.NewYearEndScheduler(yearEnd, logger)
	scheduler.Enabled = cfg.Scheduler.Enabled
	scheduler.CheckInterval = cfg.Scheduler.CheckInterval
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server starting", slog.String("addr", cfg.Addr()))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("server stopped")
}
