/*
scheduler.go - Automated year-end scheduler

PURPOSE:
  Periodically checks whether the previous calendar year still has
  employees with an unclosed balance and runs the year-end batch for
  them automatically.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Only looks at the previous calendar year; older years are closed
    manually via POST /api/admin/yearend
  - The batch itself is idempotent (run markers), so overlapping
    triggers are harmless

CONFIGURATION:
  - CheckInterval: How often to check (default: 1 hour)
  - Enabled: Whether scheduler is active (default: false; opt in via
    the YEAREND_SCHEDULER environment variable)

USAGE:
  scheduler := NewYearEndScheduler(yearEndService, logger)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - handlers.go: TriggerYearEnd endpoint (manual batch)
  - workflow/yearend.go: the batch this scheduler drives
*/
package api

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cderinbogaz/zeitpal-sub001/workflow"
)

// YearEndScheduler closes the previous calendar year in the background.
type YearEndScheduler struct {
	YearEnd       *workflow.YearEndService
	CheckInterval time.Duration
	Enabled       bool

	logger *slog.Logger
	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewYearEndScheduler creates a new scheduler.
func NewYearEndScheduler(yearEnd *workflow.YearEndService, logger *slog.Logger) *YearEndScheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &YearEndScheduler{
		YearEnd:       yearEnd,
		CheckInterval: 1 * time.Hour,
		logger:        logger,
		stop:          make(chan struct{}),
	}
}

// Start begins the scheduler.
func (s *YearEndScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.Enabled {
		s.logger.Info("year-end scheduler disabled, not starting")
		return
	}

	s.ticker = time.NewTicker(s.CheckInterval)
	s.wg.Add(1)
	go s.run()

	s.logger.Info("year-end scheduler started", slog.Duration("interval", s.CheckInterval))
}

// Stop stops the scheduler and waits for an in-flight batch to finish.
func (s *YearEndScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ticker != nil {
		s.ticker.Stop()
		close(s.stop)
		s.wg.Wait()
		s.logger.Info("year-end scheduler stopped")
	}
}

func (s *YearEndScheduler) run() {
	defer s.wg.Done()

	// Run immediately on start
	s.checkAndProcess()

	for {
		select {
		case <-s.ticker.C:
			s.checkAndProcess()
		case <-s.stop:
			return
		}
	}
}

func (s *YearEndScheduler) checkAndProcess() {
	ctx := context.Background()
	previousYear := time.Now().UTC().Year() - 1

	report, err := s.YearEnd.ProcessYear(ctx, previousYear)
	if err != nil {
		s.logger.Error("scheduled year-end batch failed",
			slog.Int("year", previousYear),
			slog.String("error", err.Error()))
		return
	}

	if report.Processed > 0 || report.Failed > 0 {
		s.logger.Info("scheduled year-end batch completed",
			slog.Int("year", report.Year),
			slog.Int("processed", report.Processed),
			slog.Int("skipped", report.Skipped),
			slog.Int("failed", report.Failed))
	}
}

// RunNow triggers an immediate check (for testing/admin).
func (s *YearEndScheduler) RunNow() {
	s.checkAndProcess()
}
