package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"catalog_writer/internal/domain"
)

// Runner is the pipeline as seen by the driving loop.
type Runner interface {
	Scan(ctx context.Context) (*domain.ScanStats, error)
	ProcessBatch(ctx context.Context) (*domain.BatchStats, error)
}

type Config struct {
	ScanInterval    time.Duration
	ProcessInterval time.Duration
	CycleTimeout    time.Duration
}

type Scheduler struct {
	runner Runner
	cfg    Config
	logger *slog.Logger
}

func NewScheduler(runner Runner, cfg Config, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		runner: runner,
		cfg:    cfg,
		logger: logger.With("component", "scheduler"),
	}
}

// Start runs one scan and one batch right away, then keeps both on their own
// tickers until ctx is done. Operation errors never stop the loop.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started",
		"scan_interval", s.cfg.ScanInterval,
		"process_interval", s.cfg.ProcessInterval,
	)

	s.runScan(ctx)
	s.runBatch(ctx)

	scanTicker := time.NewTicker(s.cfg.ScanInterval)
	defer scanTicker.Stop()
	processTicker := time.NewTicker(s.cfg.ProcessInterval)
	defer processTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-scanTicker.C:
			s.runScan(ctx)
		case <-processTicker.C:
			s.runBatch(ctx)
		}
	}
}

func (s *Scheduler) runScan(ctx context.Context) {
	cycleCtx, cancel := s.cycle(ctx)
	defer cancel()

	if _, err := s.runner.Scan(cycleCtx); err != nil {
		s.report("scan", err)
	}
}

func (s *Scheduler) runBatch(ctx context.Context) {
	cycleCtx, cancel := s.cycle(ctx)
	defer cancel()

	if _, err := s.runner.ProcessBatch(cycleCtx); err != nil {
		s.report("batch", err)
	}
}

func (s *Scheduler) cycle(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.CycleTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.cfg.CycleTimeout)
}

func (s *Scheduler) report(op string, err error) {
	switch {
	case errors.Is(err, domain.ErrPaused):
		s.logger.Info("skipped, system is paused", "operation", op)
	case errors.Is(err, domain.ErrBusy):
		s.logger.Info("skipped, another run holds the lock", "operation", op)
	default:
		s.logger.Error("run failed", "operation", op, "error", err)
	}
}
