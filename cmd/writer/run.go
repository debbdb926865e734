package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"catalog_writer/internal/api"
	"catalog_writer/internal/scheduler"
	"catalog_writer/internal/storage/postgres"
)

func newRunCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Apply migrations, then run the scheduler and the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger := opts.cfg, opts.logger

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, cfg, logger)
			if err != nil {
				logger.Error("failed to initialize", "error", err)
				return err
			}
			defer a.Close()

			if err := postgres.Migrate(a.db.DB); err != nil {
				logger.Error("failed to migrate database", "error", err)
				return err
			}

			sched := scheduler.NewScheduler(a.service, scheduler.Config{
				ScanInterval:    cfg.Schedule.ScanInterval,
				ProcessInterval: cfg.Schedule.ProcessInterval,
				CycleTimeout:    cfg.Schedule.CycleTimeout,
			}, logger)
			server := api.NewServer(cfg.HTTP.Addr, a.service, logger)

			logger.Info("starting catalog writer",
				"kinds", cfg.Pipeline.Kinds,
				"batch_size", cfg.Pipeline.BatchSize,
				"scan_interval", cfg.Schedule.ScanInterval,
				"process_interval", cfg.Schedule.ProcessInterval,
			)

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error { return sched.Start(gctx) })
			g.Go(func() error { return server.Run(gctx) })

			if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("shutdown with error", "error", err)
				return err
			}
			logger.Info("stopped")
			return nil
		},
	}
}
