package main

import (
	"context"

	"github.com/spf13/cobra"

	"catalog_writer/internal/service"
)

// withService opens an app for one command and closes it afterwards.
func withService(cmd *cobra.Command, opts *options, fn func(ctx context.Context, svc *service.Service) error) error {
	a, err := newApp(cmd.Context(), opts.cfg, opts.logger)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(cmd.Context(), a.service)
}

func newScanCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Discover new catalog items once",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, opts, func(ctx context.Context, svc *service.Service) error {
				stats, err := svc.Scan(ctx)
				if err != nil {
					if expected(err) {
						opts.logger.Info("scan skipped", "reason", err)
						return nil
					}
					return err
				}
				return printJSON(cmd, stats)
			})
		},
	}
}

func newProcessCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "process",
		Short: "Process one batch of eligible items",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, opts, func(ctx context.Context, svc *service.Service) error {
				stats, err := svc.ProcessBatch(ctx)
				if err != nil {
					if expected(err) {
						opts.logger.Info("batch skipped", "reason", err)
						return nil
					}
					return err
				}
				return printJSON(cmd, stats)
			})
		},
	}
}

func newPauseCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "pause",
		Short: "Stop automatic scans and batches",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, opts, func(ctx context.Context, svc *service.Service) error {
				return svc.Pause(ctx)
			})
		},
	}
}

func newUnpauseCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "unpause",
		Short: "Resume automatic work and clear the auto-pause flag",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, opts, func(ctx context.Context, svc *service.Service) error {
				return svc.Unpause(ctx)
			})
		},
	}
}

func newStatsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print status counts and the control state",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, opts, func(ctx context.Context, svc *service.Service) error {
				stats, err := svc.Stats(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd, stats)
			})
		},
	}
}
