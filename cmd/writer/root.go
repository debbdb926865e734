package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"catalog_writer/internal/config"
)

// options carries what the root command loads for its subcommands.
type options struct {
	configPath string
	cfg        *config.Config
	logger     *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "writer",
		Short: "Rewrites catalog titles, descriptions and SEO metadata",
		Long: `writer keeps a mirror of the store catalog, queues every newly discovered
product and collection, and rewrites their copy through a language model in
small batches.

  writer run        scheduler and HTTP API
  writer scan       one discovery pass
  writer process    one batch
  writer pause      stop automatic work
  writer unpause    resume and clear the auto-pause flag
  writer stats      status counts and control state
  writer migrate    apply database migrations`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "config.yaml", "path to config file")

	cmd.AddCommand(
		newRunCmd(opts),
		newScanCmd(opts),
		newProcessCmd(opts),
		newPauseCmd(opts),
		newUnpauseCmd(opts),
		newStatsCmd(opts),
		newMigrateCmd(opts),
	)
	return cmd
}

func (o *options) load() error {
	o.logger = setupLogger("info")

	cfg, err := config.Load(o.configPath)
	if err != nil {
		o.logger.Error("failed to load config", "error", err)
		return err
	}

	o.cfg = cfg
	o.logger = setupLogger(cfg.LogLevel)
	return nil
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
