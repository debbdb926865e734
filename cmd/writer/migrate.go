package main

import (
	"github.com/spf13/cobra"

	"catalog_writer/internal/storage/postgres"
)

func newMigrateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := connectDB(cmd.Context(), opts.cfg.Database, opts.logger)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := postgres.Migrate(db.DB); err != nil {
				return err
			}
			opts.logger.Info("migrations applied")
			return nil
		},
	}
}
