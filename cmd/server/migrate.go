package main

import (
	"context"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/leondli/centriq/internal/infrastructure/database"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(newMigrateStep("up", "Apply every pending migration", database.MigrateUp))
	cmd.AddCommand(newMigrateStep("down", "Roll back the latest migration", database.MigrateDown))
	cmd.AddCommand(newMigrateStep("status", "Show the state of every migration", database.MigrationStatus))

	return cmd
}

func newMigrateStep(use, short string, run func(ctx context.Context, db *gorm.DB) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer database.Close()

			return run(cmd.Context(), db)
		},
	}
}
