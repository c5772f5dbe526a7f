package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"cv-backend/internal/bootstrap"
	"cv-backend/internal/shared/config"
	"cv-backend/internal/shared/storage/db"
	"cv-backend/internal/shared/telemetry"
)

type migrateFunc func(ctx context.Context, conn *sql.DB, dialect db.Dialect, cmd *cobra.Command) error

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the cv database schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newCmd("up", "Apply all pending migrations", func(ctx context.Context, conn *sql.DB, d db.Dialect, _ *cobra.Command) error {
			return db.RunMigrations(ctx, conn, d)
		}),
		newCmd("down", "Roll back the most recent migration", func(ctx context.Context, conn *sql.DB, d db.Dialect, _ *cobra.Command) error {
			return db.RollbackMigration(ctx, conn, d)
		}),
		newCmd("status", "Show applied and pending migrations", func(ctx context.Context, conn *sql.DB, d db.Dialect, cmd *cobra.Command) error {
			return db.MigrationStatus(ctx, conn, d, cmd.OutOrStdout())
		}),
		newResetCmd(),
	)
	return root
}

func newResetCmd() *cobra.Command {
	var force bool
	cmd := newCmd("reset", "Drop the cv table and create it again, deleting every row",
		func(ctx context.Context, conn *sql.DB, d db.Dialect, _ *cobra.Command) error {
			if !force {
				return fmt.Errorf("reset deletes all data; pass --force to continue")
			}
			return db.ResetSchema(ctx, conn, d)
		})
	cmd.Flags().BoolVar(&force, "force", false, "confirm that all rows may be deleted")
	return cmd
}

func newCmd(use, short string, run migrateFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			telemetry.Configure(cfg.LogLevel, cfg.LogFormat)

			dialect, err := db.ParseDialect(cfg.DBDriver)
			if err != nil {
				return err
			}
			dsn, err := bootstrap.DSN(cfg, dialect)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			conn, err := db.Connect(ctx, dialect, dsn, db.OptionsFromEnv(db.DefaultCLIOptions()))
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := run(ctx, conn, dialect, cmd); err != nil {
				return fmt.Errorf("migrate %s: %w", use, err)
			}
			telemetry.Info("migrate.done", map[string]any{"command": use, "dialect": string(dialect)})
			return nil
		},
	}
}
