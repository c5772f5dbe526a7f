package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*/*.sql
var migrationFiles embed.FS

func prepareGoose(dialect Dialect) (string, error) {
	goose.SetBaseFS(migrationFiles)
	if err := goose.SetDialect(dialect.GooseDialect()); err != nil {
		return "", err
	}
	return "migrations/" + string(dialect), nil
}

// RunMigrations applies embedded SQL migrations via goose. If database is nil, it's a no-op.
func RunMigrations(ctx context.Context, database *sql.DB, dialect Dialect) error {
	if database == nil {
		return nil
	}
	dir, err := prepareGoose(dialect)
	if err != nil {
		return err
	}
	return goose.UpContext(ctx, database, dir)
}

// RollbackMigration reverts the most recent migration.
func RollbackMigration(ctx context.Context, database *sql.DB, dialect Dialect) error {
	dir, err := prepareGoose(dialect)
	if err != nil {
		return err
	}
	return goose.DownContext(ctx, database, dir)
}

// ResetSchema drops everything the migrations created and applies them again,
// leaving an empty cv table.
func ResetSchema(ctx context.Context, database *sql.DB, dialect Dialect) error {
	dir, err := prepareGoose(dialect)
	if err != nil {
		return err
	}
	if err := goose.ResetContext(ctx, database, dir); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	return goose.UpContext(ctx, database, dir)
}

// MigrationStatus writes the applied state of every migration to w.
func MigrationStatus(ctx context.Context, database *sql.DB, dialect Dialect, w io.Writer) error {
	dir, err := prepareGoose(dialect)
	if err != nil {
		return err
	}
	current, err := goose.GetDBVersionContext(ctx, database)
	if err != nil {
		return err
	}
	migrations, err := goose.CollectMigrations(dir, 0, goose.MaxVersion)
	if err != nil {
		return err
	}
	for _, m := range migrations {
		state := "pending"
		if m.Version <= current {
			state = "applied"
		}
		fmt.Fprintf(w, "%-8s %05d %s\n", state, m.Version, m.Source)
	}
	return nil
}
