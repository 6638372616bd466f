package migration

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v4/pgxpool"
)

// Migration represents a database migration
type Migration struct {
	Name string
	Up   func(ctx context.Context, pool *pgxpool.Pool) error
}

// RunMigrations executes all necessary database migrations on startup.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	slog.Info("Starting database migrations")

	migrations := []Migration{
		{Name: "create_render_jobs", Up: createRenderJobs},
		{Name: "add_error_to_render_jobs", Up: addErrorColumn},
	}

	for _, m := range migrations {
		if err := m.Up(ctx, pool); err != nil {
			slog.Error("Migration failed", "name", m.Name, "error", err)
			return err
		}
		slog.Info("Migration completed", "name", m.Name)
	}

	slog.Info("All migrations completed successfully")
	return nil
}

func createRenderJobs(ctx context.Context, pool *pgxpool.Pool) error {
	query := `
		CREATE TABLE IF NOT EXISTS render_jobs (
			id UUID PRIMARY KEY,
			theme TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			error TEXT NOT NULL DEFAULT '',
			metadata JSONB,
			document JSONB,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
	`
	if _, err := pool.Exec(ctx, query); err != nil {
		return err
	}
	return nil
}

func addErrorColumn(ctx context.Context, pool *pgxpool.Pool) error {
	query := `
		ALTER TABLE render_jobs
		ADD COLUMN IF NOT EXISTS error TEXT NOT NULL DEFAULT '';
	`
	if _, err := pool.Exec(ctx, query); err != nil {
		// column may already exist on older tables
		slog.Warn("Error adding error column (may already exist)", "error", err)
		return nil
	}
	return nil
}
