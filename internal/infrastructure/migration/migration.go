package migration

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/rs/zerolog"
)

// Migration represents a database migration
type Migration struct {
	Name string
	Up   func(ctx context.Context, pool *pgxpool.Pool) error
}

// RunMigrations executes all necessary database migrations on startup.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger) error {
	log.Info().Msg("starting database migrations")

	migrations := []Migration{
		{Name: "create_resumes_table", Up: createResumesTable},
		{Name: "create_parse_jobs_table", Up: createParseJobsTable},
	}

	for _, m := range migrations {
		if err := m.Up(ctx, pool); err != nil {
			log.Error().Err(err).Str("name", m.Name).Msg("migration failed")
			return err
		}
		log.Info().Str("name", m.Name).Msg("migration completed")
	}

	return nil
}

func createResumesTable(ctx context.Context, pool *pgxpool.Pool) error {
	query := `
		CREATE TABLE IF NOT EXISTS resumes (
			id UUID PRIMARY KEY,
			owner TEXT NOT NULL,
			document JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
	`
	_, err := pool.Exec(ctx, query)
	return err
}

func createParseJobsTable(ctx context.Context, pool *pgxpool.Pool) error {
	query := `
		CREATE TABLE IF NOT EXISTS parse_jobs (
			id UUID PRIMARY KEY,
			status TEXT NOT NULL,
			files JSONB NOT NULL DEFAULT '[]'::jsonb,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
	`
	_, err := pool.Exec(ctx, query)
	return err
}
