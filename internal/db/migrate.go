package db

import (
	"embed"
	"fmt"

	"aeroportal/flightops/internal/logging"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations applies the embedded goose migrations to Postgres.
func RunMigrations(conn *sqlx.DB) error {
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	if err := goose.Up(conn.DB, "migrations"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, err := goose.GetDBVersion(conn.DB)
	if err == nil {
		logging.Info("Database migrations applied", "version", version)
	}
	return nil
}
