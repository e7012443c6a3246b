package database

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/haseab/retrace-frontend-sub001/internal/config"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate applies pending goose migrations. Uses database/sql with lib/pq
// because goose does not speak the pgx pool API.
func Migrate(cfg *config.DatabaseConfig) error {
	return MigrateDSN(cfg.DSN())
}

// MigrateDSN runs migrations against an explicit connection string.
func MigrateDSN(dsn string) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("unable to open migration connection: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("unable to set goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}
