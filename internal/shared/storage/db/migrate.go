package db

import (
	"context"
	"database/sql"
	"embed"

	"github.com/pressly/goose/v3"
)

// Schema for users, analysis history, and portfolios ships with the binary.
//
//go:embed migrations/*.sql
var migrationFiles embed.FS

// RunMigrations applies the embedded schema via goose. A nil database (the
// in-memory repo mode) is a no-op.
func RunMigrations(ctx context.Context, database *sql.DB) error {
	if database == nil {
		return nil
	}
	goose.SetBaseFS(migrationFiles)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, database, "migrations")
}
