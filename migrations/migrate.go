// Package migrations applies the embedded goose migrations for both
// databases: the on-device SQLite cache and the server-side PostgreSQL
// document store.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed client/*.sql server/*.sql
var embedMigrations embed.FS

// UpClient applies the SQLite migrations for the on-device database.
func UpClient(ctx context.Context, db *sql.DB) error {
	return up(ctx, db, "sqlite3", "client")
}

// UpServer applies the PostgreSQL migrations for the document store.
func UpServer(ctx context.Context, db *sql.DB) error {
	return up(ctx, db, "pgx", "server")
}

func up(ctx context.Context, db *sql.DB, dialect, dir string) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
