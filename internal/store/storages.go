package store

import (
	"context"
	"fmt"

	"github.com/adilfashion/tailorsync/internal/config"
	"github.com/adilfashion/tailorsync/internal/logger"
	"github.com/adilfashion/tailorsync/migrations"
)

// Storages bundles the repositories backed by the server-side PostgreSQL
// database.
type Storages struct {
	DB        *DB
	Documents DocumentRepository
}

// NewStorages opens the server database, applies pending migrations and wires
// up the repositories.
func NewStorages(ctx context.Context, cfg config.DB, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgreSQL(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting database: %w", err)
	}

	if err = migrations.UpServer(ctx, db.DB); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	return &Storages{
		DB:        db,
		Documents: NewDocumentRepository(db),
	}, nil
}

// Close releases the underlying connection pool.
func (s *Storages) Close() error {
	return s.DB.Close()
}
