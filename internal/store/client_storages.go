package store

import (
	"context"
	"fmt"

	"github.com/adilfashion/tailorsync/internal/config"
	"github.com/adilfashion/tailorsync/internal/logger"
	"github.com/adilfashion/tailorsync/migrations"
	"github.com/adilfashion/tailorsync/models"
)

// ClientStorages bundles every repository backed by the on-device SQLite
// database.
type ClientStorages struct {
	DB        *DB
	Customers LocalRecordRepository
	Waskats   LocalRecordRepository
	Admin     AdminRepository
	KeyValues KeyValueRepository
}

// NewClientStorages opens the local database, applies pending migrations and
// wires up the device-side repositories.
func NewClientStorages(ctx context.Context, cfg config.ClientDB, log *logger.Logger) (*ClientStorages, error) {
	db, err := NewConnectSQLite(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting local database: %w", err)
	}

	if err = migrations.UpClient(ctx, db.DB); err != nil {
		log.Err(err).Str("func", "NewClientStorages").Msg("error applying local migrations")
		return nil, fmt.Errorf("error applying local migrations: %w", err)
	}

	return &ClientStorages{
		DB:        db,
		Customers: NewCustomerRepository(db),
		Waskats:   NewWaskatRepository(db),
		Admin:     NewAdminRepository(db),
		KeyValues: NewKeyValueRepository(db),
	}, nil
}

// Records returns the repository owning the given entity's table.
func (s *ClientStorages) Records(entity models.EntityType) (LocalRecordRepository, error) {
	switch entity {
	case models.EntityCustomer:
		return s.Customers, nil
	case models.EntityWaskat:
		return s.Waskats, nil
	default:
		return nil, fmt.Errorf("unknown entity type %q", entity)
	}
}

// Close releases the underlying connection pool.
func (s *ClientStorages) Close() error {
	return s.DB.Close()
}
