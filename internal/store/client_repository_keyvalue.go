package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/adilfashion/tailorsync/internal/logger"
)

type keyValueRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewKeyValueRepository returns the repository backing the generic keyvalue
// table. The pending-mutation queue stores its serialized entries here.
func NewKeyValueRepository(db *DB) KeyValueRepository {
	return &keyValueRepository{
		db:     db,
		logger: db.logger.GetChildLogger(),
	}
}

func (r *keyValueRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, getKeyValue, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrKeyNotFound
		}
		r.logger.Err(err).Str("func", "keyValueRepository.Get").Str("key", key).Msg("error reading value")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return value, nil
}

func (r *keyValueRepository) Set(ctx context.Context, key string, value []byte) error {
	if _, err := r.db.ExecContext(ctx, setKeyValue, key, value); err != nil {
		r.logger.Err(err).Str("func", "keyValueRepository.Set").Str("key", key).Msg("error storing value")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (r *keyValueRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, deleteKeyValue, key); err != nil {
		r.logger.Err(err).Str("func", "keyValueRepository.Delete").Str("key", key).Msg("error deleting value")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}
