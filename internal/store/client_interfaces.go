package store

import (
	"context"

	"github.com/adilfashion/tailorsync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// LocalRecordRepository is the per-entity access to an on-device table.
// The record services and the sync engine are its only callers; the engine is
// the only caller of Upsert (mirror writes), keeping remote-origin and
// local-origin writes behind a single arbiter.
type LocalRecordRepository interface {
	// EntityType reports which table this repository owns.
	EntityType() models.EntityType

	// Insert adds a new row and returns the assigned autoincrement id.
	Insert(ctx context.Context, rec models.Record) (int64, error)

	// Update overwrites the measurement fields of the row with the given
	// local id. registrationDate and remote_id are left untouched.
	Update(ctx context.Context, localID int64, rec models.Record) error

	// Delete removes the row with the given local id. Deleting an absent row
	// is not an error.
	Delete(ctx context.Context, localID int64) error

	// Get returns the row with the given local id, or [ErrRecordNotFound].
	Get(ctx context.Context, localID int64) (models.Record, error)

	// List returns rows whose name or phone number contains filter, in id
	// order. An empty filter returns the whole table. No rows yields an
	// empty, non-nil slice.
	List(ctx context.Context, filter string) ([]models.Record, error)

	// Count returns the number of rows in the table.
	Count(ctx context.Context) (int64, error)

	// SetRemoteID records the remote document id assigned to a local row.
	SetRemoteID(ctx context.Context, localID int64, remoteID string) error

	// Upsert mirrors a remote record into the table: matched by remote id
	// first, then by local id; inserted (preserving the record's local id
	// when it has one) otherwise. Mirror writes never delete rows.
	Upsert(ctx context.Context, rec models.Record) error
}

// AdminRepository stores the single-row admin credential.
type AdminRepository interface {
	// EnsureSeeded inserts the default credential row if the table is empty.
	EnsureSeeded(ctx context.Context) error

	// PasswordHash returns the stored bcrypt hash, or [ErrAdminNotSeeded].
	PasswordHash(ctx context.Context) (string, error)

	// SetPasswordHash replaces the stored bcrypt hash.
	SetPasswordHash(ctx context.Context, hash string) error
}

// KeyValueRepository is a generic durable key-value surface over the local
// keyvalue table. The pending-mutation queue persists its backing list here
// under a well-known key.
type KeyValueRepository interface {
	// Get returns the value stored under key, or [ErrKeyNotFound].
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
