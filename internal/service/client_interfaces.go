package service

import (
	"context"
	"time"

	"github.com/adilfashion/tailorsync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// RecordService is the device-side API for one record type. Every write lands
// in the local table first; the returned outcome reports whether the change
// also reached the remote store or was queued for later replay.
type RecordService interface {
	// EntityType reports which record type this service handles.
	EntityType() models.EntityType

	// Create saves a new record locally and tries to push it remotely. The
	// returned record carries the assigned local id (and remote id when the
	// push succeeded).
	Create(ctx context.Context, rec models.Record) (models.Record, models.Outcome, error)

	// Update overwrites an existing record locally and tries to push the
	// change remotely.
	Update(ctx context.Context, rec models.Record) (models.Outcome, error)

	// Delete removes a record locally and tries to delete its remote twin.
	// Deleting an absent record is not an error.
	Delete(ctx context.Context, localID int64) (models.Outcome, error)

	// Get returns one record from the local table.
	Get(ctx context.Context, localID int64) (models.Record, error)

	// Search returns records matching the filter: a remote name-prefix query
	// (mirrored locally) when connected, a local substring search otherwise.
	// An empty filter returns everything.
	Search(ctx context.Context, filter string) ([]models.Record, error)

	// Count returns the number of locally stored records.
	Count(ctx context.Context) (int64, error)
}

// SyncEngine replays queued offline mutations and mirrors the remote dataset
// into the local tables.
type SyncEngine interface {
	// SyncNow runs one full cycle: drain the pending queues, pull the remote
	// collections, mirror them locally. Concurrent calls coalesce into a
	// single in-flight cycle plus at most one follow-up.
	SyncNow(ctx context.Context) error

	// TriggerSync schedules a cycle without blocking.
	TriggerSync(ctx context.Context)

	// Mirror upserts remote documents into the entity's local table.
	Mirror(ctx context.Context, entity models.EntityType, docs []models.Document) error

	// Syncing reports whether a cycle is currently in flight.
	Syncing() bool
}

// ClientSyncJob owns the background triggers for the sync engine: a
// reconnect-driven trigger and an optional interval trigger.
type ClientSyncJob interface {
	// Start launches the background triggers. A non-positive interval
	// disables the periodic trigger; reconnect events always trigger.
	Start(ctx context.Context, interval time.Duration)

	// Stop cancels the background goroutine and waits for it to exit. Safe
	// to call when the job is not running.
	Stop()
}

// AdminService guards the local admin area with the stored password.
type AdminService interface {
	// VerifyPassword checks a password attempt against the stored hash.
	// Returns [ErrInvalidCredentials] on mismatch.
	VerifyPassword(ctx context.Context, password string) error

	// ChangePassword verifies the current password and stores a new one.
	ChangePassword(ctx context.Context, current, next string) error
}
