package models

import "time"

// MutationKind tags a pending mutation with the operation it replays.
type MutationKind string

const (
	MutationInsert MutationKind = "insert"
	MutationUpdate MutationKind = "update"
	MutationDelete MutationKind = "delete"
)

// Mutation is a single offline change awaiting replay against the remote
// store. The record snapshot carries whatever was known at enqueue time; for
// deletes that includes the (already removed) local id so the remote twin can
// be located by its localId field.
//
// Mutations for the same record are never deduplicated: the queue may hold
// several entries per record, and FIFO replay makes the last write win.
type Mutation struct {
	ID         string       `json:"id"`
	Kind       MutationKind `json:"kind"`
	EntityType EntityType   `json:"entityType"`
	Record     Record       `json:"record"`
	EnqueuedAt time.Time    `json:"enqueuedAt"`
}
