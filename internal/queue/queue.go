// Package queue holds offline mutations until they can be replayed against
// the remote document store.
//
// Entries are persisted as a JSON list in the local keyvalue table, one list
// per entity type, so pending changes survive restarts. Replay is FIFO and
// stops at the first failure, leaving the failed entry and everything behind
// it queued for the next attempt.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/adilfashion/tailorsync/internal/logger"
	"github.com/adilfashion/tailorsync/internal/store"
	"github.com/adilfashion/tailorsync/models"
)

const keyPrefix = "pending_mutations:"

// ApplyFunc replays a single mutation against the remote store. A nil return
// removes the entry from the queue; an error stops the drain.
type ApplyFunc func(ctx context.Context, m models.Mutation) error

// PendingMutationQueue is the durable FIFO of offline changes for one entity
// type.
type PendingMutationQueue interface {
	// Enqueue appends a mutation snapshot. Entries are never deduplicated.
	Enqueue(ctx context.Context, kind models.MutationKind, rec models.Record) error

	// DrainAll replays queued entries in order via apply, removing each entry
	// as it succeeds. The first failure stops the drain and is returned; the
	// failed entry stays at the head of the queue.
	DrainAll(ctx context.Context, apply ApplyFunc) error

	// PeekAll returns a copy of the queued entries in replay order.
	PeekAll(ctx context.Context) ([]models.Mutation, error)

	// Len returns the number of queued entries.
	Len(ctx context.Context) (int, error)

	// Clear drops all queued entries.
	Clear(ctx context.Context) error
}

type pendingMutationQueue struct {
	entity models.EntityType
	kv     store.KeyValueRepository
	logger *logger.Logger

	// mu serializes read-modify-write cycles on the persisted list.
	mu sync.Mutex
}

// NewPendingMutationQueue returns the durable queue for one entity type,
// persisted under its own key in the keyvalue table.
func NewPendingMutationQueue(entity models.EntityType, kv store.KeyValueRepository, log *logger.Logger) PendingMutationQueue {
	return &pendingMutationQueue{
		entity: entity,
		kv:     kv,
		logger: log.GetChildLogger(),
	}
}

func (q *pendingMutationQueue) key() string {
	return keyPrefix + string(q.entity)
}

func (q *pendingMutationQueue) Enqueue(ctx context.Context, kind models.MutationKind, rec models.Record) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	entries, err := q.load(ctx)
	if err != nil {
		return err
	}

	entries = append(entries, models.Mutation{
		ID:         uuid.NewString(),
		Kind:       kind,
		EntityType: q.entity,
		Record:     rec.Clone(),
		EnqueuedAt: time.Now().UTC(),
	})

	if err = q.save(ctx, entries); err != nil {
		// A failed write here means the change exists only locally and will
		// never reach the remote store.
		q.logger.Error().Err(err).
			Str("func", "pendingMutationQueue.Enqueue").
			Str("entity", string(q.entity)).
			Str("kind", string(kind)).
			Msg("failed to persist pending mutation, offline change will not sync")
		return err
	}

	q.logger.Debug().
		Str("func", "pendingMutationQueue.Enqueue").
		Str("entity", string(q.entity)).
		Str("kind", string(kind)).
		Int("pending", len(entries)).
		Msg("mutation enqueued")

	return nil
}

func (q *pendingMutationQueue) DrainAll(ctx context.Context, apply ApplyFunc) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	entries, err := q.load(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	q.logger.Info().
		Str("func", "pendingMutationQueue.DrainAll").
		Str("entity", string(q.entity)).
		Int("pending", len(entries)).
		Msg("draining pending mutations")

	for len(entries) > 0 {
		head := entries[0]

		if err = apply(ctx, head); err != nil {
			// Persist whatever already succeeded before reporting failure,
			// so replayed entries are not replayed twice.
			if saveErr := q.save(ctx, entries); saveErr != nil {
				q.logger.Err(saveErr).
					Str("func", "pendingMutationQueue.DrainAll").
					Str("entity", string(q.entity)).
					Msg("error persisting queue after failed drain")
			}
			return fmt.Errorf("error applying mutation %s: %w", head.ID, err)
		}

		entries = entries[1:]
	}

	return q.save(ctx, entries)
}

func (q *pendingMutationQueue) PeekAll(ctx context.Context) ([]models.Mutation, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.load(ctx)
}

func (q *pendingMutationQueue) Len(ctx context.Context) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	entries, err := q.load(ctx)
	if err != nil {
		return 0, err
	}

	return len(entries), nil
}

func (q *pendingMutationQueue) Clear(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.kv.Delete(ctx, q.key())
}

func (q *pendingMutationQueue) load(ctx context.Context) ([]models.Mutation, error) {
	raw, err := q.kv.Get(ctx, q.key())
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return []models.Mutation{}, nil
		}
		return nil, fmt.Errorf("error loading pending mutations: %w", err)
	}

	var entries []models.Mutation
	if err = json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("error decoding pending mutations: %w", err)
	}
	if entries == nil {
		entries = []models.Mutation{}
	}

	return entries, nil
}

func (q *pendingMutationQueue) save(ctx context.Context, entries []models.Mutation) error {
	if len(entries) == 0 {
		return q.kv.Delete(ctx, q.key())
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("error encoding pending mutations: %w", err)
	}

	return q.kv.Set(ctx, q.key(), raw)
}
