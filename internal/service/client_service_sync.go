package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/adilfashion/tailorsync/internal/adapter"
	"github.com/adilfashion/tailorsync/internal/logger"
	"github.com/adilfashion/tailorsync/internal/queue"
	"github.com/adilfashion/tailorsync/internal/store"
	"github.com/adilfashion/tailorsync/models"
)

// entitySync groups the per-entity pieces the engine cycles over.
type entitySync struct {
	entity models.EntityType
	repo   store.LocalRecordRepository
	queue  queue.PendingMutationQueue
}

type syncEngine struct {
	remote   adapter.RemoteStore
	entities []entitySync
	logger   *logger.Logger

	inFlight atomic.Bool
}

// NewSyncEngine wires the engine over the remote store and the per-entity
// repositories and queues. Entities are cycled in the order given.
func NewSyncEngine(remote adapter.RemoteStore, entities []entitySync, log *logger.Logger) SyncEngine {
	return &syncEngine{
		remote:   remote,
		entities: entities,
		logger:   log.GetChildLogger(),
	}
}

func newEntitySync(repo store.LocalRecordRepository, q queue.PendingMutationQueue) entitySync {
	return entitySync{entity: repo.EntityType(), repo: repo, queue: q}
}

func (e *syncEngine) Syncing() bool {
	return e.inFlight.Load()
}

func (e *syncEngine) TriggerSync(ctx context.Context) {
	go func() {
		if err := e.SyncNow(ctx); err != nil {
			e.logger.Warn().Err(err).
				Str("func", "syncEngine.TriggerSync").
				Msg("sync cycle failed")
		}
	}()
}

// SyncNow coalesces: the first caller runs the cycle, callers arriving while
// it is in flight are dropped. Their mutations are already queued, so the
// running drain or the next trigger picks them up.
func (e *syncEngine) SyncNow(ctx context.Context) error {
	if !e.inFlight.CompareAndSwap(false, true) {
		return nil
	}
	defer e.inFlight.Store(false)

	return e.runCycle(ctx)
}

func (e *syncEngine) runCycle(ctx context.Context) error {
	e.logger.Info().Str("func", "syncEngine.runCycle").Msg("sync cycle started")

	for _, es := range e.entities {
		if err := es.queue.DrainAll(ctx, e.applyMutation); err != nil {
			e.logger.Warn().Err(err).
				Str("func", "syncEngine.runCycle").
				Str("entity", string(es.entity)).
				Msg("drain stopped, keeping remaining mutations queued")
			return err
		}
	}

	for _, es := range e.entities {
		docs, err := e.remote.Query(ctx, es.entity, "", "")
		if err != nil {
			return fmt.Errorf("error pulling %s collection: %w", es.entity, err)
		}

		if err = e.Mirror(ctx, es.entity, docs); err != nil {
			return err
		}
	}

	e.logger.Info().Str("func", "syncEngine.runCycle").Msg("sync cycle finished")

	return nil
}

// Mirror upserts every pulled document into the local table. Local rows are
// never deleted here: a row missing remotely stays available on the device.
func (e *syncEngine) Mirror(ctx context.Context, entity models.EntityType, docs []models.Document) error {
	es, err := e.entityFor(entity)
	if err != nil {
		return err
	}

	for _, doc := range docs {
		if err := es.repo.Upsert(ctx, doc.ToRecord()); err != nil {
			return fmt.Errorf("error mirroring document %s: %w", doc.ID, err)
		}
	}

	e.logger.Debug().
		Str("func", "syncEngine.Mirror").
		Str("entity", string(entity)).
		Int("documents", len(docs)).
		Msg("mirrored remote documents")

	return nil
}

func (e *syncEngine) applyMutation(ctx context.Context, m models.Mutation) error {
	switch m.Kind {
	case models.MutationInsert:
		return e.applyInsert(ctx, m)
	case models.MutationUpdate:
		return e.applyUpdate(ctx, m)
	case models.MutationDelete:
		return e.applyDelete(ctx, m)
	default:
		// An unknown kind would wedge the queue forever; drop it.
		e.logger.Error().
			Str("func", "syncEngine.applyMutation").
			Str("kind", string(m.Kind)).
			Msg("dropping mutation of unknown kind")
		return nil
	}
}

// applyInsert replays an offline create. The remote store is checked for a
// twin first so a replayed insert never duplicates; the unique local id
// constraint backstops the race.
func (e *syncEngine) applyInsert(ctx context.Context, m models.Mutation) error {
	es, err := e.entityFor(m.EntityType)
	if err != nil {
		return err
	}

	remoteID, err := e.remoteTwinID(ctx, m)
	switch {
	case err == nil:
		// Already applied by an earlier drain attempt.
	case errors.Is(err, adapter.ErrNotFound):
		remoteID, err = e.remote.Add(ctx, m.EntityType, models.DocumentFromRecord(m.Record))
		if errors.Is(err, adapter.ErrConflict) {
			// Lost the race against another replay of the same insert.
			twin, findErr := e.remote.FindByLocalID(ctx, m.EntityType, m.Record.LocalID)
			if findErr != nil {
				return findErr
			}
			remoteID = twin.ID
		} else if err != nil {
			return err
		}
	default:
		return err
	}

	if err = es.repo.SetRemoteID(ctx, m.Record.LocalID, remoteID); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	return nil
}

func (e *syncEngine) applyUpdate(ctx context.Context, m models.Mutation) error {
	twinID, err := e.remoteTwinID(ctx, m)
	if errors.Is(err, adapter.ErrNotFound) {
		// The remote twin vanished (deleted from another device). The local
		// row keeps its state; the update has nothing to apply to.
		e.logger.Warn().
			Str("func", "syncEngine.applyUpdate").
			Str("entity", string(m.EntityType)).
			Int64("localId", m.Record.LocalID).
			Msg("remote twin not found, skipping queued update")
		return nil
	}
	if err != nil {
		return err
	}

	doc := models.DocumentFromRecord(m.Record)
	doc.ID = twinID

	if err = e.remote.Update(ctx, m.EntityType, doc); err != nil {
		if errors.Is(err, adapter.ErrNotFound) {
			return nil
		}
		return err
	}

	return nil
}

func (e *syncEngine) applyDelete(ctx context.Context, m models.Mutation) error {
	twinID, err := e.remoteTwinID(ctx, m)
	if errors.Is(err, adapter.ErrNotFound) {
		// Nothing left to delete.
		return nil
	}
	if err != nil {
		return err
	}

	if err = e.remote.Delete(ctx, m.EntityType, twinID); err != nil {
		if errors.Is(err, adapter.ErrNotFound) {
			return nil
		}
		return err
	}

	return nil
}

// remoteTwinID locates the remote document a mutation targets: by the remote
// id captured at enqueue time when one was known, by the local id stamp
// otherwise.
func (e *syncEngine) remoteTwinID(ctx context.Context, m models.Mutation) (string, error) {
	if m.Record.RemoteID != "" {
		return m.Record.RemoteID, nil
	}
	if m.Record.LocalID <= 0 {
		return "", adapter.ErrNotFound
	}

	twin, err := e.remote.FindByLocalID(ctx, m.EntityType, m.Record.LocalID)
	if err != nil {
		return "", err
	}

	return twin.ID, nil
}

func (e *syncEngine) entityFor(entity models.EntityType) (entitySync, error) {
	for _, es := range e.entities {
		if es.entity == entity {
			return es, nil
		}
	}

	return entitySync{}, fmt.Errorf("%w: %s", ErrUnknownCollection, entity)
}
