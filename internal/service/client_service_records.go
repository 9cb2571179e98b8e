package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/adilfashion/tailorsync/internal/adapter"
	"github.com/adilfashion/tailorsync/internal/connectivity"
	"github.com/adilfashion/tailorsync/internal/logger"
	"github.com/adilfashion/tailorsync/internal/queue"
	"github.com/adilfashion/tailorsync/internal/store"
	"github.com/adilfashion/tailorsync/models"
)

type recordService struct {
	entity  models.EntityType
	repo    store.LocalRecordRepository
	queue   queue.PendingMutationQueue
	remote  adapter.RemoteStore
	monitor connectivity.Monitor
	engine  SyncEngine
	logger  *logger.Logger
}

// NewRecordService returns the device-side service for one record type. The
// local table is the source of truth for reads; every write goes local-first
// and reaches the remote store either directly or through the queue.
func NewRecordService(
	repo store.LocalRecordRepository,
	q queue.PendingMutationQueue,
	remote adapter.RemoteStore,
	monitor connectivity.Monitor,
	engine SyncEngine,
	log *logger.Logger,
) RecordService {
	return &recordService{
		entity:  repo.EntityType(),
		repo:    repo,
		queue:   q,
		remote:  remote,
		monitor: monitor,
		engine:  engine,
		logger:  log.GetChildLogger(),
	}
}

func (s *recordService) EntityType() models.EntityType {
	return s.entity
}

func (s *recordService) Create(ctx context.Context, rec models.Record) (models.Record, models.Outcome, error) {
	rec = rec.Clone()
	if rec.Fields == nil {
		rec.Fields = models.Fields{}
	}
	if rec.Fields.Str(models.FieldRegistrationDate) == "" {
		rec.Fields[models.FieldRegistrationDate] = time.Now().Format(time.DateOnly)
	}
	rec.RemoteID = ""

	localID, err := s.repo.Insert(ctx, rec)
	if err != nil {
		return models.Record{}, "", fmt.Errorf("error saving %s locally: %w", s.entity, err)
	}
	rec.LocalID = localID

	if s.monitor.Connected() {
		remoteID, pushErr := s.pushInsert(ctx, rec)
		if pushErr == nil {
			rec.RemoteID = remoteID
			if err = s.repo.SetRemoteID(ctx, localID, remoteID); err != nil {
				return rec, "", err
			}
			return rec, models.OutcomeSynced, nil
		}
		s.logger.Warn().Err(pushErr).
			Str("func", "recordService.Create").
			Str("entity", string(s.entity)).
			Msg("remote create failed, queueing")
	}

	if err = s.queue.Enqueue(ctx, models.MutationInsert, rec); err != nil {
		return rec, models.OutcomeSavedOffline, err
	}

	return rec, models.OutcomeSavedOffline, nil
}

func (s *recordService) pushInsert(ctx context.Context, rec models.Record) (string, error) {
	remoteID, err := s.remote.Add(ctx, s.entity, models.DocumentFromRecord(rec))
	if errors.Is(err, adapter.ErrConflict) {
		twin, findErr := s.remote.FindByLocalID(ctx, s.entity, rec.LocalID)
		if findErr != nil {
			return "", findErr
		}
		return twin.ID, nil
	}

	return remoteID, err
}

func (s *recordService) Update(ctx context.Context, rec models.Record) (models.Outcome, error) {
	if rec.LocalID <= 0 {
		return "", ErrRecordNotFound
	}

	if err := s.repo.Update(ctx, rec.LocalID, rec); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return "", ErrRecordNotFound
		}
		return "", fmt.Errorf("error updating %s locally: %w", s.entity, err)
	}

	// Pick up the stored remote id so the queue snapshot (or the direct
	// push) can address the remote twin.
	stored, err := s.repo.Get(ctx, rec.LocalID)
	if err == nil {
		rec = rec.Clone()
		if rec.Fields == nil {
			rec.Fields = models.Fields{}
		}
		rec.RemoteID = stored.RemoteID
		rec.Fields[models.FieldRegistrationDate] = stored.Fields.Str(models.FieldRegistrationDate)
	}

	if s.monitor.Connected() {
		pushErr := s.pushUpdate(ctx, rec)
		if pushErr == nil {
			return models.OutcomeSynced, nil
		}
		s.logger.Warn().Err(pushErr).
			Str("func", "recordService.Update").
			Str("entity", string(s.entity)).
			Msg("remote update failed, queueing")
	}

	if err = s.queue.Enqueue(ctx, models.MutationUpdate, rec); err != nil {
		return models.OutcomeSavedOffline, err
	}

	return models.OutcomeSavedOffline, nil
}

func (s *recordService) pushUpdate(ctx context.Context, rec models.Record) error {
	doc := models.DocumentFromRecord(rec)

	if doc.ID == "" {
		twin, err := s.remote.FindByLocalID(ctx, s.entity, rec.LocalID)
		if errors.Is(err, adapter.ErrNotFound) {
			// No remote twin to update; the mirror pass will reconcile.
			s.logger.Warn().
				Str("func", "recordService.pushUpdate").
				Str("entity", string(s.entity)).
				Int64("localId", rec.LocalID).
				Msg("remote twin not found, skipping update")
			return nil
		}
		if err != nil {
			return err
		}
		doc.ID = twin.ID
	}

	err := s.remote.Update(ctx, s.entity, doc)
	if errors.Is(err, adapter.ErrNotFound) {
		return nil
	}

	return err
}

func (s *recordService) Delete(ctx context.Context, localID int64) (models.Outcome, error) {
	snapshot, err := s.repo.Get(ctx, localID)
	if errors.Is(err, store.ErrRecordNotFound) {
		// Nothing stored locally; nothing queued either.
		return models.OutcomeSynced, nil
	}
	if err != nil {
		return "", err
	}

	if err = s.repo.Delete(ctx, localID); err != nil {
		return "", fmt.Errorf("error deleting %s locally: %w", s.entity, err)
	}

	if s.monitor.Connected() {
		pushErr := s.pushDelete(ctx, snapshot)
		if pushErr == nil {
			return models.OutcomeSynced, nil
		}
		s.logger.Warn().Err(pushErr).
			Str("func", "recordService.Delete").
			Str("entity", string(s.entity)).
			Msg("remote delete failed, queueing")
	}

	if err = s.queue.Enqueue(ctx, models.MutationDelete, snapshot); err != nil {
		return models.OutcomeSavedOffline, err
	}

	return models.OutcomeSavedOffline, nil
}

func (s *recordService) pushDelete(ctx context.Context, rec models.Record) error {
	id := rec.RemoteID
	if id == "" {
		twin, err := s.remote.FindByLocalID(ctx, s.entity, rec.LocalID)
		if errors.Is(err, adapter.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		id = twin.ID
	}

	err := s.remote.Delete(ctx, s.entity, id)
	if errors.Is(err, adapter.ErrNotFound) {
		return nil
	}

	return err
}

func (s *recordService) Get(ctx context.Context, localID int64) (models.Record, error) {
	rec, err := s.repo.Get(ctx, localID)
	if errors.Is(err, store.ErrRecordNotFound) {
		return models.Record{}, ErrRecordNotFound
	}

	return rec, err
}

// Search prefers the remote dataset when reachable: results are mirrored into
// the local table so they stay available offline. Any remote failure falls
// back to the local table.
func (s *recordService) Search(ctx context.Context, filter string) ([]models.Record, error) {
	if s.monitor.Connected() {
		docs, err := s.remote.QueryByNamePrefix(ctx, s.entity, filter)
		if err == nil {
			if err = s.engine.Mirror(ctx, s.entity, docs); err != nil {
				s.logger.Warn().Err(err).
					Str("func", "recordService.Search").
					Str("entity", string(s.entity)).
					Msg("error mirroring search results")
			}

			records := make([]models.Record, 0, len(docs))
			for _, doc := range docs {
				records = append(records, doc.ToRecord())
			}
			return records, nil
		}

		s.logger.Warn().Err(err).
			Str("func", "recordService.Search").
			Str("entity", string(s.entity)).
			Msg("remote search failed, falling back to local table")
	}

	return s.repo.List(ctx, filter)
}

func (s *recordService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
