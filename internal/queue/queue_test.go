package queue

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adilfashion/tailorsync/internal/logger"
	"github.com/adilfashion/tailorsync/internal/store"
	"github.com/adilfashion/tailorsync/models"
)

// memoryKV is an in-memory store.KeyValueRepository, so queue tests exercise
// the real persistence round-trip without SQLite.
type memoryKV struct {
	mu   sync.Mutex
	data map[string][]byte

	failSet bool
}

func newMemoryKV() *memoryKV {
	return &memoryKV{data: map[string][]byte{}}
}

func (m *memoryKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	value, ok := m.data[key]
	if !ok {
		return nil, store.ErrKeyNotFound
	}
	return value, nil
}

func (m *memoryKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failSet {
		return errors.New("disk full")
	}
	m.data[key] = value
	return nil
}

func (m *memoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}

func record(localID int64, name string) models.Record {
	return models.Record{
		LocalID: localID,
		Fields:  models.Fields{models.FieldName: name},
	}
}

func TestPendingMutationQueue_EnqueueKeepsFIFOOrder(t *testing.T) {
	ctx := context.Background()
	kv := newMemoryKV()
	q := NewPendingMutationQueue(models.EntityCustomer, kv, logger.Nop())

	require.NoError(t, q.Enqueue(ctx, models.MutationInsert, record(1, "Ahmad")))
	require.NoError(t, q.Enqueue(ctx, models.MutationUpdate, record(1, "Ahmad Shah")))
	require.NoError(t, q.Enqueue(ctx, models.MutationDelete, record(2, "Karim")))

	entries, err := q.PeekAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, models.MutationInsert, entries[0].Kind)
	assert.Equal(t, models.MutationUpdate, entries[1].Kind)
	assert.Equal(t, models.MutationDelete, entries[2].Kind)
}

func TestPendingMutationQueue_NoDeduplication(t *testing.T) {
	ctx := context.Background()
	q := NewPendingMutationQueue(models.EntityCustomer, newMemoryKV(), logger.Nop())

	// Two updates of the same record stay as two entries; FIFO replay makes
	// the later one win remotely.
	require.NoError(t, q.Enqueue(ctx, models.MutationUpdate, record(1, "first")))
	require.NoError(t, q.Enqueue(ctx, models.MutationUpdate, record(1, "second")))

	n, err := q.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	entries, err := q.PeekAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "first", entries[0].Record.Name())
	assert.Equal(t, "second", entries[1].Record.Name())
}

func TestPendingMutationQueue_SurvivesRestart(t *testing.T) {
	ctx := context.Background()
	kv := newMemoryKV()

	q := NewPendingMutationQueue(models.EntityWaskat, kv, logger.Nop())
	require.NoError(t, q.Enqueue(ctx, models.MutationInsert, record(7, "Wali")))

	// A fresh queue over the same backing table sees the entry.
	reopened := NewPendingMutationQueue(models.EntityWaskat, kv, logger.Nop())
	entries, err := reopened.PeekAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(7), entries[0].Record.LocalID)
	assert.Equal(t, models.EntityWaskat, entries[0].EntityType)
}

func TestPendingMutationQueue_QueuesArePerEntity(t *testing.T) {
	ctx := context.Background()
	kv := newMemoryKV()

	customers := NewPendingMutationQueue(models.EntityCustomer, kv, logger.Nop())
	waskats := NewPendingMutationQueue(models.EntityWaskat, kv, logger.Nop())

	require.NoError(t, customers.Enqueue(ctx, models.MutationInsert, record(1, "a")))

	n, err := waskats.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPendingMutationQueue_DrainAllAppliesInOrder(t *testing.T) {
	ctx := context.Background()
	q := NewPendingMutationQueue(models.EntityCustomer, newMemoryKV(), logger.Nop())

	require.NoError(t, q.Enqueue(ctx, models.MutationInsert, record(1, "a")))
	require.NoError(t, q.Enqueue(ctx, models.MutationUpdate, record(1, "b")))
	require.NoError(t, q.Enqueue(ctx, models.MutationDelete, record(1, "b")))

	var applied []models.MutationKind
	err := q.DrainAll(ctx, func(_ context.Context, m models.Mutation) error {
		applied = append(applied, m.Kind)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []models.MutationKind{models.MutationInsert, models.MutationUpdate, models.MutationDelete}, applied)

	n, err := q.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPendingMutationQueue_DrainAllStopsOnFirstFailure(t *testing.T) {
	ctx := context.Background()
	q := NewPendingMutationQueue(models.EntityCustomer, newMemoryKV(), logger.Nop())

	require.NoError(t, q.Enqueue(ctx, models.MutationInsert, record(1, "a")))
	require.NoError(t, q.Enqueue(ctx, models.MutationUpdate, record(2, "b")))
	require.NoError(t, q.Enqueue(ctx, models.MutationDelete, record(3, "c")))

	applyErr := errors.New("server gone")
	calls := 0
	err := q.DrainAll(ctx, func(_ context.Context, m models.Mutation) error {
		calls++
		if m.Record.LocalID == 2 {
			return applyErr
		}
		return nil
	})
	require.ErrorIs(t, err, applyErr)
	assert.Equal(t, 2, calls)

	// The failed entry and everything behind it stay queued, in order.
	entries, peekErr := q.PeekAll(ctx)
	require.NoError(t, peekErr)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(2), entries[0].Record.LocalID)
	assert.Equal(t, int64(3), entries[1].Record.LocalID)
}

func TestPendingMutationQueue_EnqueueReportsPersistenceFailure(t *testing.T) {
	ctx := context.Background()
	kv := newMemoryKV()
	kv.failSet = true
	q := NewPendingMutationQueue(models.EntityCustomer, kv, logger.Nop())

	err := q.Enqueue(ctx, models.MutationInsert, record(1, "a"))
	require.Error(t, err)
}

func TestPendingMutationQueue_Clear(t *testing.T) {
	ctx := context.Background()
	q := NewPendingMutationQueue(models.EntityCustomer, newMemoryKV(), logger.Nop())

	require.NoError(t, q.Enqueue(ctx, models.MutationInsert, record(1, "a")))
	require.NoError(t, q.Clear(ctx))

	n, err := q.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
