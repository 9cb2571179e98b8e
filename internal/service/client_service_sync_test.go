package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/adilfashion/tailorsync/internal/adapter"
	"github.com/adilfashion/tailorsync/internal/logger"
	"github.com/adilfashion/tailorsync/internal/mock"
	"github.com/adilfashion/tailorsync/internal/queue"
	"github.com/adilfashion/tailorsync/internal/store"
	"github.com/adilfashion/tailorsync/models"
)

// fakeKV backs the real pending-mutation queue in memory so engine tests
// exercise genuine enqueue and drain round-trips.
type fakeKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string][]byte{}}
}

func (f *fakeKV) Get(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	value, ok := f.data[key]
	if !ok {
		return nil, store.ErrKeyNotFound
	}
	return value, nil
}

func (f *fakeKV) Set(_ context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.data[key] = value
	return nil
}

func (f *fakeKV) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.data, key)
	return nil
}

type engineFixture struct {
	remote *mock.MockRemoteStore
	repo   *mock.MockLocalRecordRepository
	queue  queue.PendingMutationQueue
	engine SyncEngine
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	remote := mock.NewMockRemoteStore(ctrl)
	repo := mock.NewMockLocalRecordRepository(ctrl)
	repo.EXPECT().EntityType().Return(models.EntityCustomer).AnyTimes()

	q := queue.NewPendingMutationQueue(models.EntityCustomer, newFakeKV(), logger.Nop())

	return &engineFixture{
		remote: remote,
		repo:   repo,
		queue:  q,
		engine: NewSyncEngine(remote, []entitySync{newEntitySync(repo, q)}, logger.Nop()),
	}
}

func customerRecord(localID int64, name string) models.Record {
	return models.Record{
		LocalID: localID,
		Fields:  models.Fields{models.FieldName: name},
	}
}

func TestSyncEngine_DrainReplaysInsert(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture(t)

	rec := customerRecord(5, "Ahmad")
	require.NoError(t, f.queue.Enqueue(ctx, models.MutationInsert, rec))

	f.remote.EXPECT().FindByLocalID(ctx, models.EntityCustomer, int64(5)).
		Return(models.Document{}, adapter.ErrNotFound)
	f.remote.EXPECT().Add(ctx, models.EntityCustomer, gomock.Any()).
		Return("remote-5", nil)
	f.repo.EXPECT().SetRemoteID(ctx, int64(5), "remote-5").Return(nil)
	f.remote.EXPECT().Query(ctx, models.EntityCustomer, "", "").
		Return([]models.Document{}, nil)

	require.NoError(t, f.engine.SyncNow(ctx))

	n, err := f.queue.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSyncEngine_DrainInsertAlreadyApplied(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture(t)

	require.NoError(t, f.queue.Enqueue(ctx, models.MutationInsert, customerRecord(5, "Ahmad")))

	// The twin already exists remotely, so no second Add happens.
	f.remote.EXPECT().FindByLocalID(ctx, models.EntityCustomer, int64(5)).
		Return(models.Document{ID: "remote-5", LocalID: 5}, nil)
	f.repo.EXPECT().SetRemoteID(ctx, int64(5), "remote-5").Return(nil)
	f.remote.EXPECT().Query(ctx, models.EntityCustomer, "", "").
		Return([]models.Document{}, nil)

	require.NoError(t, f.engine.SyncNow(ctx))
}

func TestSyncEngine_DrainInsertToleratesVanishedLocalRow(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture(t)

	require.NoError(t, f.queue.Enqueue(ctx, models.MutationInsert, customerRecord(5, "Ahmad")))

	// The local row was deleted while the insert sat queued. The remote add
	// still goes through; the missing id stamp is not a drain failure.
	f.remote.EXPECT().FindByLocalID(ctx, models.EntityCustomer, int64(5)).
		Return(models.Document{}, adapter.ErrNotFound)
	f.remote.EXPECT().Add(ctx, models.EntityCustomer, gomock.Any()).
		Return("remote-5", nil)
	f.repo.EXPECT().SetRemoteID(ctx, int64(5), "remote-5").
		Return(store.ErrRecordNotFound)
	f.remote.EXPECT().Query(ctx, models.EntityCustomer, "", "").
		Return([]models.Document{}, nil)

	require.NoError(t, f.engine.SyncNow(ctx))

	n, err := f.queue.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSyncEngine_DrainInsertConflictResolvesTwin(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture(t)

	require.NoError(t, f.queue.Enqueue(ctx, models.MutationInsert, customerRecord(5, "Ahmad")))

	gomock.InOrder(
		f.remote.EXPECT().FindByLocalID(ctx, models.EntityCustomer, int64(5)).
			Return(models.Document{}, adapter.ErrNotFound),
		f.remote.EXPECT().Add(ctx, models.EntityCustomer, gomock.Any()).
			Return("", adapter.ErrConflict),
		f.remote.EXPECT().FindByLocalID(ctx, models.EntityCustomer, int64(5)).
			Return(models.Document{ID: "remote-5"}, nil),
	)
	f.repo.EXPECT().SetRemoteID(ctx, int64(5), "remote-5").Return(nil)
	f.remote.EXPECT().Query(ctx, models.EntityCustomer, "", "").
		Return([]models.Document{}, nil)

	require.NoError(t, f.engine.SyncNow(ctx))
}

func TestSyncEngine_DrainUpdateSkipsVanishedTwin(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture(t)

	require.NoError(t, f.queue.Enqueue(ctx, models.MutationUpdate, customerRecord(7, "Karim")))

	// Twin deleted from another device: the update is consumed, not retried.
	f.remote.EXPECT().FindByLocalID(ctx, models.EntityCustomer, int64(7)).
		Return(models.Document{}, adapter.ErrNotFound)
	f.remote.EXPECT().Query(ctx, models.EntityCustomer, "", "").
		Return([]models.Document{}, nil)

	require.NoError(t, f.engine.SyncNow(ctx))

	n, err := f.queue.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSyncEngine_DrainDeleteOfAbsentTwinSucceeds(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture(t)

	rec := customerRecord(9, "Wali")
	rec.RemoteID = "remote-9"
	require.NoError(t, f.queue.Enqueue(ctx, models.MutationDelete, rec))

	f.remote.EXPECT().Delete(ctx, models.EntityCustomer, "remote-9").
		Return(adapter.ErrNotFound)
	f.remote.EXPECT().Query(ctx, models.EntityCustomer, "", "").
		Return([]models.Document{}, nil)

	require.NoError(t, f.engine.SyncNow(ctx))
}

func TestSyncEngine_DrainFailureKeepsQueueAndSkipsPull(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture(t)

	rec := customerRecord(3, "Ahmad")
	rec.RemoteID = "remote-3"
	require.NoError(t, f.queue.Enqueue(ctx, models.MutationUpdate, rec))
	require.NoError(t, f.queue.Enqueue(ctx, models.MutationDelete, rec))

	// The first replay fails, so the cycle stops before pulling. No Query
	// expectation: a pull would fail the test.
	f.remote.EXPECT().Update(ctx, models.EntityCustomer, gomock.Any()).
		Return(adapter.ErrUnavailable)

	err := f.engine.SyncNow(ctx)
	require.ErrorIs(t, err, adapter.ErrUnavailable)

	n, lenErr := f.queue.Len(ctx)
	require.NoError(t, lenErr)
	assert.Equal(t, 2, n)
}

func TestSyncEngine_PullMirrorsEveryDocument(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture(t)

	docs := []models.Document{
		{ID: "d1", LocalID: 1, Name: "Ahmad"},
		{ID: "d2", LocalID: 2, Name: "Karim"},
	}
	f.remote.EXPECT().Query(ctx, models.EntityCustomer, "", "").Return(docs, nil)
	f.repo.EXPECT().Upsert(ctx, docs[0].ToRecord()).Return(nil)
	f.repo.EXPECT().Upsert(ctx, docs[1].ToRecord()).Return(nil)

	require.NoError(t, f.engine.SyncNow(ctx))
}

func TestSyncEngine_MirrorRejectsUnknownEntity(t *testing.T) {
	f := newEngineFixture(t)

	err := f.engine.Mirror(context.Background(), models.EntityWaskat, nil)
	require.ErrorIs(t, err, ErrUnknownCollection)
}

func TestSyncEngine_SyncNowCoalescesConcurrentCallers(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture(t)

	release := make(chan struct{})
	entered := make(chan struct{})

	// First cycle blocks inside the pull until released. Exactly one pull may
	// happen: the trigger arriving mid-cycle is dropped, not queued.
	f.remote.EXPECT().Query(ctx, models.EntityCustomer, "", "").
		DoAndReturn(func(context.Context, models.EntityType, string, string) ([]models.Document, error) {
			close(entered)
			<-release
			return []models.Document{}, nil
		})

	done := make(chan error, 1)
	go func() { done <- f.engine.SyncNow(ctx) }()

	<-entered
	assert.True(t, f.engine.Syncing())

	// Arrives while the first cycle is in flight: returns immediately and
	// starts no second cycle.
	require.NoError(t, f.engine.SyncNow(ctx))

	close(release)
	require.NoError(t, <-done)
	assert.False(t, f.engine.Syncing())
}

func TestSyncEngine_DrainAppliesFIFOLastWriteWins(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture(t)

	first := customerRecord(4, "first")
	first.RemoteID = "remote-4"
	second := customerRecord(4, "second")
	second.RemoteID = "remote-4"

	require.NoError(t, f.queue.Enqueue(ctx, models.MutationUpdate, first))
	require.NoError(t, f.queue.Enqueue(ctx, models.MutationUpdate, second))

	var applied []string
	f.remote.EXPECT().Update(ctx, models.EntityCustomer, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ models.EntityType, doc models.Document) error {
			applied = append(applied, doc.Name)
			return nil
		}).Times(2)
	f.remote.EXPECT().Query(ctx, models.EntityCustomer, "", "").
		Return([]models.Document{}, nil)

	require.NoError(t, f.engine.SyncNow(ctx))
	assert.Equal(t, []string{"first", "second"}, applied)
}

func TestSyncEngine_PullFailureReported(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture(t)

	pullErr := errors.New("gateway timeout")
	f.remote.EXPECT().Query(ctx, models.EntityCustomer, "", "").
		Return(nil, pullErr)

	err := f.engine.SyncNow(ctx)
	require.ErrorIs(t, err, pullErr)
}
