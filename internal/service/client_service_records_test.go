package service

import (
	"context"
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

type recordsFixture struct {
	repo    *mock.MockLocalRecordRepository
	remote  *mock.MockRemoteStore
	monitor *mock.MockMonitor
	engine  *mock.MockSyncEngine
	queue   queue.PendingMutationQueue
	service RecordService
}

func newRecordsFixture(t *testing.T) *recordsFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mock.NewMockLocalRecordRepository(ctrl)
	repo.EXPECT().EntityType().Return(models.EntityCustomer).AnyTimes()
	remote := mock.NewMockRemoteStore(ctrl)
	monitor := mock.NewMockMonitor(ctrl)
	engine := mock.NewMockSyncEngine(ctrl)
	q := queue.NewPendingMutationQueue(models.EntityCustomer, newFakeKV(), logger.Nop())

	return &recordsFixture{
		repo:    repo,
		remote:  remote,
		monitor: monitor,
		engine:  engine,
		queue:   q,
		service: NewRecordService(repo, q, remote, monitor, engine, logger.Nop()),
	}
}

func (f *recordsFixture) queueLen(t *testing.T) int {
	t.Helper()

	n, err := f.queue.Len(context.Background())
	require.NoError(t, err)
	return n
}

func TestRecordService_CreateOnline(t *testing.T) {
	ctx := context.Background()
	f := newRecordsFixture(t)

	f.monitor.EXPECT().Connected().Return(true)
	f.repo.EXPECT().Insert(ctx, gomock.Any()).Return(int64(11), nil)
	f.remote.EXPECT().Add(ctx, models.EntityCustomer, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ models.EntityType, doc models.Document) (string, error) {
			assert.Equal(t, int64(11), doc.LocalID)
			return "remote-11", nil
		})
	f.repo.EXPECT().SetRemoteID(ctx, int64(11), "remote-11").Return(nil)

	rec, outcome, err := f.service.Create(ctx, customerRecord(0, "Ahmad"))
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeSynced, outcome)
	assert.Equal(t, int64(11), rec.LocalID)
	assert.Equal(t, "remote-11", rec.RemoteID)
	assert.Zero(t, f.queueLen(t))
}

func TestRecordService_CreateOffline(t *testing.T) {
	ctx := context.Background()
	f := newRecordsFixture(t)

	f.monitor.EXPECT().Connected().Return(false)
	f.repo.EXPECT().Insert(ctx, gomock.Any()).Return(int64(11), nil)

	rec, outcome, err := f.service.Create(ctx, customerRecord(0, "Ahmad"))
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeSavedOffline, outcome)
	assert.Equal(t, int64(11), rec.LocalID)
	assert.Empty(t, rec.RemoteID)
	assert.Equal(t, 1, f.queueLen(t))
}

func TestRecordService_CreateDefaultsRegistrationDate(t *testing.T) {
	ctx := context.Background()
	f := newRecordsFixture(t)

	f.monitor.EXPECT().Connected().Return(false)
	f.repo.EXPECT().Insert(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, rec models.Record) (int64, error) {
			assert.NotEmpty(t, rec.Fields.Str(models.FieldRegistrationDate))
			return 1, nil
		})

	_, _, err := f.service.Create(ctx, customerRecord(0, "Ahmad"))
	require.NoError(t, err)
}

func TestRecordService_CreatePushFailureDemotesToQueue(t *testing.T) {
	ctx := context.Background()
	f := newRecordsFixture(t)

	f.monitor.EXPECT().Connected().Return(true)
	f.repo.EXPECT().Insert(ctx, gomock.Any()).Return(int64(11), nil)
	f.remote.EXPECT().Add(ctx, models.EntityCustomer, gomock.Any()).
		Return("", adapter.ErrUnavailable)

	rec, outcome, err := f.service.Create(ctx, customerRecord(0, "Ahmad"))
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeSavedOffline, outcome)
	assert.Equal(t, int64(11), rec.LocalID)
	assert.Equal(t, 1, f.queueLen(t))
}

func TestRecordService_CreateConflictAdoptsTwinID(t *testing.T) {
	ctx := context.Background()
	f := newRecordsFixture(t)

	f.monitor.EXPECT().Connected().Return(true)
	f.repo.EXPECT().Insert(ctx, gomock.Any()).Return(int64(11), nil)
	f.remote.EXPECT().Add(ctx, models.EntityCustomer, gomock.Any()).
		Return("", adapter.ErrConflict)
	f.remote.EXPECT().FindByLocalID(ctx, models.EntityCustomer, int64(11)).
		Return(models.Document{ID: "remote-11"}, nil)
	f.repo.EXPECT().SetRemoteID(ctx, int64(11), "remote-11").Return(nil)

	rec, outcome, err := f.service.Create(ctx, customerRecord(0, "Ahmad"))
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeSynced, outcome)
	assert.Equal(t, "remote-11", rec.RemoteID)
}

func TestRecordService_UpdateRejectsZeroLocalID(t *testing.T) {
	f := newRecordsFixture(t)

	_, err := f.service.Update(context.Background(), customerRecord(0, "Ahmad"))
	require.ErrorIs(t, err, ErrRecordNotFound)
}

func TestRecordService_UpdateOnlineUsesStoredRemoteID(t *testing.T) {
	ctx := context.Background()
	f := newRecordsFixture(t)

	stored := customerRecord(11, "Ahmad")
	stored.RemoteID = "remote-11"
	stored.Fields[models.FieldRegistrationDate] = "2026-01-15"

	f.repo.EXPECT().Update(ctx, int64(11), gomock.Any()).Return(nil)
	f.repo.EXPECT().Get(ctx, int64(11)).Return(stored, nil)
	f.monitor.EXPECT().Connected().Return(true)
	f.remote.EXPECT().Update(ctx, models.EntityCustomer, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ models.EntityType, doc models.Document) error {
			assert.Equal(t, "remote-11", doc.ID)
			assert.Equal(t, "2026-01-15", doc.Fields.Str(models.FieldRegistrationDate))
			return nil
		})

	outcome, err := f.service.Update(ctx, customerRecord(11, "Ahmad Shah"))
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeSynced, outcome)
}

func TestRecordService_UpdateOfflineQueuesSnapshot(t *testing.T) {
	ctx := context.Background()
	f := newRecordsFixture(t)

	stored := customerRecord(11, "Ahmad")
	stored.RemoteID = "remote-11"

	f.repo.EXPECT().Update(ctx, int64(11), gomock.Any()).Return(nil)
	f.repo.EXPECT().Get(ctx, int64(11)).Return(stored, nil)
	f.monitor.EXPECT().Connected().Return(false)

	outcome, err := f.service.Update(ctx, customerRecord(11, "Ahmad Shah"))
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeSavedOffline, outcome)

	entries, peekErr := f.queue.PeekAll(ctx)
	require.NoError(t, peekErr)
	require.Len(t, entries, 1)
	assert.Equal(t, models.MutationUpdate, entries[0].Kind)
	assert.Equal(t, "remote-11", entries[0].Record.RemoteID)
	assert.Equal(t, "Ahmad Shah", entries[0].Record.Name())
}

func TestRecordService_UpdateWithNilFields(t *testing.T) {
	ctx := context.Background()
	f := newRecordsFixture(t)

	stored := customerRecord(11, "Ahmad")
	stored.RemoteID = "remote-11"
	stored.Fields[models.FieldRegistrationDate] = "2026-01-15"

	f.repo.EXPECT().Update(ctx, int64(11), gomock.Any()).Return(nil)
	f.repo.EXPECT().Get(ctx, int64(11)).Return(stored, nil)
	f.monitor.EXPECT().Connected().Return(false)

	// A record carrying no fields at all must still pick up the stored
	// registration date instead of panicking on the nil map.
	outcome, err := f.service.Update(ctx, models.Record{LocalID: 11})
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeSavedOffline, outcome)

	entries, peekErr := f.queue.PeekAll(ctx)
	require.NoError(t, peekErr)
	require.Len(t, entries, 1)
	assert.Equal(t, "2026-01-15", entries[0].Record.Fields.Str(models.FieldRegistrationDate))
}

func TestRecordService_UpdateMissingRowMapped(t *testing.T) {
	ctx := context.Background()
	f := newRecordsFixture(t)

	f.repo.EXPECT().Update(ctx, int64(11), gomock.Any()).Return(store.ErrRecordNotFound)

	_, err := f.service.Update(ctx, customerRecord(11, "Ahmad"))
	require.ErrorIs(t, err, ErrRecordNotFound)
}

func TestRecordService_UpdateVanishedTwinStillSynced(t *testing.T) {
	ctx := context.Background()
	f := newRecordsFixture(t)

	f.repo.EXPECT().Update(ctx, int64(11), gomock.Any()).Return(nil)
	f.repo.EXPECT().Get(ctx, int64(11)).Return(customerRecord(11, "Ahmad"), nil)
	f.monitor.EXPECT().Connected().Return(true)
	f.remote.EXPECT().FindByLocalID(ctx, models.EntityCustomer, int64(11)).
		Return(models.Document{}, adapter.ErrNotFound)

	outcome, err := f.service.Update(ctx, customerRecord(11, "Ahmad"))
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeSynced, outcome)
	assert.Zero(t, f.queueLen(t))
}

func TestRecordService_DeleteOnline(t *testing.T) {
	ctx := context.Background()
	f := newRecordsFixture(t)

	stored := customerRecord(11, "Ahmad")
	stored.RemoteID = "remote-11"

	f.repo.EXPECT().Get(ctx, int64(11)).Return(stored, nil)
	f.repo.EXPECT().Delete(ctx, int64(11)).Return(nil)
	f.monitor.EXPECT().Connected().Return(true)
	f.remote.EXPECT().Delete(ctx, models.EntityCustomer, "remote-11").Return(nil)

	outcome, err := f.service.Delete(ctx, 11)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeSynced, outcome)
}

func TestRecordService_DeleteAbsentRowIsSynced(t *testing.T) {
	ctx := context.Background()
	f := newRecordsFixture(t)

	f.repo.EXPECT().Get(ctx, int64(42)).Return(models.Record{}, store.ErrRecordNotFound)

	outcome, err := f.service.Delete(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeSynced, outcome)
	assert.Zero(t, f.queueLen(t))
}

func TestRecordService_DeleteOfflineQueuesSnapshot(t *testing.T) {
	ctx := context.Background()
	f := newRecordsFixture(t)

	f.repo.EXPECT().Get(ctx, int64(11)).Return(customerRecord(11, "Ahmad"), nil)
	f.repo.EXPECT().Delete(ctx, int64(11)).Return(nil)
	f.monitor.EXPECT().Connected().Return(false)

	outcome, err := f.service.Delete(ctx, 11)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeSavedOffline, outcome)

	entries, peekErr := f.queue.PeekAll(ctx)
	require.NoError(t, peekErr)
	require.Len(t, entries, 1)
	assert.Equal(t, models.MutationDelete, entries[0].Kind)
	assert.Equal(t, int64(11), entries[0].Record.LocalID)
}

func TestRecordService_SearchOnlineMirrorsResults(t *testing.T) {
	ctx := context.Background()
	f := newRecordsFixture(t)

	docs := []models.Document{{ID: "d1", LocalID: 1, Name: "Ahmad"}}
	f.monitor.EXPECT().Connected().Return(true)
	f.remote.EXPECT().QueryByNamePrefix(ctx, models.EntityCustomer, "Ah").Return(docs, nil)
	f.engine.EXPECT().Mirror(ctx, models.EntityCustomer, docs).Return(nil)

	records, err := f.service.Search(ctx, "Ah")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Ahmad", records[0].Name())
	assert.Equal(t, "d1", records[0].RemoteID)
}

func TestRecordService_SearchFallsBackToLocalTable(t *testing.T) {
	ctx := context.Background()
	f := newRecordsFixture(t)

	f.monitor.EXPECT().Connected().Return(true)
	f.remote.EXPECT().QueryByNamePrefix(ctx, models.EntityCustomer, "Ah").
		Return(nil, adapter.ErrUnavailable)
	f.repo.EXPECT().List(ctx, "Ah").Return([]models.Record{customerRecord(1, "Ahmad")}, nil)

	records, err := f.service.Search(ctx, "Ah")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(1), records[0].LocalID)
}

func TestRecordService_SearchOfflineUsesLocalTable(t *testing.T) {
	ctx := context.Background()
	f := newRecordsFixture(t)

	f.monitor.EXPECT().Connected().Return(false)
	f.repo.EXPECT().List(ctx, "").Return([]models.Record{}, nil)

	records, err := f.service.Search(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRecordService_GetMapsNotFound(t *testing.T) {
	ctx := context.Background()
	f := newRecordsFixture(t)

	f.repo.EXPECT().Get(ctx, int64(5)).Return(models.Record{}, store.ErrRecordNotFound)

	_, err := f.service.Get(ctx, 5)
	require.ErrorIs(t, err, ErrRecordNotFound)
}
