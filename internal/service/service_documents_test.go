package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/adilfashion/tailorsync/internal/logger"
	"github.com/adilfashion/tailorsync/internal/mock"
	"github.com/adilfashion/tailorsync/internal/store"
	"github.com/adilfashion/tailorsync/models"
)

func newDocumentsFixture(t *testing.T) (DocumentService, *mock.MockDocumentRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mock.NewMockDocumentRepository(ctrl)

	return NewDocumentService(repo, logger.Nop()), repo
}

func TestDocumentService_AddAssignsIDAndTimestamps(t *testing.T) {
	ctx := context.Background()
	svc, repo := newDocumentsFixture(t)

	repo.EXPECT().Add(ctx, "customer", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, doc models.Document) error {
			_, err := uuid.Parse(doc.ID)
			assert.NoError(t, err)
			assert.NotNil(t, doc.CreatedAt)
			assert.NotNil(t, doc.UpdatedAt)
			assert.NotNil(t, doc.Fields)
			return nil
		})

	doc, err := svc.Add(ctx, "customer", models.Document{LocalID: 3, Name: "Ahmad"})
	require.NoError(t, err)
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, int64(3), doc.LocalID)
}

func TestDocumentService_AddDuplicateMapped(t *testing.T) {
	ctx := context.Background()
	svc, repo := newDocumentsFixture(t)

	repo.EXPECT().Add(ctx, "customer", gomock.Any()).Return(store.ErrDuplicateDocument)

	_, err := svc.Add(ctx, "customer", models.Document{LocalID: 3})
	require.ErrorIs(t, err, ErrDuplicateDocument)
}

func TestDocumentService_UnknownCollectionRejected(t *testing.T) {
	ctx := context.Background()
	svc, _ := newDocumentsFixture(t)

	_, err := svc.Add(ctx, "invoices", models.Document{})
	require.ErrorIs(t, err, ErrUnknownCollection)

	_, err = svc.Query(ctx, "invoices", models.DocumentQuery{})
	require.ErrorIs(t, err, ErrUnknownCollection)

	err = svc.Delete(ctx, "invoices", "some-id")
	require.ErrorIs(t, err, ErrUnknownCollection)
}

func TestDocumentService_GetNotFoundMapped(t *testing.T) {
	ctx := context.Background()
	svc, repo := newDocumentsFixture(t)

	repo.EXPECT().Get(ctx, "waskat", "missing").
		Return(models.Document{}, store.ErrDocumentNotFound)

	_, err := svc.Get(ctx, "waskat", "missing")
	require.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestDocumentService_QueryPassesFilters(t *testing.T) {
	ctx := context.Background()
	svc, repo := newDocumentsFixture(t)

	q := models.DocumentQuery{NameFrom: "Ah", NameTo: "Ah\uf8ff"}
	repo.EXPECT().Query(ctx, "customer", q).
		Return([]models.Document{{ID: "d1", Name: "Ahmad"}}, nil)

	docs, err := svc.Query(ctx, "customer", q)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Ahmad", docs[0].Name)
}

func TestDocumentService_UpdateKeepsPathID(t *testing.T) {
	ctx := context.Background()
	svc, repo := newDocumentsFixture(t)

	repo.EXPECT().Update(ctx, "customer", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, doc models.Document) error {
			assert.Equal(t, "path-id", doc.ID)
			assert.NotNil(t, doc.UpdatedAt)
			return nil
		})

	doc, err := svc.Update(ctx, "customer", "path-id", models.Document{ID: "body-id", Name: "Ahmad"})
	require.NoError(t, err)
	assert.Equal(t, "path-id", doc.ID)
}

func TestDocumentService_DeleteNotFoundMapped(t *testing.T) {
	ctx := context.Background()
	svc, repo := newDocumentsFixture(t)

	repo.EXPECT().Delete(ctx, "customer", "gone").Return(store.ErrDocumentNotFound)

	err := svc.Delete(ctx, "customer", "gone")
	require.ErrorIs(t, err, ErrDocumentNotFound)
}
