package service

import (
	"context"

	"github.com/adilfashion/tailorsync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// DocumentService is the server-side API over the document collections.
type DocumentService interface {
	// Add stores a new document in the collection, assigning its id and
	// timestamps. Returns [ErrDuplicateDocument] when the document's localId
	// is already taken.
	Add(ctx context.Context, collection string, doc models.Document) (models.Document, error)

	// Get returns one document, or [ErrDocumentNotFound].
	Get(ctx context.Context, collection, id string) (models.Document, error)

	// Query lists the collection's documents matching q.
	Query(ctx context.Context, collection string, q models.DocumentQuery) ([]models.Document, error)

	// Update overwrites an existing document, or returns
	// [ErrDocumentNotFound].
	Update(ctx context.Context, collection, id string, doc models.Document) (models.Document, error)

	// Delete removes a document, or returns [ErrDocumentNotFound].
	Delete(ctx context.Context, collection, id string) error
}
