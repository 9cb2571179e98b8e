package store

import (
	"context"

	"github.com/adilfashion/tailorsync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// DocumentRepository is the server-side access to the documents table. A
// collection groups the documents of one record type ("customer", "waskat").
type DocumentRepository interface {
	// Add inserts a new document. The caller supplies the id and timestamps.
	// Returns [ErrDuplicateDocument] when the (collection, local_id) pair is
	// already taken, meaning the same offline insert was applied before.
	Add(ctx context.Context, collection string, doc models.Document) error

	// Get returns one document by id, or [ErrDocumentNotFound].
	Get(ctx context.Context, collection, id string) (models.Document, error)

	// Query lists the collection's documents matching q, ordered by name then
	// id. No matches yields an empty, non-nil slice.
	Query(ctx context.Context, collection string, q models.DocumentQuery) ([]models.Document, error)

	// Update overwrites an existing document's local id, name and fields.
	// Returns [ErrDocumentNotFound] when the id does not exist.
	Update(ctx context.Context, collection string, doc models.Document) error

	// Delete removes one document by id. Returns [ErrDocumentNotFound] when
	// the id does not exist.
	Delete(ctx context.Context, collection, id string) error
}
