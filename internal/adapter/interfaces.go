package adapter

import (
	"context"

	"github.com/adilfashion/tailorsync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// RemoteStore is the client-side view of the remote document store. One
// collection per entity type; documents carry the flat field map plus the
// originating local id.
type RemoteStore interface {
	// Ping checks reachability. A nil return means the store answered.
	Ping(ctx context.Context) error

	// Add creates a document and returns the assigned remote id. Returns
	// [ErrConflict] when a document with the same local id already exists.
	Add(ctx context.Context, entity models.EntityType, doc models.Document) (string, error)

	// Query lists documents whose name falls in [nameFrom, nameTo]. Empty
	// bounds list the whole collection.
	Query(ctx context.Context, entity models.EntityType, nameFrom, nameTo string) ([]models.Document, error)

	// QueryByNamePrefix lists documents whose name starts with prefix, using
	// the inclusive range [prefix, prefix+U+F8FF].
	QueryByNamePrefix(ctx context.Context, entity models.EntityType, prefix string) ([]models.Document, error)

	// FindByLocalID returns the document stamped with the given local id, or
	// [ErrNotFound].
	FindByLocalID(ctx context.Context, entity models.EntityType, localID int64) (models.Document, error)

	// Update overwrites the document with doc.ID. Returns [ErrNotFound] when
	// it does not exist.
	Update(ctx context.Context, entity models.EntityType, doc models.Document) error

	// Delete removes the document. Returns [ErrNotFound] when it does not
	// exist.
	Delete(ctx context.Context, entity models.EntityType, id string) error
}
