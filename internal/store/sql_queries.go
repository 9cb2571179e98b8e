package store

import (
	"github.com/Masterminds/squirrel"

	"github.com/adilfashion/tailorsync/models"
)

// Statements for the server-side documents table. Fields travel as jsonb;
// local_id and name are promoted columns so they can be indexed and filtered.
const (
	insertDocument = `
		INSERT INTO documents (id, collection, local_id, name, fields, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);`

	updateDocument = `
		UPDATE documents
		SET local_id = $1, name = $2, fields = $3, updated_at = $4
		WHERE collection = $5 AND id = $6;`

	deleteDocument = `DELETE FROM documents WHERE collection = $1 AND id = $2;`

	getDocument = `
		SELECT id, local_id, name, fields, created_at, updated_at
		FROM documents
		WHERE collection = $1 AND id = $2;`
)

// buildDocumentQuery builds the collection listing SELECT. The name bounds
// are inclusive on both ends so a prefix search can send the prefix and the
// prefix extended with the U+F8FF sentinel.
func buildDocumentQuery(collection string, q models.DocumentQuery) (string, []any, error) {
	builder := squirrel.Select("id", "local_id", "name", "fields", "created_at", "updated_at").
		From("documents").
		Where(squirrel.Eq{"collection": collection}).
		OrderBy("name", "id").
		PlaceholderFormat(squirrel.Dollar)

	if q.NameFrom != "" {
		builder = builder.Where(squirrel.GtOrEq{"name": q.NameFrom})
	}
	if q.NameTo != "" {
		builder = builder.Where(squirrel.LtOrEq{"name": q.NameTo})
	}
	if q.LocalID > 0 {
		builder = builder.Where(squirrel.Eq{"local_id": q.LocalID})
	}

	return builder.ToSql()
}
