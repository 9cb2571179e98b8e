package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/adilfashion/tailorsync/internal/logger"
	"github.com/adilfashion/tailorsync/models"
)

type documentRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewDocumentRepository returns the repository backing the server-side
// documents table.
func NewDocumentRepository(db *DB) DocumentRepository {
	return &documentRepository{
		db:     db,
		logger: db.logger.GetChildLogger(),
	}
}

func (r *documentRepository) Add(ctx context.Context, collection string, doc models.Document) error {
	fields, err := json.Marshal(doc.Fields)
	if err != nil {
		return fmt.Errorf("error marshaling document fields: %w", err)
	}

	_, err = r.db.ExecContext(ctx, insertDocument,
		doc.ID, collection, doc.LocalID, doc.Name, fields, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateDocument
		}
		r.logger.Err(err).Str("func", "documentRepository.Add").Str("collection", collection).Msg("error inserting document")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (r *documentRepository) Get(ctx context.Context, collection, id string) (models.Document, error) {
	row := r.db.QueryRowContext(ctx, getDocument, collection, id)

	doc, err := scanDocument(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Document{}, ErrDocumentNotFound
		}
		r.logger.Err(err).Str("func", "documentRepository.Get").Str("collection", collection).Msg("error scanning document row")
		return models.Document{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return doc, nil
}

func (r *documentRepository) Query(ctx context.Context, collection string, q models.DocumentQuery) ([]models.Document, error) {
	query, args, err := buildDocumentQuery(collection, q)
	if err != nil {
		r.logger.Err(err).Str("func", "documentRepository.Query").Msg("error building document query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).Str("func", "documentRepository.Query").Str("collection", collection).Msg("error querying documents")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	docs := make([]models.Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows.Scan)
		if err != nil {
			r.logger.Err(err).Str("func", "documentRepository.Query").Msg("error scanning document rows")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		docs = append(docs, doc)
	}
	if err = rows.Err(); err != nil {
		r.logger.Err(err).Str("func", "documentRepository.Query").Msg("error iterating document rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return docs, nil
}

func (r *documentRepository) Update(ctx context.Context, collection string, doc models.Document) error {
	fields, err := json.Marshal(doc.Fields)
	if err != nil {
		return fmt.Errorf("error marshaling document fields: %w", err)
	}

	res, err := r.db.ExecContext(ctx, updateDocument,
		doc.LocalID, doc.Name, fields, doc.UpdatedAt, collection, doc.ID,
	)
	if err != nil {
		r.logger.Err(err).Str("func", "documentRepository.Update").Str("collection", collection).Msg("error updating document")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		r.logger.Err(err).Str("func", "documentRepository.Update").Msg("error reading affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrDocumentNotFound
	}

	return nil
}

func (r *documentRepository) Delete(ctx context.Context, collection, id string) error {
	res, err := r.db.ExecContext(ctx, deleteDocument, collection, id)
	if err != nil {
		r.logger.Err(err).Str("func", "documentRepository.Delete").Str("collection", collection).Msg("error deleting document")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		r.logger.Err(err).Str("func", "documentRepository.Delete").Msg("error reading affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrDocumentNotFound
	}

	return nil
}

func scanDocument(scan func(dest ...any) error) (models.Document, error) {
	var (
		doc    models.Document
		fields []byte
	)

	err := scan(&doc.ID, &doc.LocalID, &doc.Name, &fields, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		return models.Document{}, err
	}

	if len(fields) > 0 {
		if err = json.Unmarshal(fields, &doc.Fields); err != nil {
			return models.Document{}, fmt.Errorf("error unmarshaling document fields: %w", err)
		}
	}

	return doc, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
