package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/adilfashion/tailorsync/internal/logger"
	"github.com/adilfashion/tailorsync/internal/store"
	"github.com/adilfashion/tailorsync/models"
)

// knownCollections are the record types the store accepts. Requests for any
// other collection are rejected before touching the database.
var knownCollections = map[string]struct{}{
	string(models.EntityCustomer): {},
	string(models.EntityWaskat):   {},
}

type documentService struct {
	repo   store.DocumentRepository
	logger *logger.Logger
}

// NewDocumentService returns the server-side service over the documents
// table.
func NewDocumentService(repo store.DocumentRepository, log *logger.Logger) DocumentService {
	return &documentService{
		repo:   repo,
		logger: log.GetChildLogger(),
	}
}

func (s *documentService) Add(ctx context.Context, collection string, doc models.Document) (models.Document, error) {
	if err := checkCollection(collection); err != nil {
		return models.Document{}, err
	}

	now := time.Now().UTC()
	doc.ID = uuid.NewString()
	doc.CreatedAt = &now
	doc.UpdatedAt = &now
	if doc.Fields == nil {
		doc.Fields = models.Fields{}
	}

	err := s.repo.Add(ctx, collection, doc)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateDocument) {
			return models.Document{}, ErrDuplicateDocument
		}
		return models.Document{}, fmt.Errorf("error adding document: %w", err)
	}

	s.logger.Debug().
		Str("func", "documentService.Add").
		Str("collection", collection).
		Str("id", doc.ID).
		Int64("localId", doc.LocalID).
		Msg("document added")

	return doc, nil
}

func (s *documentService) Get(ctx context.Context, collection, id string) (models.Document, error) {
	if err := checkCollection(collection); err != nil {
		return models.Document{}, err
	}

	doc, err := s.repo.Get(ctx, collection, id)
	if err != nil {
		if errors.Is(err, store.ErrDocumentNotFound) {
			return models.Document{}, ErrDocumentNotFound
		}
		return models.Document{}, fmt.Errorf("error getting document: %w", err)
	}

	return doc, nil
}

func (s *documentService) Query(ctx context.Context, collection string, q models.DocumentQuery) ([]models.Document, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}

	docs, err := s.repo.Query(ctx, collection, q)
	if err != nil {
		return nil, fmt.Errorf("error querying documents: %w", err)
	}

	return docs, nil
}

func (s *documentService) Update(ctx context.Context, collection, id string, doc models.Document) (models.Document, error) {
	if err := checkCollection(collection); err != nil {
		return models.Document{}, err
	}

	now := time.Now().UTC()
	doc.ID = id
	doc.UpdatedAt = &now
	if doc.Fields == nil {
		doc.Fields = models.Fields{}
	}

	err := s.repo.Update(ctx, collection, doc)
	if err != nil {
		if errors.Is(err, store.ErrDocumentNotFound) {
			return models.Document{}, ErrDocumentNotFound
		}
		return models.Document{}, fmt.Errorf("error updating document: %w", err)
	}

	return doc, nil
}

func (s *documentService) Delete(ctx context.Context, collection, id string) error {
	if err := checkCollection(collection); err != nil {
		return err
	}

	err := s.repo.Delete(ctx, collection, id)
	if err != nil {
		if errors.Is(err, store.ErrDocumentNotFound) {
			return ErrDocumentNotFound
		}
		return fmt.Errorf("error deleting document: %w", err)
	}

	return nil
}

func checkCollection(collection string) error {
	if _, ok := knownCollections[collection]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}

	return nil
}
