package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/adilfashion/tailorsync/internal/config"
	"github.com/adilfashion/tailorsync/models"
)

// namePrefixSentinel closes a prefix range: every name starting with the
// prefix sorts between the prefix itself and prefix+sentinel inclusive.
const namePrefixSentinel = "\uf8ff"

type httpRemoteStore struct {
	client *resty.Client
}

// NewHTTPRemoteStore returns the resty-backed RemoteStore for the document
// API at cfg.BaseURL. A non-empty apiToken is attached as a bearer token to
// every request.
func NewHTTPRemoteStore(cfg config.ClientAdapter, apiToken string) RemoteStore {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.RequestTimeout)
	if apiToken != "" {
		cli.SetAuthToken(apiToken)
	}

	return &httpRemoteStore{client: cli}
}

func (h *httpRemoteStore) Ping(ctx context.Context) error {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/ping")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	return mapHTTPError(resp)
}

func (h *httpRemoteStore) Add(ctx context.Context, entity models.EntityType, doc models.Document) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(doc).
		Post(collectionPath(entity))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	var created models.AddDocumentResponse
	if err = json.Unmarshal(resp.Body(), &created); err != nil {
		return "", fmt.Errorf("add document decode response: %w", err)
	}

	return created.ID, nil
}

func (h *httpRemoteStore) Query(ctx context.Context, entity models.EntityType, nameFrom, nameTo string) ([]models.Document, error) {
	req := h.client.R().SetContext(ctx)
	if nameFrom != "" {
		req.SetQueryParam("nameFrom", nameFrom)
	}
	if nameTo != "" {
		req.SetQueryParam("nameTo", nameTo)
	}

	return h.query(req, entity)
}

func (h *httpRemoteStore) QueryByNamePrefix(ctx context.Context, entity models.EntityType, prefix string) ([]models.Document, error) {
	if prefix == "" {
		return h.Query(ctx, entity, "", "")
	}

	return h.Query(ctx, entity, prefix, prefix+namePrefixSentinel)
}

func (h *httpRemoteStore) FindByLocalID(ctx context.Context, entity models.EntityType, localID int64) (models.Document, error) {
	req := h.client.R().
		SetContext(ctx).
		SetQueryParam("localId", strconv.FormatInt(localID, 10))

	docs, err := h.query(req, entity)
	if err != nil {
		return models.Document{}, err
	}
	if len(docs) == 0 {
		return models.Document{}, ErrNotFound
	}

	return docs[0], nil
}

func (h *httpRemoteStore) Update(ctx context.Context, entity models.EntityType, doc models.Document) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(doc).
		Put(collectionPath(entity) + "/" + doc.ID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	return mapHTTPError(resp)
}

func (h *httpRemoteStore) Delete(ctx context.Context, entity models.EntityType, id string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		Delete(collectionPath(entity) + "/" + id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	return mapHTTPError(resp)
}

func (h *httpRemoteStore) query(req *resty.Request, entity models.EntityType) ([]models.Document, error) {
	resp, err := req.Get(collectionPath(entity))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	docs := make([]models.Document, 0)
	if err = json.Unmarshal(resp.Body(), &docs); err != nil {
		return nil, fmt.Errorf("query documents decode response: %w", err)
	}

	return docs, nil
}

func collectionPath(entity models.EntityType) string {
	return "/api/collections/" + string(entity) + "/documents"
}

func mapHTTPError(resp *resty.Response) error {
	code := resp.StatusCode()
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusConflict:
		return ErrConflict
	case code == http.StatusUnauthorized:
		return ErrUnauthorized
	case code >= 500:
		return fmt.Errorf("%w: status %d", ErrUnavailable, code)
	default:
		return fmt.Errorf("%w: status %d", ErrRemote, code)
	}
}
