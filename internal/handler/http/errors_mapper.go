package http

import (
	"errors"
	"net/http"

	"github.com/adilfashion/tailorsync/internal/service"
	"github.com/adilfashion/tailorsync/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrUnknownCollection: http.StatusNotFound,
	service.ErrDocumentNotFound:  http.StatusNotFound,
	service.ErrDuplicateDocument: http.StatusConflict,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
	store.ErrScanningRows:     http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
