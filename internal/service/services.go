package service

import (
	"github.com/adilfashion/tailorsync/internal/logger"
	"github.com/adilfashion/tailorsync/internal/store"
)

// Services bundles the server-side services.
type Services struct {
	Documents DocumentService
}

// NewServices wires the server-side service graph over the storages.
func NewServices(storages *store.Storages, log *logger.Logger) *Services {
	return &Services{
		Documents: NewDocumentService(storages.Documents, log),
	}
}
