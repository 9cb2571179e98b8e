// Package http exposes the document store over HTTP: a ping endpoint for
// connectivity probes and a per-collection document API consumed by the
// device-side sync layer.
package http

import (
	"github.com/adilfashion/tailorsync/internal/logger"
	"github.com/adilfashion/tailorsync/internal/service"
)

type Handler struct {
	services *service.Services
	apiToken string

	logger *logger.Logger
}

// NewHandler creates the HTTP handler set. A non-empty apiToken makes the
// document routes require a matching bearer token; ping stays open so probes
// work without credentials.
func NewHandler(services *service.Services, apiToken string, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		apiToken: apiToken,
		logger:   logger,
	}
}
