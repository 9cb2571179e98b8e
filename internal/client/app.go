package client

import (
	"context"
	"fmt"

	"github.com/adilfashion/tailorsync/internal/config"
	"github.com/adilfashion/tailorsync/internal/logger"
	"github.com/adilfashion/tailorsync/internal/service"
	"github.com/adilfashion/tailorsync/internal/store"
)

type App struct {
	services *service.ClientServices
	storages *store.ClientStorages
	cfg      *config.ClientConfig
	logger   *logger.Logger
}

// NewApp opens the local database and wires the device-side service graph.
func NewApp(ctx context.Context, cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	storages, err := store.NewClientStorages(ctx, cfg.Storage.DB, log)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	services, err := service.NewClientServices(ctx, cfg, storages, log)
	if err != nil {
		_ = storages.Close()
		return nil, fmt.Errorf("create client services: %w", err)
	}

	return &App{
		services: services,
		storages: storages,
		cfg:      cfg,
		logger:   log,
	}, nil
}

// Services exposes the wired service graph for a UI embedding the runtime.
func (a *App) Services() *service.ClientServices {
	return a.services
}

// Run starts the connectivity monitor and the background sync job, then
// blocks until ctx is cancelled. Queued offline work is flushed as soon as
// the remote store is reachable.
func (a *App) Run(ctx context.Context) error {
	a.services.Monitor.Start(ctx)
	defer a.services.Monitor.Stop()

	a.services.SyncJob.Start(ctx, a.cfg.Workers.SyncInterval)
	defer a.services.SyncJob.Stop()

	a.logger.Info().
		Bool("connected", a.services.Monitor.Connected()).
		Msg("client started")

	<-ctx.Done()

	a.logger.Info().Msg("client stopped")

	return a.storages.Close()
}
