package service

import (
	"context"
	"fmt"

	"github.com/adilfashion/tailorsync/internal/adapter"
	"github.com/adilfashion/tailorsync/internal/config"
	"github.com/adilfashion/tailorsync/internal/connectivity"
	"github.com/adilfashion/tailorsync/internal/logger"
	"github.com/adilfashion/tailorsync/internal/queue"
	"github.com/adilfashion/tailorsync/internal/store"
	"github.com/adilfashion/tailorsync/models"
)

// ClientServices bundles everything the device-side app works with: one
// record service per entity, the admin guard, the sync engine and its
// background job, and the connectivity monitor feeding them.
type ClientServices struct {
	Customers RecordService
	Waskats   RecordService
	Admin     AdminService
	Engine    SyncEngine
	SyncJob   ClientSyncJob
	Monitor   connectivity.Monitor
}

// NewClientServices wires the device-side service graph over the local
// storages and the remote document store described by cfg.
func NewClientServices(ctx context.Context, cfg *config.ClientConfig, storages *store.ClientStorages, log *logger.Logger) (*ClientServices, error) {
	remote := adapter.NewHTTPRemoteStore(cfg.Adapter, cfg.App.APIToken)
	monitor := connectivity.NewMonitor(remote, cfg.Adapter.ProbeInterval, log)

	customerQueue := queue.NewPendingMutationQueue(models.EntityCustomer, storages.KeyValues, log)
	waskatQueue := queue.NewPendingMutationQueue(models.EntityWaskat, storages.KeyValues, log)

	engine := NewSyncEngine(remote, []entitySync{
		newEntitySync(storages.Customers, customerQueue),
		newEntitySync(storages.Waskats, waskatQueue),
	}, log)

	admin, err := NewAdminService(ctx, storages.Admin, log)
	if err != nil {
		return nil, fmt.Errorf("error creating admin service: %w", err)
	}

	return &ClientServices{
		Customers: NewRecordService(storages.Customers, customerQueue, remote, monitor, engine, log),
		Waskats:   NewRecordService(storages.Waskats, waskatQueue, remote, monitor, engine, log),
		Admin:     admin,
		Engine:    engine,
		SyncJob:   NewClientSyncJob(engine, monitor, log),
		Monitor:   monitor,
	}, nil
}

// RecordService returns the service owning the given entity type.
func (s *ClientServices) RecordService(entity models.EntityType) (RecordService, error) {
	switch entity {
	case models.EntityCustomer:
		return s.Customers, nil
	case models.EntityWaskat:
		return s.Waskats, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, entity)
	}
}
