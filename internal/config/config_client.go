package config

import (
	"fmt"
	"time"
)

// Defaults applied by [GetClientConfig] when a value is not configured.
const (
	defaultLocalDSN       = "tailorsync.db"
	defaultRemoteBaseURL  = "http://localhost:8080"
	defaultRequestTimeout = 15 * time.Second
	defaultProbeInterval  = 30 * time.Second
)

// ClientApp holds client-side application settings derived from the shared
// structured config.
type ClientApp struct {
	// APIToken is attached as a bearer token to all document API requests.
	APIToken string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// BaseURL is the remote document store endpoint used by the client.
	BaseURL string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
	// ProbeInterval is the connectivity monitor's re-probe interval.
	ProbeInterval time.Duration
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite database file path used by the client.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the sync job re-triggers while
	// connected. Zero disables the interval trigger.
	SyncInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level client settings.
	App ClientApp
	// Adapter contains client transport addresses and timeouts.
	Adapter ClientAdapter
	// Storage contains client storage settings.
	Storage ClientStorage
	// Workers contains background job settings.
	Workers ClientWorkers
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, applies client defaults, and validates the
// resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			APIToken: cfg.App.APIToken,
		},
		Adapter: ClientAdapter{
			BaseURL:        cfg.Adapter.BaseURL,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			ProbeInterval:  cfg.Adapter.ProbeInterval,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.Local.DSN,
			},
		},
		Workers: ClientWorkers{SyncInterval: cfg.Workers.SyncInterval},
	}
	clientCfg.applyDefaults()

	return clientCfg, clientCfg.validate()
}

func (cfg *ClientConfig) applyDefaults() {
	if cfg.Storage.DB.DSN == "" {
		cfg.Storage.DB.DSN = defaultLocalDSN
	}
	if cfg.Adapter.BaseURL == "" {
		cfg.Adapter.BaseURL = defaultRemoteBaseURL
	}
	if cfg.Adapter.RequestTimeout <= 0 {
		cfg.Adapter.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Adapter.ProbeInterval <= 0 {
		cfg.Adapter.ProbeInterval = defaultProbeInterval
	}
}
