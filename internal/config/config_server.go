package config

import (
	"fmt"
	"time"
)

// Defaults applied by [GetServerConfig] when a value is not configured.
const (
	defaultHTTPAddress          = "0.0.0.0:8080"
	defaultServerRequestTimeout = 30 * time.Second
)

// ServerApp holds server-side application settings derived from the shared
// structured config.
type ServerApp struct {
	// APIToken is the static bearer token required on document API requests.
	// Auth is disabled when empty.
	APIToken string
}

// ServerStorage groups server storage backend settings.
type ServerStorage struct {
	// DB holds the PostgreSQL settings for the document store.
	DB DB
}

// ServerConfig is the top-level server configuration assembled from
// [StructuredConfig].
type ServerConfig struct {
	// App contains application-level server settings.
	App ServerApp
	// Server contains inbound transport settings.
	Server Server
	// Storage contains server storage settings.
	Storage ServerStorage
}

// GetServerConfig builds and validates a server-specific config view from the
// merged structured configuration.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := &ServerConfig{
		App: ServerApp{
			APIToken: cfg.App.APIToken,
		},
		Server:  cfg.Server,
		Storage: ServerStorage{DB: cfg.Storage.DB},
	}
	serverCfg.applyDefaults()

	return serverCfg, serverCfg.validate()
}

func (cfg *ServerConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = defaultHTTPAddress
	}
	if cfg.Server.RequestTimeout <= 0 {
		cfg.Server.RequestTimeout = defaultServerRequestTimeout
	}
}

func (cfg *ServerConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}
	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	return nil
}
