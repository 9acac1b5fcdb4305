package config

import (
	"fmt"
	"time"
)

// ClientApp holds client-side application settings derived from the shared
// structured config.
type ClientApp struct {
	// Mode is [ModeLocal] or [ModeRemote].
	Mode string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the garage server base URL, always with a scheme.
	HTTPAddress string
	// RequestTimeout is the timeout for a single outbound request.
	RequestTimeout time.Duration
	// PageSize is the number of items requested per page.
	PageSize int
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is an SQLite file, a ".json" file, or ":memory:".
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// PersistTimeout bounds a single background write.
	PersistTimeout time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level client settings.
	App ClientApp
	// Adapter contains client transport address and timeouts.
	Adapter ClientAdapter
	// Storage contains client storage settings.
	Storage ClientStorage
	// Workers contains background job settings.
	Workers ClientWorkers
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return NewClientConfig(cfg)
}

// NewClientConfig maps the fields relevant to the client runtime and
// validates the result.
func NewClientConfig(cfg *StructuredConfig) (*ClientConfig, error) {
	clientCfg := &ClientConfig{
		App: ClientApp{
			Mode: cfg.App.Mode,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    normalizeAddress(cfg.Adapter.HTTPAddress),
			RequestTimeout: cfg.Adapter.RequestTimeout,
			PageSize:       cfg.Adapter.PageSize,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Workers: ClientWorkers{PersistTimeout: cfg.Workers.PersistTimeout},
	}

	if err := clientCfg.validate(); err != nil {
		return nil, err
	}
	return clientCfg, nil
}
