// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// Application modes.
const (
	// ModeLocal keeps all garage data on the device.
	ModeLocal = "local"
	// ModeRemote browses the garage server page by page.
	ModeRemote = "remote"
)

// Default values applied for every setting that no source provides.
const (
	DefaultMode           = ModeLocal
	DefaultRequestTimeout = 15 * time.Second
	DefaultPageSize       = 10
	DefaultDSN            = "garage.db"
	DefaultPersistTimeout = 5 * time.Second
)

// StructuredConfig is the top-level configuration container for the
// go-garage client. It is populated by merging command-line flags,
// environment variables, an optional JSON/YAML file and the defaults.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings.
	App App `envPrefix:"APP_"`

	// Adapter holds the garage server address and request settings.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds the on-device persistence settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Workers holds background persistence settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// ConfigFilePath is the optional path to a JSON or YAML configuration
	// file. Populated via the CONFIG environment variable or the -c / -config
	// flag.
	ConfigFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Mode selects local (device-only) or remote (server) browsing.
	// Env: APP_MODE
	Mode string `env:"MODE"`
}

// Adapter holds settings of the outbound HTTP transport.
type Adapter struct {
	// HTTPAddress is the garage server base URL (e.g. "http://127.0.0.1:5000").
	// A bare host:port is accepted and gets the http scheme.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single request (e.g. "15s").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// PageSize is the number of items requested per page.
	// Env: ADAPTER_PAGE_SIZE
	PageSize int `env:"PAGE_SIZE"`
}

// Storage groups the configuration for the device storage.
type Storage struct {
	// DB holds the storage location.
	DB DB `envPrefix:"DB_"`
}

// DB holds the device storage location.
type DB struct {
	// DSN is an SQLite database file, a ".json" file, or ":memory:".
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Workers holds configuration for the background persistence workers.
type Workers struct {
	// PersistTimeout bounds a single background write.
	// Env: WORKERS_PERSIST_TIMEOUT
	PersistTimeout time.Duration `env:"PERSIST_TIMEOUT"`
}

// defaultConfig returns the lowest-priority layer.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{Mode: DefaultMode},
		Adapter: Adapter{
			RequestTimeout: DefaultRequestTimeout,
			PageSize:       DefaultPageSize,
		},
		Storage: Storage{DB: DB{DSN: DefaultDSN}},
		Workers: Workers{PersistTimeout: DefaultPersistTimeout},
	}
}

// GetStructuredConfig loads and merges the application configuration from
// all available sources in the following priority order (first source wins
// for non-zero fields):
//  1. Command-line flags
//  2. Environment variables
//  3. JSON or YAML file (path resolved from sources 1 and 2)
//  4. Defaults
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withFlags(os.Args[1:]).
		withEnv().
		withFile().
		withDefaults().
		build()
}
