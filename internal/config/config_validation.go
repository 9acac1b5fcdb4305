// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
	"strings"
)

func (cfg *ClientConfig) validate() error {
	if cfg.App.Mode != ModeLocal && cfg.App.Mode != ModeRemote {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidAppConfigs, cfg.App.Mode)
	}

	if strings.TrimSpace(cfg.Storage.DB.DSN) == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.RequestTimeout <= 0 || cfg.Adapter.PageSize < 1 {
		return ErrInvalidAdapterConfigs
	}
	if cfg.App.Mode == ModeRemote {
		if cfg.Adapter.HTTPAddress == "" {
			return fmt.Errorf("%w: server address is required in remote mode", ErrInvalidAdapterConfigs)
		}
		if u, err := url.Parse(cfg.Adapter.HTTPAddress); err != nil || u.Host == "" {
			return fmt.Errorf("%w: bad server address %q", ErrInvalidAdapterConfigs, cfg.Adapter.HTTPAddress)
		}
	}

	if cfg.Workers.PersistTimeout <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

// normalizeAddress gives a bare host:port the http scheme.
func normalizeAddress(addr string) string {
	addr = strings.TrimRight(strings.TrimSpace(addr), "/")
	if addr == "" || strings.Contains(addr, "://") {
		return addr
	}
	return "http://" + addr
}
