// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store implements on-device persistence for the garage client.
//
// The lowest layer is [KeyValueStorage]: durable byte values under fixed
// string keys, backed by SQLite, a JSON file, or memory. On top of it
// [CollectionStore] serialises an ordered collection of entities (cars,
// actions) as one JSON array per key.
//
// Every failure is reported wrapped in [ErrStorageFailure]; nothing is
// dropped silently.
package store

import (
	"context"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// Storage keys. Each key is owned by exactly one entity store.
const (
	KeyCars    = "cars"
	KeyActions = "actions"
)

// KeyValueStorage is durable key-value storage on the device.
type KeyValueStorage interface {
	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Get returns the value stored under key. A key that was never written
	// yields (nil, nil).
	Get(ctx context.Context, key string) ([]byte, error)

	// Close releases the underlying resources.
	Close() error
}
