package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-garage/internal/logger"
	"github.com/MKhiriev/go-garage/internal/utils"
)

// CollectionStore persists an ordered slice of T as one JSON array per key.
//
// It remembers the digest of the last document read or written under every
// key, so saving an unchanged collection does not touch the device storage.
type CollectionStore[T any] struct {
	kv     KeyValueStorage
	logger *logger.Logger

	mu      sync.Mutex
	digests map[string]string
}

// NewCollectionStore wraps kv.
func NewCollectionStore[T any](kv KeyValueStorage, logger *logger.Logger) *CollectionStore[T] {
	return &CollectionStore[T]{
		kv:      kv,
		logger:  logger,
		digests: make(map[string]string),
	}
}

// Save writes items under key. A nil slice is stored as an empty array.
func (c *CollectionStore[T]) Save(ctx context.Context, key string, items []T) error {
	if items == nil {
		items = []T{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("%w: encode %q: %w", ErrStorageFailure, key, err)
	}
	digest := utils.Digest(data)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.digests[key] == digest {
		c.logger.Debug().
			Str("func", "CollectionStore.Save").
			Str("key", key).
			Msg("collection unchanged, skipping write")
		return nil
	}

	if err = c.kv.Put(ctx, key, data); err != nil {
		// the storage may hold anything now
		delete(c.digests, key)
		return wrapStorageFailure(err)
	}
	c.digests[key] = digest

	c.logger.Debug().
		Str("func", "CollectionStore.Save").
		Str("key", key).
		Int("items", len(items)).
		Msg("collection saved")
	return nil
}

// Load reads the collection stored under key. A missing key yields an empty,
// non-nil slice.
func (c *CollectionStore[T]) Load(ctx context.Context, key string) ([]T, error) {
	data, err := c.kv.Get(ctx, key)
	if err != nil {
		return nil, wrapStorageFailure(err)
	}
	if data == nil {
		return []T{}, nil
	}

	var items []T
	if err = json.Unmarshal(data, &items); err != nil {
		c.logger.Err(err).
			Str("func", "CollectionStore.Load").
			Str("key", key).
			Msg("stored collection is not decodable")
		return nil, fmt.Errorf("%w: decode %q: %w", ErrStorageFailure, key, err)
	}
	if items == nil {
		items = []T{}
	}

	c.mu.Lock()
	c.digests[key] = utils.Digest(data)
	c.mu.Unlock()

	return items, nil
}

func wrapStorageFailure(err error) error {
	if errors.Is(err, ErrStorageFailure) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStorageFailure, err)
}
