package store

import (
	"context"
	"fmt"
	"sync"
)

type memoryKeyValueStorage struct {
	mu     sync.RWMutex
	values map[string][]byte
	closed bool
}

// NewMemoryKeyValueStorage returns a volatile [KeyValueStorage]. It is used
// for the ":memory:" DSN and in tests.
func NewMemoryKeyValueStorage() KeyValueStorage {
	return &memoryKeyValueStorage{values: make(map[string][]byte)}
}

func (m *memoryKeyValueStorage) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return fmt.Errorf("%w: put %q: %w", ErrStorageFailure, key, ErrStorageClosed)
	}
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *memoryKeyValueStorage) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, fmt.Errorf("%w: get %q: %w", ErrStorageFailure, key, ErrStorageClosed)
	}
	value, ok := m.values[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), value...), nil
}

func (m *memoryKeyValueStorage) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
