package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/MKhiriev/go-garage/internal/logger"
	"github.com/MKhiriev/go-garage/internal/utils"
)

type fileKeyValueStorage struct {
	path   string
	logger *logger.Logger

	mu     sync.RWMutex
	state  filePersistedState
	closed bool
}

type fileEntry struct {
	Value    json.RawMessage `json:"value"`
	Checksum string          `json:"checksum"`
}

type filePersistedState struct {
	Entries map[string]fileEntry `json:"entries"`
}

// NewFileKeyValueStorage opens (or lazily creates) a single JSON file that
// holds every key. Values must themselves be JSON documents. Each Put
// rewrites the whole file through a temporary file and an atomic rename, so
// a crash never leaves a half-written state behind.
func NewFileKeyValueStorage(path string, logger *logger.Logger) (KeyValueStorage, error) {
	s := &fileKeyValueStorage{
		path:   path,
		logger: logger,
		state:  filePersistedState{Entries: make(map[string]fileEntry)},
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *fileKeyValueStorage) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("%w: read local storage file: %w", ErrStorageFailure, err)
	}

	var st filePersistedState
	if err = json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("%w: decode local storage file: %w", ErrStorageFailure, err)
	}
	if st.Entries == nil {
		st.Entries = make(map[string]fileEntry)
	}

	s.state = st
	return nil
}

func (s *fileKeyValueStorage) persist(state filePersistedState) error {
	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create local storage dir: %w", err)
		}
	}

	payload, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode local storage: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp storage file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err = tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp storage file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp storage file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp storage file: %w", err)
	}
	if err = os.Chmod(tmpName, 0o600); err != nil {
		return fmt.Errorf("chmod temp storage file: %w", err)
	}

	if err = os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace local storage file: %w", err)
	}

	return nil
}

func (s *fileKeyValueStorage) Put(ctx context.Context, key string, value []byte) error {
	compact, err := compactJSON(value)
	if err != nil {
		return fmt.Errorf("%w: put %q: %w", ErrStorageFailure, key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("%w: put %q: %w", ErrStorageFailure, key, ErrStorageClosed)
	}

	next := filePersistedState{Entries: make(map[string]fileEntry, len(s.state.Entries)+1)}
	for k, v := range s.state.Entries {
		next.Entries[k] = v
	}
	next.Entries[key] = fileEntry{
		Value:    compact,
		Checksum: utils.Digest(compact),
	}

	if err := s.persist(next); err != nil {
		s.logger.Err(err).
			Str("func", "fileKeyValueStorage.Put").
			Str("key", key).
			Str("path", s.path).
			Msg("failed to persist local storage file")
		return fmt.Errorf("%w: put %q: %w", ErrStorageFailure, key, err)
	}

	s.state = next
	return nil
}

func (s *fileKeyValueStorage) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, fmt.Errorf("%w: get %q: %w", ErrStorageFailure, key, ErrStorageClosed)
	}

	entry, ok := s.state.Entries[key]
	if !ok {
		return nil, nil
	}

	// The file is indented on disk; checksums cover the compact form.
	value, err := compactJSON(entry.Value)
	if err != nil || utils.Digest(value) != entry.Checksum {
		s.logger.Error().
			Str("func", "fileKeyValueStorage.Get").
			Str("key", key).
			Msg("stored value does not match its checksum")
		return nil, fmt.Errorf("%w: get %q: %w", ErrStorageFailure, key, ErrChecksumMismatch)
	}

	return value, nil
}

func (s *fileKeyValueStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func compactJSON(value []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, value); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return buf.Bytes(), nil
}
