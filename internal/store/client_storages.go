package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-garage/internal/config"
	"github.com/MKhiriev/go-garage/internal/logger"
	"github.com/MKhiriev/go-garage/models"
)

// MemoryDSN selects the volatile in-memory backend.
const MemoryDSN = ":memory:"

// ClientStorages groups the device storage and the typed collection stores
// built on top of it.
type ClientStorages struct {
	KeyValue KeyValueStorage
	Cars     *CollectionStore[models.Car]
	Actions  *CollectionStore[models.Action]
}

// NewClientStorages picks a backend from cfg.DB.DSN:
//   - ":memory:" keeps everything in memory;
//   - a path ending in ".json" uses a single JSON file;
//   - anything else is an SQLite database file, migrated on open.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Str("dsn", cfg.DB.DSN).Msg("creating new storages...")

	kv, err := newKeyValueStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	return NewClientStoragesFrom(kv, logger), nil
}

// NewClientStoragesFrom builds the collection stores over an existing kv.
func NewClientStoragesFrom(kv KeyValueStorage, logger *logger.Logger) *ClientStorages {
	return &ClientStorages{
		KeyValue: kv,
		Cars:     NewCollectionStore[models.Car](kv, logger),
		Actions:  NewCollectionStore[models.Action](kv, logger),
	}
}

func newKeyValueStorage(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (KeyValueStorage, error) {
	dsn := strings.TrimSpace(cfg.DB.DSN)
	switch {
	case dsn == "":
		return nil, errors.New("storage DSN is empty")
	case dsn == MemoryDSN:
		return NewMemoryKeyValueStorage(), nil
	case strings.HasSuffix(strings.ToLower(dsn), ".json"):
		kv, err := NewFileKeyValueStorage(dsn, logger)
		if err != nil {
			return nil, fmt.Errorf("file storage error: %w", err)
		}
		return kv, nil
	}

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return NewSQLiteKeyValueStorage(db, logger), nil
}

// Close releases the device storage.
func (s *ClientStorages) Close() error {
	return s.KeyValue.Close()
}
