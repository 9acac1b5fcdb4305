// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-garage/internal/logger"
	"github.com/MKhiriev/go-garage/internal/utils"
)

const kvTable = "kv_store"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

type sqliteKeyValueStorage struct {
	*DB
	logger *logger.Logger
}

// NewSQLiteKeyValueStorage returns a [KeyValueStorage] over the kv_store
// table. The schema must already be migrated.
func NewSQLiteKeyValueStorage(db *DB, logger *logger.Logger) KeyValueStorage {
	return &sqliteKeyValueStorage{DB: db, logger: logger}
}

func buildPutQuery(key string, value []byte) (string, []any, error) {
	return psql.Insert(kvTable).
		Columns("key", "value", "checksum", "updated_at").
		Values(key, value, utils.Digest(value), sq.Expr("CURRENT_TIMESTAMP")).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, checksum = excluded.checksum, updated_at = excluded.updated_at").
		ToSql()
}

func buildGetQuery(key string) (string, []any, error) {
	return psql.Select("value", "checksum").
		From(kvTable).
		Where(sq.Eq{"key": key}).
		ToSql()
}

func (s *sqliteKeyValueStorage) Put(ctx context.Context, key string, value []byte) error {
	log := logger.FromContext(ctx)

	query, args, err := buildPutQuery(key, value)
	if err != nil {
		return fmt.Errorf("%w: put %q: %w", ErrStorageFailure, key, errors.Join(ErrBuildingSQLQuery, err))
	}

	if _, err = s.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "sqliteKeyValueStorage.Put").
			Str("key", key).
			Msg("failed to execute upsert for key")
		return fmt.Errorf("%w: put %q: %w", ErrStorageFailure, key, errors.Join(ErrExecutingStatement, err))
	}

	return nil
}

func (s *sqliteKeyValueStorage) Get(ctx context.Context, key string) ([]byte, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetQuery(key)
	if err != nil {
		return nil, fmt.Errorf("%w: get %q: %w", ErrStorageFailure, key, errors.Join(ErrBuildingSQLQuery, err))
	}

	var (
		value    []byte
		checksum string
	)
	err = s.DB.QueryRowContext(ctx, query, args...).Scan(&value, &checksum)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Err(err).
			Str("func", "sqliteKeyValueStorage.Get").
			Str("key", key).
			Msg("failed to query value for key")
		return nil, fmt.Errorf("%w: get %q: %w", ErrStorageFailure, key, errors.Join(ErrScanningRow, err))
	}

	if utils.Digest(value) != checksum {
		log.Error().
			Str("func", "sqliteKeyValueStorage.Get").
			Str("key", key).
			Msg("stored value does not match its checksum")
		return nil, fmt.Errorf("%w: get %q: %w", ErrStorageFailure, key, ErrChecksumMismatch)
	}

	return value, nil
}

func (s *sqliteKeyValueStorage) Close() error {
	return s.DB.Close()
}
