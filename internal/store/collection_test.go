package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-garage/internal/config"
	"github.com/MKhiriev/go-garage/internal/logger"
	"github.com/MKhiriev/go-garage/internal/mock"
	"github.com/MKhiriev/go-garage/models"
)

func TestCollectionStore_LoadMissingKeyIsEmpty(t *testing.T) {
	cs := NewCollectionStore[models.Car](NewMemoryKeyValueStorage(), logger.Nop())

	cars, err := cs.Load(context.Background(), KeyCars)
	require.NoError(t, err)
	assert.NotNil(t, cars)
	assert.Empty(t, cars)
}

func TestCollectionStore_SaveLoadPreservesOrder(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKeyValueStorage()
	cs := NewCollectionStore[models.Action](kv, logger.Nop())

	actions := []models.Action{
		{ID: "3", CarID: "c", Action: "Brakes", Type: models.ActionRepair, Cost: 120, Date: "2024-03-01"},
		{ID: "1", CarID: "c", Action: "Oil", Type: models.ActionOilChange, Cost: 40.5, Date: "2024-01-01"},
	}
	require.NoError(t, cs.Save(ctx, KeyActions, actions))

	got, err := NewCollectionStore[models.Action](kv, logger.Nop()).Load(ctx, KeyActions)
	require.NoError(t, err)
	assert.Equal(t, actions, got)
}

func TestCollectionStore_SaveNilWritesEmptyArray(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKeyValueStorage()
	cs := NewCollectionStore[models.Car](kv, logger.Nop())

	require.NoError(t, cs.Save(ctx, KeyCars, nil))

	raw, err := kv.Get(ctx, KeyCars)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestCollectionStore_SkipsUnchangedWrites(t *testing.T) {
	ctrl := gomock.NewController(t)
	kv := mock.NewMockKeyValueStorage(ctrl)
	cs := NewCollectionStore[models.Car](kv, logger.Nop())
	ctx := context.Background()

	cars := []models.Car{{ID: "a", Name: "Golf", Year: "2012"}}

	kv.EXPECT().Put(gomock.Any(), KeyCars, gomock.Any()).Return(nil).Times(1)

	require.NoError(t, cs.Save(ctx, KeyCars, cars))
	require.NoError(t, cs.Save(ctx, KeyCars, cars))
}

func TestCollectionStore_FailedWriteIsRetried(t *testing.T) {
	ctrl := gomock.NewController(t)
	kv := mock.NewMockKeyValueStorage(ctrl)
	cs := NewCollectionStore[models.Car](kv, logger.Nop())
	ctx := context.Background()

	cars := []models.Car{{ID: "a", Name: "Golf", Year: "2012"}}

	gomock.InOrder(
		kv.EXPECT().Put(gomock.Any(), KeyCars, gomock.Any()).Return(errors.New("disk full")),
		kv.EXPECT().Put(gomock.Any(), KeyCars, gomock.Any()).Return(nil),
	)

	err := cs.Save(ctx, KeyCars, cars)
	assert.ErrorIs(t, err, ErrStorageFailure)
	require.NoError(t, cs.Save(ctx, KeyCars, cars))
}

func TestCollectionStore_LoadErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("storage error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		kv := mock.NewMockKeyValueStorage(ctrl)
		kv.EXPECT().Get(gomock.Any(), KeyCars).Return(nil, errors.New("io"))

		_, err := NewCollectionStore[models.Car](kv, logger.Nop()).Load(ctx, KeyCars)
		assert.ErrorIs(t, err, ErrStorageFailure)
	})

	t.Run("undecodable", func(t *testing.T) {
		kv := NewMemoryKeyValueStorage()
		require.NoError(t, kv.Put(ctx, KeyCars, []byte(`{"not":"an array"}`)))

		_, err := NewCollectionStore[models.Car](kv, logger.Nop()).Load(ctx, KeyCars)
		assert.ErrorIs(t, err, ErrStorageFailure)
	})
}

func TestNewClientStorages_Backends(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	for _, dsn := range []string{MemoryDSN, filepath.Join(dir, "garage.json"), filepath.Join(dir, "garage.db")} {
		t.Run(dsn, func(t *testing.T) {
			storages, err := NewClientStorages(ctx, config.ClientStorage{DB: config.ClientDB{DSN: dsn}}, logger.Nop())
			require.NoError(t, err)
			defer storages.Close()

			car := models.Car{ID: "a", Name: "Golf", Model: "VW", Year: "2012"}
			require.NoError(t, storages.Cars.Save(ctx, KeyCars, []models.Car{car}))

			got, err := storages.Cars.Load(ctx, KeyCars)
			require.NoError(t, err)
			assert.Equal(t, []models.Car{car}, got)
		})
	}

	_, err := NewClientStorages(ctx, config.ClientStorage{}, logger.Nop())
	assert.Error(t, err)
}
