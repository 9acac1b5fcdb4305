package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-garage/internal/logger"
	"github.com/MKhiriev/go-garage/internal/mock"
	"github.com/MKhiriev/go-garage/internal/store"
	"github.com/MKhiriev/go-garage/internal/validators"
	"github.com/MKhiriev/go-garage/models"
)

type sequenceIDs struct {
	n atomic.Int64
}

func (g *sequenceIDs) Generate() string {
	return fmt.Sprintf("id-%d", g.n.Add(1))
}

func ptr[T any](v T) *T { return &v }

func newTestCarStore(kv store.KeyValueStorage) *LocalCarStore {
	return NewLocalCarStore(
		store.NewCollectionStore[models.Car](kv, logger.Nop()),
		&sequenceIDs{},
		validators.NewGarageValidator(),
		time.Second,
		logger.Nop(),
	)
}

func civic() models.Car {
	return models.Car{Name: "Civic", Model: "EX", Year: "2015"}
}

func TestLocalCarStore_AddThenGetByID(t *testing.T) {
	s := newTestCarStore(store.NewMemoryKeyValueStorage())
	draft := civic()

	created, err := s.Add(context.Background(), draft)
	require.NoError(t, err)

	assert.False(t, created.ID.IsZero())
	got, ok := s.GetByID(created.ID)
	require.True(t, ok)
	assert.Equal(t, created, got)

	draft.ID = created.ID
	assert.Equal(t, draft, got)
}

func TestLocalCarStore_AddReplacesDraftID(t *testing.T) {
	s := newTestCarStore(store.NewMemoryKeyValueStorage())
	draft := civic()
	draft.ID = "chosen-by-caller"

	created, err := s.Add(context.Background(), draft)
	require.NoError(t, err)

	assert.NotEqual(t, models.ID("chosen-by-caller"), created.ID)
}

func TestLocalCarStore_AddRemoveScenario(t *testing.T) {
	ctx := context.Background()
	s := newTestCarStore(store.NewMemoryKeyValueStorage())
	_, err := s.Add(ctx, models.Car{Name: "Golf", Year: "2009"})
	require.NoError(t, err)
	before := len(s.GetAll())

	created, err := s.Add(ctx, civic())
	require.NoError(t, err)
	assert.Len(t, s.GetAll(), before+1)

	require.NoError(t, s.Remove(ctx, created.ID))

	assert.Len(t, s.GetAll(), before)
	_, ok := s.GetByID(created.ID)
	assert.False(t, ok)
}

func TestLocalCarStore_RemoveMissingIsNoop(t *testing.T) {
	ctx := context.Background()
	s := newTestCarStore(store.NewMemoryKeyValueStorage())
	_, err := s.Add(ctx, civic())
	require.NoError(t, err)

	require.NoError(t, s.Remove(ctx, "missing"))
	require.NoError(t, s.Remove(ctx, "missing"))

	assert.Len(t, s.GetAll(), 1)
}

func TestLocalCarStore_InvalidCarIsRejected(t *testing.T) {
	s := newTestCarStore(store.NewMemoryKeyValueStorage())

	_, err := s.Add(context.Background(), models.Car{Name: "Civic", Year: "15"})

	require.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, validators.ErrInvalidYear)
	assert.Empty(t, s.GetAll())
}

func TestLocalCarStore_GetAllKeepsInsertionOrderAndIsACopy(t *testing.T) {
	ctx := context.Background()
	s := newTestCarStore(store.NewMemoryKeyValueStorage())
	for _, name := range []string{"c", "a", "b"} {
		_, err := s.Add(ctx, models.Car{Name: name, Year: "2000"})
		require.NoError(t, err)
	}

	all := s.GetAll()
	require.Len(t, all, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{all[0].Name, all[1].Name, all[2].Name})

	all[0].Name = "changed"
	assert.Equal(t, "c", s.GetAll()[0].Name)
}

func TestLocalCarStore_UploadImage(t *testing.T) {
	ctx := context.Background()
	s := newTestCarStore(store.NewMemoryKeyValueStorage())
	created, err := s.Add(ctx, civic())
	require.NoError(t, err)

	updated, err := s.UploadImage(ctx, created.ID, models.ReferencedImage("file:///photos/civic.jpg"))
	require.NoError(t, err)

	require.NotNil(t, updated.Image)
	assert.Equal(t, "file:///photos/civic.jpg", updated.Image.URI())
	assert.Equal(t, created.Name, updated.Name)

	_, err = s.UploadImage(ctx, "missing", models.EmbeddedImage([]byte{1}))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.UploadImage(ctx, created.ID, models.EmbeddedImage(nil))
	assert.ErrorIs(t, err, ErrValidation)
	got, _ := s.GetByID(created.ID)
	assert.Equal(t, "file:///photos/civic.jpg", got.Image.URI())
}

func TestLocalCarStore_ListPage(t *testing.T) {
	ctx := context.Background()
	s := newTestCarStore(store.NewMemoryKeyValueStorage())
	for i := range 25 {
		_, err := s.Add(ctx, models.Car{Name: fmt.Sprintf("car %d", i), Year: "2000"})
		require.NoError(t, err)
	}

	first, err := s.ListPage(ctx, 1, 10)
	require.NoError(t, err)
	assert.Len(t, first.Items, 10)
	assert.Equal(t, 3, first.TotalPages)
	assert.Equal(t, 25, first.TotalCount)

	past, err := s.ListPage(ctx, 4, 10)
	require.NoError(t, err)
	assert.Empty(t, past.Items)
	assert.Equal(t, 3, past.TotalPages)
}

func TestEntityStore_LoadLifecycle(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKeyValueStorage()

	writer := newTestCarStore(kv)
	created, err := writer.Add(ctx, civic())
	require.NoError(t, err)
	require.NoError(t, writer.Flush(ctx))

	reader := newTestCarStore(kv)
	assert.Equal(t, StateUninitialized, reader.State())
	assert.Empty(t, reader.GetAll())

	require.NoError(t, reader.Load(ctx))

	assert.Equal(t, StateReady, reader.State())
	assert.Equal(t, []models.Car{created}, reader.GetAll())

	// loading again is harmless
	require.NoError(t, reader.Load(ctx))
	assert.Equal(t, []models.Car{created}, reader.GetAll())
}

func TestEntityStore_LoadDoesNotClobberPendingWrite(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKeyValueStorage()
	s := newTestCarStore(kv)
	require.NoError(t, s.Load(ctx))

	// the writer is not running, so the add stays pending
	created, err := s.Add(ctx, civic())
	require.NoError(t, err)

	require.NoError(t, s.Load(ctx))

	assert.Equal(t, []models.Car{created}, s.GetAll())

	require.NoError(t, s.Flush(ctx))
	require.NoError(t, s.Load(ctx))
	assert.Equal(t, []models.Car{created}, s.GetAll())
}

func TestEntityStore_PersistedBytesAreStableAcrossLoadAndSave(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKeyValueStorage()
	s := newTestCarStore(kv)
	for _, car := range []models.Car{civic(), {Name: "Golf", Year: "2009", PlateNumber: "AB 123"}} {
		_, err := s.Add(ctx, car)
		require.NoError(t, err)
	}
	require.NoError(t, s.Flush(ctx))
	before, err := kv.Get(ctx, store.KeyCars)
	require.NoError(t, err)

	coll := store.NewCollectionStore[models.Car](kv, logger.Nop())
	loaded, err := coll.Load(ctx, store.KeyCars)
	require.NoError(t, err)
	require.NoError(t, store.NewCollectionStore[models.Car](kv, logger.Nop()).Save(ctx, store.KeyCars, loaded))

	after, err := kv.Get(ctx, store.KeyCars)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestEntityStore_LoadFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	kv := mock.NewMockKeyValueStorage(ctrl)
	kv.EXPECT().Get(gomock.Any(), store.KeyCars).Return(nil, errors.New("disk unreadable"))

	s := newTestCarStore(kv)
	err := s.Load(context.Background())

	require.ErrorIs(t, err, store.ErrStorageFailure)
	assert.Equal(t, StateUninitialized, s.State())
}

func TestEntityStore_PersistFailureIsReported(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	kv := mock.NewMockKeyValueStorage(ctrl)
	kv.EXPECT().Put(gomock.Any(), store.KeyCars, gomock.Any()).Return(errors.New("disk full"))

	s := newTestCarStore(kv)
	var reported []error
	s.OnPersistError(func(err error) { reported = append(reported, err) })

	created, err := s.Add(ctx, civic())
	require.NoError(t, err)

	err = s.Flush(ctx)

	require.ErrorIs(t, err, store.ErrStorageFailure)
	require.Len(t, reported, 1)
	assert.ErrorIs(t, reported[0], store.ErrStorageFailure)
	// memory keeps the change, the caller decides what to do
	_, ok := s.GetByID(created.ID)
	assert.True(t, ok)
}

func TestEntityStore_LoadKeepsChangesThatFailedToPersist(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	kv := mock.NewMockKeyValueStorage(ctrl)
	gomock.InOrder(
		kv.EXPECT().Put(gomock.Any(), store.KeyCars, gomock.Any()).Return(errors.New("disk full")),
		kv.EXPECT().Get(gomock.Any(), store.KeyCars).Return(nil, nil),
		kv.EXPECT().Put(gomock.Any(), store.KeyCars, gomock.Any()).Return(nil),
		kv.EXPECT().Get(gomock.Any(), store.KeyCars).Return([]byte(`[]`), nil),
	)

	s := newTestCarStore(kv)
	created, err := s.Add(ctx, civic())
	require.NoError(t, err)
	require.Error(t, s.Flush(ctx))

	// storage is still empty, memory holds the only copy
	require.NoError(t, s.Load(ctx))
	_, ok := s.GetByID(created.ID)
	require.True(t, ok)
	assert.Equal(t, StateReady, s.State())

	// once a write succeeds storage is authoritative again
	_, err = s.Add(ctx, models.Car{Name: "Golf", Year: "2009"})
	require.NoError(t, err)
	require.NoError(t, s.Flush(ctx))
	require.NoError(t, s.Load(ctx))
	assert.Empty(t, s.GetAll())
}

func TestEntityStore_BackgroundWriter(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKeyValueStorage()
	s := newTestCarStore(kv)
	s.Run()

	for i := range 20 {
		_, err := s.Add(ctx, models.Car{Name: fmt.Sprintf("car %d", i), Year: "2000"})
		require.NoError(t, err)
	}
	s.Stop()

	reloaded := newTestCarStore(kv)
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, s.GetAll(), reloaded.GetAll())
}

func TestEntityStore_ConcurrentAddsAreNotLost(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKeyValueStorage()
	s := newTestCarStore(kv)
	s.Run()
	defer s.Stop()

	const n = 50
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Add(ctx, models.Car{Name: fmt.Sprintf("car %d", i), Year: "2000"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	require.NoError(t, s.Flush(ctx))

	assert.Len(t, s.GetAll(), n)
	persisted, err := store.NewCollectionStore[models.Car](kv, logger.Nop()).Load(ctx, store.KeyCars)
	require.NoError(t, err)
	assert.Len(t, persisted, n)
}

func TestStoreState_String(t *testing.T) {
	assert.Equal(t, "uninitialized", StateUninitialized.String())
	assert.Equal(t, "loading", StateLoading.String())
	assert.Equal(t, "ready", StateReady.String())
	assert.Equal(t, "StoreState(7)", StoreState(7).String())
}

func TestEntityStore_PersistsWholeCollection(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	coll := mock.NewMockCollection[models.Car](ctrl)
	coll.EXPECT().Load(gomock.Any(), store.KeyCars).Return([]models.Car{{ID: "old", Name: "Golf", Year: "2009"}}, nil)

	s := NewLocalCarStore(coll, &sequenceIDs{}, validators.NewGarageValidator(), time.Second, logger.Nop())
	require.NoError(t, s.Load(ctx))
	created, err := s.Add(ctx, civic())
	require.NoError(t, err)

	coll.EXPECT().Save(gomock.Any(), store.KeyCars, []models.Car{{ID: "old", Name: "Golf", Year: "2009"}, created}).Return(nil)
	require.NoError(t, s.Flush(ctx))
}

func TestLocalActionStore_LooksUpCarOnlyWhenOwnerChanges(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	cars := mock.NewMockCarLookup(ctrl)
	actions := NewLocalActionStore(
		store.NewCollectionStore[models.Action](store.NewMemoryKeyValueStorage(), logger.Nop()),
		&sequenceIDs{},
		validators.NewGarageValidator(),
		cars,
		time.Second,
		logger.Nop(),
	)
	draft := models.Action{CarID: "c1", Action: "Oil", Type: models.ActionOilChange, Cost: 40, Date: "2024-01-01"}

	cars.EXPECT().GetByID(models.ID("c1")).Return(models.Car{ID: "c1"}, true).Times(1)
	created, err := actions.Add(ctx, draft)
	require.NoError(t, err)

	_, err = actions.Update(ctx, created.ID, models.ActionPatch{Cost: ptr(42.0)})
	require.NoError(t, err)

	cars.EXPECT().GetByID(models.ID("c2")).Return(models.Car{}, false).Times(1)
	_, err = actions.Update(ctx, created.ID, models.ActionPatch{CarID: ptr(models.ID("c2"))})
	require.ErrorIs(t, err, ErrCarNotFound)

	got, _ := actions.GetByID(created.ID)
	assert.Equal(t, models.ID("c1"), got.CarID)
	assert.Equal(t, 42.0, got.Cost)
}
