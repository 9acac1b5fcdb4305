package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-garage/internal/logger"
	"github.com/MKhiriev/go-garage/internal/store"
	"github.com/MKhiriev/go-garage/internal/validators"
	"github.com/MKhiriev/go-garage/models"
)

func newTestGarage(kv store.KeyValueStorage) (*Garage, *LocalCarStore, *LocalActionStore) {
	ids := &sequenceIDs{}
	validator := validators.NewGarageValidator()
	storages := store.NewClientStoragesFrom(kv, logger.Nop())

	cars := NewLocalCarStore(storages.Cars, ids, validator, time.Second, logger.Nop())
	actions := NewLocalActionStore(storages.Actions, ids, validator, cars, time.Second, logger.Nop())
	return NewGarage(cars, actions, logger.Nop()), cars, actions
}

func brakes() models.Action {
	return models.Action{
		Action:             "Changed brakes",
		Type:               models.ActionRepair,
		Details:            "front pads",
		Cost:               120,
		ServiceStationName: "Joe's",
		Date:               "2024-05-01",
	}
}

func TestLocalActionStore_AddRequiresExistingCar(t *testing.T) {
	ctx := context.Background()
	_, _, actions := newTestGarage(store.NewMemoryKeyValueStorage())
	draft := brakes()
	draft.CarID = "no-such-car"

	_, err := actions.Add(ctx, draft)

	require.ErrorIs(t, err, ErrCarNotFound)
	assert.Empty(t, actions.GetAll())
}

func TestLocalActionStore_AddWithoutDateIsDatedNow(t *testing.T) {
	ctx := context.Background()
	g, _, actions := newTestGarage(store.NewMemoryKeyValueStorage())
	actions.now = func() time.Time { return time.Date(2024, 6, 2, 9, 30, 0, 0, time.UTC) }
	car, err := g.AddCar(ctx, civic())
	require.NoError(t, err)

	draft := brakes()
	draft.Date = ""
	created, err := g.AddAction(ctx, car.ID, draft)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-02 09:30:00", created.Date)

	// an explicit date is kept
	created, err = g.AddAction(ctx, car.ID, brakes())
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", created.Date)
}

func TestLocalActionStore_Update(t *testing.T) {
	ctx := context.Background()
	g, _, actions := newTestGarage(store.NewMemoryKeyValueStorage())
	car, err := g.AddCar(ctx, civic())
	require.NoError(t, err)
	other, err := g.AddCar(ctx, models.Car{Name: "Golf", Year: "2009"})
	require.NoError(t, err)
	created, err := g.AddAction(ctx, car.ID, brakes())
	require.NoError(t, err)

	t.Run("changes only patched field", func(t *testing.T) {
		updated, err := actions.Update(ctx, created.ID, models.ActionPatch{Cost: ptr(150.0)})
		require.NoError(t, err)

		want := created
		want.Cost = 150
		assert.Equal(t, want, updated)
		got, _ := actions.GetByID(created.ID)
		assert.Equal(t, want, got)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := actions.Update(ctx, "missing", models.ActionPatch{Cost: ptr(1.0)})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty patch", func(t *testing.T) {
		_, err := actions.Update(ctx, created.ID, models.ActionPatch{})
		require.ErrorIs(t, err, ErrValidation)
		assert.ErrorIs(t, err, validators.ErrNoFieldsToUpdate)
	})

	t.Run("invalid value leaves action intact", func(t *testing.T) {
		before, _ := actions.GetByID(created.ID)

		_, err := actions.Update(ctx, created.ID, models.ActionPatch{Cost: ptr(-1.0)})

		require.ErrorIs(t, err, ErrValidation)
		after, _ := actions.GetByID(created.ID)
		assert.Equal(t, before, after)
	})

	t.Run("move to unknown car", func(t *testing.T) {
		_, err := actions.Update(ctx, created.ID, models.ActionPatch{CarID: ptr(models.ID("no-such-car"))})
		assert.ErrorIs(t, err, ErrCarNotFound)
	})

	t.Run("move to known car", func(t *testing.T) {
		updated, err := actions.Update(ctx, created.ID, models.ActionPatch{CarID: ptr(other.ID)})
		require.NoError(t, err)

		assert.Equal(t, other.ID, updated.CarID)
		assert.Empty(t, actions.GetByOwner(car.ID))
		assert.Len(t, actions.GetByOwner(other.ID), 1)
	})
}

func TestLocalActionStore_GetByOwnerKeepsOrder(t *testing.T) {
	ctx := context.Background()
	g, _, actions := newTestGarage(store.NewMemoryKeyValueStorage())
	a, err := g.AddCar(ctx, civic())
	require.NoError(t, err)
	b, err := g.AddCar(ctx, models.Car{Name: "Golf", Year: "2009"})
	require.NoError(t, err)

	var want []models.ID
	for i, carID := range []models.ID{a.ID, b.ID, a.ID, b.ID, a.ID} {
		draft := brakes()
		draft.Cost = float64(i)
		created, err := g.AddAction(ctx, carID, draft)
		require.NoError(t, err)
		if carID == a.ID {
			want = append(want, created.ID)
		}
	}

	var got []models.ID
	for _, action := range actions.GetByOwner(a.ID) {
		got = append(got, action.ID)
	}
	assert.Equal(t, want, got)
	assert.Empty(t, actions.GetByOwner("unknown"))
}

func TestGarage_ConcurrentAddActionsForOneCar(t *testing.T) {
	ctx := context.Background()
	g, _, actions := newTestGarage(store.NewMemoryKeyValueStorage())
	for _, w := range g.Workers() {
		w.Run()
		defer w.Stop()
	}
	car, err := g.AddCar(ctx, civic())
	require.NoError(t, err)
	before := len(actions.GetByOwner(car.ID))

	var wg sync.WaitGroup
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := g.AddAction(ctx, car.ID, brakes())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, actions.GetByOwner(car.ID), before+2)
	require.NoError(t, g.Flush(ctx))
}

func TestGarage_RemoveCarCascades(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKeyValueStorage()
	g, _, actions := newTestGarage(kv)
	car, err := g.AddCar(ctx, civic())
	require.NoError(t, err)
	keep, err := g.AddCar(ctx, models.Car{Name: "Golf", Year: "2009"})
	require.NoError(t, err)
	_, err = g.AddAction(ctx, car.ID, brakes())
	require.NoError(t, err)
	kept, err := g.AddAction(ctx, keep.ID, brakes())
	require.NoError(t, err)

	require.NoError(t, g.RemoveCar(ctx, car.ID))
	require.NoError(t, g.Flush(ctx))

	_, err = g.CarWithActions(ctx, car.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, []models.Action{kept}, actions.GetAll())

	reloaded, _, _ := newTestGarage(kv)
	require.NoError(t, reloaded.Load(ctx))
	assert.True(t, reloaded.Ready())
	page, err := reloaded.ListCars(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []models.Car{keep}, page.Items)
	got, err := reloaded.CarWithActions(ctx, keep.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.Action{kept}, got.Actions)
}

func TestGarage_CarWithActions(t *testing.T) {
	ctx := context.Background()
	g, _, _ := newTestGarage(store.NewMemoryKeyValueStorage())
	car, err := g.AddCar(ctx, civic())
	require.NoError(t, err)

	empty, err := g.CarWithActions(ctx, car.ID)
	require.NoError(t, err)
	assert.Equal(t, car, empty.Car)
	assert.Empty(t, empty.Actions)

	action, err := g.AddAction(ctx, car.ID, brakes())
	require.NoError(t, err)
	assert.Equal(t, car.ID, action.CarID)

	full, err := g.CarWithActions(ctx, car.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.Action{action}, full.Actions)
}

func TestGarage_ActionLifecycle(t *testing.T) {
	ctx := context.Background()
	g, _, _ := newTestGarage(store.NewMemoryKeyValueStorage())
	car, err := g.AddCar(ctx, civic())
	require.NoError(t, err)

	created, err := g.AddAction(ctx, car.ID, brakes())
	require.NoError(t, err)

	got, err := g.GetAction(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	updated, err := g.UpdateAction(ctx, created.ID, models.ActionPatch{Details: ptr("rear pads")})
	require.NoError(t, err)
	assert.Equal(t, "rear pads", updated.Details)

	require.NoError(t, g.RemoveAction(ctx, created.ID))
	_, err = g.GetAction(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, g.RemoveAction(ctx, created.ID))

	_, err = g.AddAction(ctx, "no-such-car", brakes())
	assert.ErrorIs(t, err, ErrCarNotFound)
}

func TestGarage_UploadCarImage(t *testing.T) {
	ctx := context.Background()
	g, _, _ := newTestGarage(store.NewMemoryKeyValueStorage())
	car, err := g.AddCar(ctx, civic())
	require.NoError(t, err)

	updated, err := g.UploadCarImage(ctx, car.ID, models.EmbeddedImage([]byte("jpeg")))
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg"), updated.Image.Data())

	_, err = g.UploadCarImage(ctx, "missing", models.EmbeddedImage([]byte("jpeg")))
	assert.ErrorIs(t, err, ErrNotFound)
}
