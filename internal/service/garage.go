package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-garage/internal/logger"
	"github.com/MKhiriev/go-garage/internal/workers"
	"github.com/MKhiriev/go-garage/models"
	"golang.org/x/sync/errgroup"
)

// Garage is the local-first [GarageService]: it answers from the device
// stores and keeps actions attached to existing cars.
type Garage struct {
	cars    *LocalCarStore
	actions *LocalActionStore
	logger  *logger.Logger

	// owners is held exclusively while a car and its actions are removed,
	// so no action can be attached to a car that is going away.
	owners sync.RWMutex
}

// NewGarage composes the car and action stores. actions must have been
// created with cars as its CarLookup.
func NewGarage(cars *LocalCarStore, actions *LocalActionStore, logger *logger.Logger) *Garage {
	return &Garage{
		cars:    cars,
		actions: actions,
		logger:  logger,
	}
}

// Load reads both collections from the device storage in parallel.
func (g *Garage) Load(ctx context.Context) error {
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error { return g.cars.Load(egCtx) })
	eg.Go(func() error { return g.actions.Load(egCtx) })

	if err := eg.Wait(); err != nil {
		g.logger.Err(err).Str("func", "Garage.Load").Msg("failed to load garage")
		return err
	}
	return nil
}

// Workers returns the background writers of both stores.
func (g *Garage) Workers() []workers.Worker {
	return []workers.Worker{g.cars, g.actions}
}

// Ready reports whether both stores finished loading.
func (g *Garage) Ready() bool {
	return g.cars.State() == StateReady && g.actions.State() == StateReady
}

// Flush waits for all pending writes of both stores.
func (g *Garage) Flush(ctx context.Context) error {
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error { return g.cars.Flush(egCtx) })
	eg.Go(func() error { return g.actions.Flush(egCtx) })
	return eg.Wait()
}

func (g *Garage) ListCars(ctx context.Context, pageIndex, pageSize int) (models.Page[models.Car], error) {
	return g.cars.ListPage(ctx, pageIndex, pageSize)
}

func (g *Garage) CarWithActions(_ context.Context, id models.ID) (models.CarWithActions, error) {
	car, ok := g.cars.GetByID(id)
	if !ok {
		return models.CarWithActions{}, fmt.Errorf("%w: car %q", ErrNotFound, id)
	}

	return models.CarWithActions{
		Car:     car,
		Actions: g.actions.GetByOwner(id),
	}, nil
}

func (g *Garage) AddCar(ctx context.Context, car models.Car) (models.Car, error) {
	created, err := g.cars.Add(ctx, car)
	if err != nil {
		g.logger.Err(err).Str("func", "Garage.AddCar").Msg("failed to add car")
		return models.Car{}, err
	}
	return created, nil
}

func (g *Garage) UploadCarImage(ctx context.Context, id models.ID, image models.Image) (models.Car, error) {
	updated, err := g.cars.UploadImage(ctx, id, image)
	if err != nil {
		g.logger.Err(err).Str("func", "Garage.UploadCarImage").Str("car_id", id.String()).Msg("failed to upload car image")
		return models.Car{}, err
	}
	return updated, nil
}

// RemoveCar removes the actions of car id, then the car. Removing a
// missing car does nothing.
func (g *Garage) RemoveCar(ctx context.Context, id models.ID) error {
	g.owners.Lock()
	defer g.owners.Unlock()

	removed := g.actions.RemoveByOwner(ctx, id)
	if err := g.cars.Remove(ctx, id); err != nil {
		return err
	}

	g.logger.Debug().
		Str("func", "Garage.RemoveCar").
		Str("car_id", id.String()).
		Int("actions_removed", removed).
		Msg("car removed")
	return nil
}

func (g *Garage) AddAction(ctx context.Context, carID models.ID, action models.Action) (models.Action, error) {
	g.owners.RLock()
	defer g.owners.RUnlock()

	action.CarID = carID
	created, err := g.actions.Add(ctx, action)
	if err != nil {
		g.logger.Err(err).Str("func", "Garage.AddAction").Str("car_id", carID.String()).Msg("failed to add action")
		return models.Action{}, err
	}
	return created, nil
}

func (g *Garage) UpdateAction(ctx context.Context, id models.ID, patch models.ActionPatch) (models.Action, error) {
	g.owners.RLock()
	defer g.owners.RUnlock()

	updated, err := g.actions.Update(ctx, id, patch)
	if err != nil {
		g.logger.Err(err).Str("func", "Garage.UpdateAction").Str("action_id", id.String()).Msg("failed to update action")
		return models.Action{}, err
	}
	return updated, nil
}

func (g *Garage) RemoveAction(ctx context.Context, id models.ID) error {
	return g.actions.Remove(ctx, id)
}

func (g *Garage) GetAction(_ context.Context, id models.ID) (models.Action, error) {
	action, ok := g.actions.GetByID(id)
	if !ok {
		return models.Action{}, fmt.Errorf("%w: action %q", ErrNotFound, id)
	}
	return action, nil
}
