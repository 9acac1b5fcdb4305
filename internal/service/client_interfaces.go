package service

import (
	"context"

	"github.com/MKhiriev/go-garage/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/garage_service_mock.go -package=mock

// GarageService is the mode-agnostic contract the user interface works
// against. The local [Garage] answers from the device stores, [RemoteGarage]
// from the garage server.
type GarageService interface {
	// ListCars returns one page of cars. pageIndex is 1-based; a page past
	// the end has no items and the true TotalPages.
	ListCars(ctx context.Context, pageIndex, pageSize int) (models.Page[models.Car], error)

	// CarWithActions returns a car and its actions in insertion order.
	// Returns ErrNotFound if the car does not exist.
	CarWithActions(ctx context.Context, id models.ID) (models.CarWithActions, error)

	// AddCar creates a car and returns it with its assigned identifier.
	AddCar(ctx context.Context, car models.Car) (models.Car, error)

	// UploadCarImage replaces the image of car id.
	UploadCarImage(ctx context.Context, id models.ID, image models.Image) (models.Car, error)

	// RemoveCar deletes a car together with its actions. The server has no
	// car deletion, so the remote garage returns ErrUnsupported.
	RemoveCar(ctx context.Context, id models.ID) error

	// AddAction records an action for car carID. Returns ErrCarNotFound if
	// the car does not exist.
	AddAction(ctx context.Context, carID models.ID, action models.Action) (models.Action, error)

	// UpdateAction applies patch to action id. Returns ErrNotFound if the
	// action does not exist.
	UpdateAction(ctx context.Context, id models.ID, patch models.ActionPatch) (models.Action, error)

	// RemoveAction deletes action id.
	RemoveAction(ctx context.Context, id models.ID) error

	// GetAction returns action id or ErrNotFound.
	GetAction(ctx context.Context, id models.ID) (models.Action, error)
}

// Collection persists a whole entity collection under one key.
// store.CollectionStore implements it.
type Collection[T any] interface {
	Save(ctx context.Context, key string, items []T) error
	Load(ctx context.Context, key string) ([]T, error)
}

// CarLookup answers whether a car exists. The action store uses it to keep
// every action attached to a known car.
type CarLookup interface {
	GetByID(id models.ID) (models.Car, bool)
}
