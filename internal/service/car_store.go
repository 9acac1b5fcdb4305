package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-garage/internal/logger"
	"github.com/MKhiriev/go-garage/internal/store"
	"github.com/MKhiriev/go-garage/internal/utils"
	"github.com/MKhiriev/go-garage/internal/validators"
	"github.com/MKhiriev/go-garage/models"
)

// LocalCarStore holds the cars of the device garage.
type LocalCarStore struct {
	*entityStore[models.Car]
}

// NewLocalCarStore creates an empty store persisted under store.KeyCars.
// Call Load to read the saved cars.
func NewLocalCarStore(
	coll Collection[models.Car],
	ids utils.IDGenerator,
	validator validators.Validator,
	persistTimeout time.Duration,
	log *logger.Logger,
) *LocalCarStore {
	check := func(ctx context.Context, _, car models.Car) error {
		if err := validator.Validate(ctx, car); err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}
		return nil
	}

	return &LocalCarStore{
		entityStore: newEntityStore("cars", store.KeyCars, coll, ids, check, persistTimeout, log),
	}
}

// UploadImage replaces the image of car id.
func (s *LocalCarStore) UploadImage(ctx context.Context, id models.ID, image models.Image) (models.Car, error) {
	return s.update(ctx, id, func(car models.Car) models.Car {
		car.Image = &image
		return car
	})
}

// ListPage returns page index of the cars in insertion order.
func (s *LocalCarStore) ListPage(_ context.Context, index, size int) (models.Page[models.Car], error) {
	return models.Paginate(s.GetAll(), index, size), nil
}
