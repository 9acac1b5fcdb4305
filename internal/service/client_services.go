package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-garage/internal/adapter"
	"github.com/MKhiriev/go-garage/internal/config"
	"github.com/MKhiriev/go-garage/internal/logger"
	"github.com/MKhiriev/go-garage/internal/store"
	"github.com/MKhiriev/go-garage/internal/utils"
	"github.com/MKhiriev/go-garage/internal/validators"
	"github.com/MKhiriev/go-garage/internal/workers"
	"github.com/MKhiriev/go-garage/models"
)

// remoteQueryStaleAfter is how long a server answer is reused.
const remoteQueryStaleAfter = 30 * time.Second

var ErrNoAdapter = errors.New("remote mode requires a garage adapter")

type ClientServices struct {
	Garage GarageService
	Cars   *Pager[models.Car]
	// CarFeed walks the same car list as Cars, accumulating pages.
	CarFeed *InfiniteLoader[models.Car]

	// Local is set in local mode only.
	Local *Garage

	persistErrs chan error
}

// NewClientServices wires the garage for cfg.App.Mode. Local mode reads
// and writes storages; remote mode talks to garageAdapter.
func NewClientServices(
	cfg *config.ClientConfig,
	storages *store.ClientStorages,
	garageAdapter adapter.GarageAdapter,
	logger *logger.Logger,
) (*ClientServices, error) {
	services := &ClientServices{
		persistErrs: make(chan error, 16),
	}

	switch cfg.App.Mode {
	case config.ModeRemote:
		if garageAdapter == nil {
			return nil, ErrNoAdapter
		}
		services.Garage = NewRemoteGarage(garageAdapter, remoteQueryStaleAfter, cfg.Adapter.RequestTimeout, logger)

	default:
		if storages == nil {
			return nil, fmt.Errorf("%w: no storages", store.ErrStorageFailure)
		}
		validator := validators.NewGarageValidator()
		ids := utils.NewUUIDGenerator()

		cars := NewLocalCarStore(storages.Cars, ids, validator, cfg.Workers.PersistTimeout, logger)
		actions := NewLocalActionStore(storages.Actions, ids, validator, cars, cfg.Workers.PersistTimeout, logger)
		cars.OnPersistError(services.reportPersistError)
		actions.OnPersistError(services.reportPersistError)

		services.Local = NewGarage(cars, actions, logger)
		services.Garage = services.Local
	}

	services.Cars = NewPager(services.Garage.ListCars, cfg.Adapter.PageSize, cfg.Adapter.RequestTimeout, logger)
	services.CarFeed = NewInfiniteLoader(services.Garage.ListCars, cfg.Adapter.PageSize, cfg.Adapter.RequestTimeout, logger)

	return services, nil
}

// Load reads the local garage. It does nothing in remote mode.
func (s *ClientServices) Load(ctx context.Context) error {
	if s.Local == nil {
		return nil
	}
	return s.Local.Load(ctx)
}

// Flush waits for pending local writes.
func (s *ClientServices) Flush(ctx context.Context) error {
	if s.Local == nil {
		return nil
	}
	return s.Local.Flush(ctx)
}

// Workers returns the background writers to run for the lifetime of the
// client.
func (s *ClientServices) Workers() []workers.Worker {
	if s.Local == nil {
		return nil
	}
	return s.Local.Workers()
}

// PersistErrors delivers background write failures. Failures that arrive
// while the channel is full are only logged.
func (s *ClientServices) PersistErrors() <-chan error {
	return s.persistErrs
}

func (s *ClientServices) reportPersistError(err error) {
	select {
	case s.persistErrs <- err:
	default:
	}
}
