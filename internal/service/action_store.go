package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-garage/internal/logger"
	"github.com/MKhiriev/go-garage/internal/store"
	"github.com/MKhiriev/go-garage/internal/utils"
	"github.com/MKhiriev/go-garage/internal/validators"
	"github.com/MKhiriev/go-garage/models"
)

// LocalActionStore holds the maintenance history of the device garage.
// Every action refers to a car known to cars.
type LocalActionStore struct {
	*entityStore[models.Action]
	validator validators.Validator
	now       func() time.Time
}

// NewLocalActionStore creates an empty store persisted under
// store.KeyActions.
func NewLocalActionStore(
	coll Collection[models.Action],
	ids utils.IDGenerator,
	validator validators.Validator,
	cars CarLookup,
	persistTimeout time.Duration,
	log *logger.Logger,
) *LocalActionStore {
	check := func(ctx context.Context, old, action models.Action) error {
		if err := validator.Validate(ctx, action); err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}
		if old.CarID == action.CarID {
			return nil
		}
		if _, ok := cars.GetByID(action.CarID); !ok {
			return fmt.Errorf("%w: %q", ErrCarNotFound, action.CarID)
		}
		return nil
	}

	return &LocalActionStore{
		entityStore: newEntityStore("actions", store.KeyActions, coll, ids, check, persistTimeout, log),
		validator:   validator,
		now:         time.Now,
	}
}

// Add stores draft as a new action of draft.CarID. A draft without a date is
// dated now, as the garage server does.
func (s *LocalActionStore) Add(ctx context.Context, draft models.Action) (models.Action, error) {
	if strings.TrimSpace(draft.Date) == "" {
		draft.Date = s.now().UTC().Format(models.ServerDateLayout)
	}
	return s.entityStore.Add(ctx, draft)
}

// Update merges patch into action id. Fields the patch leaves nil keep
// their values. Returns ErrNotFound if there is no such action.
func (s *LocalActionStore) Update(ctx context.Context, id models.ID, patch models.ActionPatch) (models.Action, error) {
	if err := s.validator.Validate(ctx, patch); err != nil {
		return models.Action{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return s.update(ctx, id, func(action models.Action) models.Action {
		return action.Apply(patch)
	})
}

// GetByOwner returns the actions of car carID in insertion order.
func (s *LocalActionStore) GetByOwner(carID models.ID) []models.Action {
	return FilterByOwner(s.GetAll(), carID)
}

// RemoveByOwner drops every action of car carID and returns how many were
// removed.
func (s *LocalActionStore) RemoveByOwner(_ context.Context, carID models.ID) int {
	return s.removeWhere(func(action models.Action) bool { return action.CarID == carID })
}
