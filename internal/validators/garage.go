package validators

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/MKhiriev/go-garage/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldID targets the entity identifier.
	FieldID = "id"

	// FieldName targets the car display name.
	FieldName = "name"

	// FieldYear targets the four-digit car year.
	FieldYear = "year"

	// FieldImage targets the optional car image.
	FieldImage = "image"

	// FieldCarID targets the owning car of an action.
	FieldCarID = "car_id"

	// FieldLabel targets the short action label.
	FieldLabel = "action"

	// FieldType targets the action type.
	FieldType = "type"

	// FieldCost targets the action cost.
	FieldCost = "cost"

	// FieldDate targets the action date.
	FieldDate = "date"
)

// GarageValidator implements [Validator] for cars, actions and action
// patches. Value and pointer forms are both accepted.
type GarageValidator struct{}

// NewGarageValidator constructs a GarageValidator.
func NewGarageValidator() Validator {
	return &GarageValidator{}
}

// Validate dispatches on the type of obj. Without fields, the defaults for
// that type are checked; drafts are validated without FieldID.
func (v *GarageValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Car:
		return v.validateCar(ctx, value, fields...)
	case *models.Car:
		return v.validateCar(ctx, *value, fields...)

	case models.Action:
		return v.validateAction(ctx, value, fields...)
	case *models.Action:
		return v.validateAction(ctx, *value, fields...)

	case models.ActionPatch:
		return v.validateActionPatch(ctx, value)
	case *models.ActionPatch:
		return v.validateActionPatch(ctx, *value)

	default:
		return ErrUnsupportedType
	}
}

func (v *GarageValidator) validateCar(_ context.Context, car models.Car, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldYear, FieldImage}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if car.ID.IsZero() {
				return ErrInvalidID
			}
		case FieldName:
			if strings.TrimSpace(car.Name) == "" {
				return ErrInvalidName
			}
		case FieldYear:
			if !isYear(car.Year) {
				return ErrInvalidYear
			}
		case FieldImage:
			if car.Image != nil {
				if err := car.Image.Validate(); err != nil {
					return errors.Join(ErrInvalidImage, err)
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *GarageValidator) validateAction(_ context.Context, action models.Action, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldCarID, FieldLabel, FieldType, FieldCost, FieldDate}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if action.ID.IsZero() {
				return ErrInvalidID
			}
		case FieldCarID:
			if action.CarID.IsZero() {
				return ErrInvalidCarID
			}
		case FieldLabel:
			if strings.TrimSpace(action.Action) == "" {
				return ErrInvalidLabel
			}
		case FieldType:
			if !action.Type.Valid() {
				return ErrInvalidType
			}
		case FieldCost:
			if !isCost(action.Cost) {
				return ErrInvalidCost
			}
		case FieldDate:
			if _, err := models.ParseDate(action.Date); err != nil {
				return errors.Join(ErrInvalidDate, err)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateActionPatch checks only the fields the patch sets.
func (v *GarageValidator) validateActionPatch(ctx context.Context, patch models.ActionPatch) error {
	if patch.IsEmpty() {
		return ErrNoFieldsToUpdate
	}

	var fields []string
	if patch.CarID != nil {
		fields = append(fields, FieldCarID)
	}
	if patch.Action != nil {
		fields = append(fields, FieldLabel)
	}
	if patch.Type != nil {
		fields = append(fields, FieldType)
	}
	if patch.Cost != nil {
		fields = append(fields, FieldCost)
	}
	if patch.Date != nil {
		fields = append(fields, FieldDate)
	}
	if len(fields) == 0 {
		// only free-text fields are set
		return nil
	}

	return v.validateAction(ctx, models.Action{}.Apply(patch), fields...)
}

func isYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isCost(c float64) bool {
	return c >= 0 && !math.IsNaN(c) && !math.IsInf(c, 0)
}
