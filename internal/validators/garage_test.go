// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-garage/models"
)

func ptr[T any](v T) *T { return &v }

func validCar() models.Car {
	return models.Car{Name: "Golf", Model: "VW", PlateNumber: "AB123", Year: "2012"}
}

func validAction() models.Action {
	return models.Action{
		CarID:  "car-1",
		Action: "Changed brakes",
		Type:   models.ActionRepair,
		Cost:   120.5,
		Date:   "2024-03-01",
	}
}

func TestNewGarageValidator(t *testing.T) {
	require.NotNil(t, NewGarageValidator())
}

func TestValidate_UnsupportedType(t *testing.T) {
	err := NewGarageValidator().Validate(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestValidate_Car(t *testing.T) {
	img := models.ReferencedImage("")

	tests := []struct {
		name    string
		mutate  func(c *models.Car)
		fields  []string
		wantErr error
	}{
		{name: "valid", mutate: func(*models.Car) {}},
		{name: "blank name", mutate: func(c *models.Car) { c.Name = "  " }, wantErr: ErrInvalidName},
		{name: "three digit year", mutate: func(c *models.Car) { c.Year = "999" }, wantErr: ErrInvalidYear},
		{name: "non digit year", mutate: func(c *models.Car) { c.Year = "20x2" }, wantErr: ErrInvalidYear},
		{name: "bad image", mutate: func(c *models.Car) { c.Image = &img }, wantErr: ErrInvalidImage},
		{name: "missing id when requested", mutate: func(*models.Car) {}, fields: []string{FieldID}, wantErr: ErrInvalidID},
		{name: "unknown field", mutate: func(*models.Car) {}, fields: []string{"colour"}, wantErr: ErrUnknownField},
		{name: "scoped to name ignores bad year", mutate: func(c *models.Car) { c.Year = "" }, fields: []string{FieldName}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			car := validCar()
			tt.mutate(&car)

			err := NewGarageValidator().Validate(context.Background(), &car, tt.fields...)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_Action(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(a *models.Action)
		wantErr error
	}{
		{name: "valid", mutate: func(*models.Action) {}},
		{name: "server date format", mutate: func(a *models.Action) { a.Date = "2024-03-01 10:00:00" }},
		{name: "rfc3339 date", mutate: func(a *models.Action) { a.Date = "2024-03-01T10:00:00Z" }},
		{name: "zero cost", mutate: func(a *models.Action) { a.Cost = 0 }},
		{name: "no car", mutate: func(a *models.Action) { a.CarID = "" }, wantErr: ErrInvalidCarID},
		{name: "blank label", mutate: func(a *models.Action) { a.Action = "" }, wantErr: ErrInvalidLabel},
		{name: "unknown type", mutate: func(a *models.Action) { a.Type = "tuning" }, wantErr: ErrInvalidType},
		{name: "negative cost", mutate: func(a *models.Action) { a.Cost = -1 }, wantErr: ErrInvalidCost},
		{name: "NaN cost", mutate: func(a *models.Action) { a.Cost = math.NaN() }, wantErr: ErrInvalidCost},
		{name: "bad date", mutate: func(a *models.Action) { a.Date = "yesterday" }, wantErr: ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action := validAction()
			tt.mutate(&action)

			err := NewGarageValidator().Validate(context.Background(), action)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_ActionPatch(t *testing.T) {
	v := NewGarageValidator()
	ctx := context.Background()

	assert.ErrorIs(t, v.Validate(ctx, models.ActionPatch{}), ErrNoFieldsToUpdate)
	assert.NoError(t, v.Validate(ctx, models.ActionPatch{Details: ptr("front pads")}))
	assert.NoError(t, v.Validate(ctx, &models.ActionPatch{Cost: ptr(10.0), Date: ptr("2024-05-05")}))
	assert.ErrorIs(t, v.Validate(ctx, models.ActionPatch{Cost: ptr(-3.0)}), ErrInvalidCost)
	assert.ErrorIs(t, v.Validate(ctx, models.ActionPatch{Type: ptr(models.ActionType("x"))}), ErrInvalidType)
	assert.ErrorIs(t, v.Validate(ctx, models.ActionPatch{CarID: ptr(models.ID(""))}), ErrInvalidCarID)
}
