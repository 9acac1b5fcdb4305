// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer access to the garage server.
//
// The primary abstraction is [GarageAdapter], which decouples the service
// layer from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPGarageAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrNotFound] for 404, [ErrConflict] for 409). Every failure
// to reach the server, including timeouts, is reported as [ErrNetwork].
package adapter

import (
	"context"

	"github.com/MKhiriev/go-garage/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/garage_adapter_mock.go -package=mock

// GarageAdapter defines communication with the garage server. Implementations
// convert between the server wire format and the domain models.
type GarageAdapter interface {
	// ListCars fetches one page of cars. pageIndex is 1-based. An empty page
	// is not an error.
	ListCars(ctx context.Context, pageIndex, pageSize int) (models.Page[models.Car], error)

	// GetCar fetches a car together with its actions.
	GetCar(ctx context.Context, id models.ID) (models.CarWithActions, error)

	// CreateCar registers a new car and returns it as stored by the server.
	CreateCar(ctx context.Context, car models.Car) (models.Car, error)

	// UploadCarImage replaces the car image. Only embedded images can be
	// uploaded.
	UploadCarImage(ctx context.Context, id models.ID, image models.Image) (models.Car, error)

	// CreateAction adds an action to the car carID.
	CreateAction(ctx context.Context, carID models.ID, action models.Action) (models.Action, error)

	// UpdateAction applies a partial update and returns the updated action.
	UpdateAction(ctx context.Context, id models.ID, patch models.ActionPatch) (models.Action, error)

	// DeleteAction removes an action.
	DeleteAction(ctx context.Context, id models.ID) error

	// GetAction fetches a single action.
	GetAction(ctx context.Context, id models.ID) (models.Action, error)
}
