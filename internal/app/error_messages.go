// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the user-facing texts of the garage client.
//
// Msg* constants are shown by the terminal browser when an operation fails.
// Every failure the user can retry says so. UserMessage picks the message for
// an error returned by the service layer.
package app

import (
	"errors"

	"github.com/MKhiriev/go-garage/internal/adapter"
	"github.com/MKhiriev/go-garage/internal/service"
	"github.com/MKhiriev/go-garage/internal/store"
	"github.com/MKhiriev/go-garage/internal/validators"
)

const (
	// MsgNetworkUnavailable is shown when the garage server could not be
	// reached or did not answer in time.
	MsgNetworkUnavailable = "server is unreachable, try again"

	// MsgStorageFailure is shown when the device storage could not be read
	// or written. Changes stay in memory until the next successful write.
	MsgStorageFailure = "could not save to device storage, try again"

	// MsgNotFound is shown when the record was removed in the meantime.
	MsgNotFound = "record no longer exists"

	// MsgCarNotFound is shown when an action refers to a missing car.
	MsgCarNotFound = "car no longer exists"

	// MsgConflict is shown when the server rejects a change because its
	// state moved on. Reloading fixes it.
	MsgConflict = "record changed on the server, reload and try again"

	// MsgUnsupported is shown for operations the server does not offer.
	MsgUnsupported = "not available in remote mode"

	// MsgServerError is shown for 5xx answers.
	MsgServerError = "server failed to process the request, try again later"

	MsgNoNextPage     = "already on the last page"
	MsgNoPreviousPage = "already on the first page"
	MsgInvalidInput   = "invalid input"
)

// Validation messages, one per rejected field.
const (
	MsgInvalidName  = "name is required"
	MsgInvalidYear  = "year must have exactly four digits"
	MsgInvalidImage = "image cannot be shown"
	MsgInvalidLabel = "action is required"
	MsgInvalidType  = "unknown action type"
	MsgInvalidCost  = "cost must be a non-negative number"
	MsgInvalidDate  = "date must look like 2024-05-01"
	MsgNoChanges    = "nothing to update"
)

var validationMessages = []struct {
	err error
	msg string
}{
	{validators.ErrInvalidName, MsgInvalidName},
	{validators.ErrInvalidYear, MsgInvalidYear},
	{validators.ErrInvalidImage, MsgInvalidImage},
	{validators.ErrInvalidLabel, MsgInvalidLabel},
	{validators.ErrInvalidType, MsgInvalidType},
	{validators.ErrInvalidCost, MsgInvalidCost},
	{validators.ErrInvalidDate, MsgInvalidDate},
	{validators.ErrNoFieldsToUpdate, MsgNoChanges},
}

// UserMessage returns the text to show for err, or "" for nil.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, service.ErrValidation):
		for _, v := range validationMessages {
			if errors.Is(err, v.err) {
				return v.msg
			}
		}
		return MsgInvalidInput
	case errors.Is(err, adapter.ErrNetwork):
		return MsgNetworkUnavailable
	case errors.Is(err, store.ErrStorageFailure):
		return MsgStorageFailure
	case errors.Is(err, service.ErrCarNotFound):
		return MsgCarNotFound
	case errors.Is(err, service.ErrNotFound):
		return MsgNotFound
	case errors.Is(err, service.ErrConflict):
		return MsgConflict
	case errors.Is(err, service.ErrUnsupported):
		return MsgUnsupported
	case errors.Is(err, service.ErrNoNextPage):
		return MsgNoNextPage
	case errors.Is(err, service.ErrNoPreviousPage):
		return MsgNoPreviousPage
	case errors.Is(err, adapter.ErrInternalServerError), errors.Is(err, adapter.ErrBadGateway):
		return MsgServerError
	}

	return err.Error()
}
