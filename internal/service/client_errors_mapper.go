// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-garage/internal/adapter"
)

// mapAdapterError translates the adapter's transport error into a service
// error. The adapter error stays in the chain, so ErrNetwork and the server
// message are still reachable.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, adapter.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, adapter.ErrBadRequest):
		return fmt.Errorf("%w: %w", ErrValidation, err)
	case errors.Is(err, adapter.ErrConflict):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, adapter.ErrNetwork):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		// a deadline set above the adapter fired before the request did
		return fmt.Errorf("%w: %w", adapter.ErrNetwork, err)
	}

	return err
}
