// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"

	"github.com/MKhiriev/go-garage/internal/app"
	"github.com/MKhiriev/go-garage/internal/service"
)

var ErrUserQuit = errors.New("user quit")

// isPageGuard reports errors that only mean there is nowhere to go. They are
// shown in the status line instead of the error overlay.
func isPageGuard(err error) bool {
	return errors.Is(err, service.ErrNoNextPage) || errors.Is(err, service.ErrNoPreviousPage)
}

func errorText(err error) string {
	return app.UserMessage(err)
}
