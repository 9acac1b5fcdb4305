package service

import "errors"

var (
	// ErrValidation wraps a validators.ErrInvalid* error for input that was
	// rejected before any state changed.
	ErrValidation = errors.New("validation failed")

	ErrNotFound    = errors.New("not found")
	ErrCarNotFound = errors.New("car not found")
	ErrConflict    = errors.New("conflict with current server state")

	// ErrUnsupported is returned by operations one of the garage modes does
	// not offer, e.g. removing a car on the server.
	ErrUnsupported = errors.New("operation is not supported in this mode")
)

// Pagination errors.
var (
	ErrNoNextPage     = errors.New("no next page")
	ErrNoPreviousPage = errors.New("no previous page")

	// ErrPageSuperseded is returned for a page request that finished after a
	// newer one was issued. Its result is discarded.
	ErrPageSuperseded = errors.New("page request superseded by a newer one")

	ErrFetchInProgress = errors.New("page fetch already in progress")
)
