package adapter

import "errors"

var (
	// ErrNetwork is returned when the server cannot be reached or does not
	// answer in time. Requests are never retried automatically.
	ErrNetwork = errors.New("network failure")

	ErrBadRequest          = errors.New("bad request")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")

	// ErrUnexpectedStatus is returned for any other non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected status")

	// ErrDecodeResponse is returned when a 2xx body cannot be decoded.
	ErrDecodeResponse = errors.New("cannot decode server response")

	// ErrUnsupportedImage is returned when uploading an image that has no
	// bytes to send.
	ErrUnsupportedImage = errors.New("only embedded images can be uploaded")

	// ErrMoveAction is returned for a patch that changes the owning car; the
	// server keeps the owner of an action fixed.
	ErrMoveAction = errors.New("an action cannot be moved to another car")
)
