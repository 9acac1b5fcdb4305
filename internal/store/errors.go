package store

import "errors"

var (
	// ErrStorageFailure wraps every read, write, encode or decode failure of
	// the persistence layer. Callers match it with [errors.Is] and decide
	// whether to retry or surface it.
	ErrStorageFailure = errors.New("storage failure")

	// ErrChecksumMismatch is returned (together with ErrStorageFailure) when
	// a stored value does not match the checksum written alongside it.
	ErrChecksumMismatch = errors.New("stored value checksum mismatch")

	// ErrStorageClosed is returned by operations on a closed storage.
	ErrStorageClosed = errors.New("storage is closed")

	// ErrInvalidDocument is returned by the file storage when a value is not
	// a JSON document.
	ErrInvalidDocument = errors.New("value is not a valid JSON document")
)

// Low-level database operation errors, joined into ErrStorageFailure by the
// SQLite storage.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingStatement is returned when executing an INSERT/UPDATE
	// fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when a result row cannot be read.
	ErrScanningRow = errors.New("failed to scan row")
)
