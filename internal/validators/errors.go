package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidID        = errors.New("invalid id")
	ErrInvalidName      = errors.New("car name is required")
	ErrInvalidYear      = errors.New("car year must have exactly four digits")
	ErrInvalidImage     = errors.New("invalid car image")
	ErrInvalidCarID     = errors.New("action must belong to a car")
	ErrInvalidLabel     = errors.New("action label is required")
	ErrInvalidType      = errors.New("invalid action type")
	ErrInvalidCost      = errors.New("cost must be a non-negative number")
	ErrInvalidDate      = errors.New("invalid action date")
	ErrNoFieldsToUpdate = errors.New("at least one field must be provided for update")
)
