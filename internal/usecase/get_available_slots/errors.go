package get_available_slots

import "errors"

var (
	// ErrInvalidDate is returned when the date cannot be parsed.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidInput is returned on malformed input data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on internal usecase failures.
	ErrInternal = errors.New("usecase: internal error")
)
