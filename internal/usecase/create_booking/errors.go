package create_booking

import "errors"

var (
	// ErrSlotConflict is returned when the requested window overlaps an
	// active booking on the same resource.
	ErrSlotConflict = errors.New("requested slot conflicts with an existing booking")

	// ErrUserNotFound is returned when the referenced account does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrGuestNotAllowed is returned when a phone-source booking does not
	// resolve to a registered account.
	ErrGuestNotAllowed = errors.New("phone bookings require a registered customer")

	// ErrInvalidDate is returned when the date or time cannot be parsed.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidInput is returned on malformed input data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on internal usecase failures.
	ErrInternal = errors.New("usecase: internal error")
)
