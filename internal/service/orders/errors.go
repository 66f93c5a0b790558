package orders

import "errors"

var (
	// ErrBookingNotFound is returned when the booking does not exist.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrOrderItemNotFound is returned when the order item does not exist.
	ErrOrderItemNotFound = errors.New("order item not found")

	// ErrMenuItemNotFound is returned when the referenced menu item does not
	// exist or is inactive.
	ErrMenuItemNotFound = errors.New("menu item not found")

	// ErrBookingClosed is returned when the booking no longer accepts ledger
	// changes (completed or cancelled).
	ErrBookingClosed = errors.New("booking is closed for orders")

	// ErrSeatAlreadySettled is returned when the seat has an applied payment;
	// its ledger is frozen until that payment is voided.
	ErrSeatAlreadySettled = errors.New("seat already settled")

	// ErrInvalidInput is returned on malformed input data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on internal service failures.
	ErrInternal = errors.New("service: internal error")
)
