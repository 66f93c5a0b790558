package bookings

import "errors"

var (
	// ErrBookingNotFound is returned when the booking does not exist.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrPaymentNotFound is returned when the payment does not exist.
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrCannotCancel is returned when the booking is already terminal.
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrRequiresRefund is returned when cancellation is blocked by applied
	// payments; they must be voided first.
	ErrRequiresRefund = errors.New("booking has applied payments, void them before cancelling")

	// ErrInvalidTransition is returned on a disallowed status change.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidInput is returned on malformed input data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on internal service failures.
	ErrInternal = errors.New("service: internal error")
)
