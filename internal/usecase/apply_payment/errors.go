package apply_payment

import "errors"

var (
	// ErrBookingNotFound is returned when the booking does not exist.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrBookingClosed is returned when the booking is terminal and no
	// longer accepts settlements.
	ErrBookingClosed = errors.New("booking is closed for payments")

	// ErrAlreadyPaid is returned when the seat already has an applied
	// payment. Retries of a successful settlement land here.
	ErrAlreadyPaid = errors.New("seat already paid")

	// ErrAmountMismatch is returned when the tendered amount does not match
	// the recomputed amount due.
	ErrAmountMismatch = errors.New("payment amount does not match amount due")

	// ErrCouponInvalid is returned when the coupon is unknown or not active.
	ErrCouponInvalid = errors.New("coupon is not valid")

	// ErrCouponExpired is returned when the coupon's expiry has passed.
	ErrCouponExpired = errors.New("coupon has expired")

	// ErrInvalidInput is returned on malformed input data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on internal usecase failures.
	ErrInternal = errors.New("usecase: internal error")
)
