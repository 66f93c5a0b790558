package coupons

import "errors"

var (
	// ErrCouponInvalid is returned when the code is unknown or already redeemed.
	ErrCouponInvalid = errors.New("coupon is not valid")

	// ErrCouponExpired is returned when the coupon's expiry has passed.
	ErrCouponExpired = errors.New("coupon has expired")

	// ErrInternal is returned on internal service failures.
	ErrInternal = errors.New("service: internal error")
)
