package coupon

import "errors"

var (
	// ErrCouponNotFound is returned when no coupon matches the code
	ErrCouponNotFound = errors.New("coupon.repository: coupon not found")

	// ErrCouponNotActive is returned when a state transition expected an
	// ACTIVE coupon but the row had already moved on.
	ErrCouponNotActive = errors.New("coupon.repository: coupon is not active")

	// ErrBuildQuery is returned when a SQL statement cannot be built
	ErrBuildQuery = errors.New("coupon.repository: failed to build query")

	// ErrExecQuery is returned when a SQL statement fails to execute
	ErrExecQuery = errors.New("coupon.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned
	ErrScanRow = errors.New("coupon.repository: failed to scan row")
)
