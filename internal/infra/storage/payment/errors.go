package payment

import "errors"

var (
	// ErrPaymentNotFound is returned when no payment matches the lookup
	ErrPaymentNotFound = errors.New("payment.repository: payment not found")

	// ErrDuplicatePayment is returned when a non-voided payment already
	// exists for the (booking, seat) pair. Enforced by a partial unique
	// index, so it holds even under concurrent inserts.
	ErrDuplicatePayment = errors.New("payment.repository: seat already has a payment")

	// ErrBuildQuery is returned when a SQL statement cannot be built
	ErrBuildQuery = errors.New("payment.repository: failed to build query")

	// ErrExecQuery is returned when a SQL statement fails to execute
	ErrExecQuery = errors.New("payment.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned
	ErrScanRow = errors.New("payment.repository: failed to scan row")
)
