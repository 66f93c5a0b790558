package order

import "errors"

var (
	// ErrOrderItemNotFound is returned when no order item matches the lookup
	ErrOrderItemNotFound = errors.New("order.repository: order item not found")

	// ErrBuildQuery is returned when a SQL statement cannot be built
	ErrBuildQuery = errors.New("order.repository: failed to build query")

	// ErrExecQuery is returned when a SQL statement fails to execute
	ErrExecQuery = errors.New("order.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned
	ErrScanRow = errors.New("order.repository: failed to scan row")
)
