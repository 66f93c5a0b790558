package menu

import "errors"

var (
	// ErrMenuItemNotFound is returned when no active menu item matches
	ErrMenuItemNotFound = errors.New("menu.repository: menu item not found")

	// ErrBuildQuery is returned when a SQL statement cannot be built
	ErrBuildQuery = errors.New("menu.repository: failed to build query")

	// ErrExecQuery is returned when a SQL statement fails to execute
	ErrExecQuery = errors.New("menu.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned
	ErrScanRow = errors.New("menu.repository: failed to scan row")
)
