package identity

import "errors"

var (
	// ErrUserNotFound is returned when no account matches the lookup.
	ErrUserNotFound = errors.New("identity: user not found")

	// ErrInternal is returned on client-side failures (request build, transport).
	ErrInternal = errors.New("identity client: internal error")

	// ErrInvalidResponse is returned when the identity service answers with an
	// unexpected status or an undecodable body.
	ErrInvalidResponse = errors.New("identity client: invalid response")
)
