package types

import "errors"

var (
	// ErrNotFound is returned when a client id is unknown to the backend.
	ErrNotFound = errors.New("client not found")
	// ErrInvalidClient is returned when a client record fails validation.
	ErrInvalidClient = errors.New("invalid client")
)
