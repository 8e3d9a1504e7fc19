// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service/dialog layers.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a unique constraint violation.
	ErrAlreadyExists = errors.New("already exists")

	// ErrNoActiveFlow indicates the user has no dialogue flow in progress.
	ErrNoActiveFlow = errors.New("no active flow")

	// ErrUnknownFlow indicates a flow id is not registered with the engine.
	ErrUnknownFlow = errors.New("unknown flow")

	// ErrUnavailable indicates an external collaborator failed and no data was produced.
	ErrUnavailable = errors.New("service unavailable")
)
