package montecarlo

import "errors"

var (
	// ErrBadCount is returned for a non-positive number of simulations.
	ErrBadCount = errors.New("montecarlo: number of simulations must be > 0")

	// ErrUnknownMethod is returned for an unknown data creation method.
	ErrUnknownMethod = errors.New("montecarlo: unknown data creation method")
)
