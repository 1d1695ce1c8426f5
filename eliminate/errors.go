package eliminate

import "errors"

var (
	// ErrNoSpins is returned when the pipe has no spins.
	ErrNoSpins = errors.New("eliminate: no spins")

	// ErrBadLimit is returned for a non-positive elimination threshold.
	ErrBadLimit = errors.New("eliminate: threshold must be > 0")
)
