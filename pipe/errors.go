package pipe

import "errors"

var (
	// ErrPipeExists is returned when adding a pipe whose name is taken.
	ErrPipeExists = errors.New("pipe: data pipe already exists")

	// ErrNoPipe is returned for an unknown pipe name.
	ErrNoPipe = errors.New("pipe: data pipe does not exist")

	// ErrNoSpin is returned for an unknown spin ID.
	ErrNoSpin = errors.New("pipe: spin does not exist")

	// ErrSpinExists is returned when adding a duplicate spin ID.
	ErrSpinExists = errors.New("pipe: spin already exists")

	// ErrUnknownRi is returned for a relaxation ID that was never registered.
	ErrUnknownRi = errors.New("pipe: unknown relaxation data ID")

	// ErrRiExists is returned when re-registering a relaxation ID with a
	// different type or frequency.
	ErrRiExists = errors.New("pipe: relaxation data ID already registered")

	// ErrUnknownRiType is returned for a relaxation type other than R1, R2, NOE.
	ErrUnknownRiType = errors.New("pipe: unknown relaxation data type")

	// ErrBadFrequency is returned for a non-positive spectrometer frequency.
	ErrBadFrequency = errors.New("pipe: spectrometer frequency must be > 0")

	// ErrNoSims is returned when simulation slots are requested before
	// simulations were set up.
	ErrNoSims = errors.New("pipe: Monte Carlo simulations not set up")

	// ErrInconsistent is returned when data copied between pipes disagrees
	// with what the target already holds.
	ErrInconsistent = errors.New("pipe: data pipes are inconsistent")

	// ErrSimIndex is returned for an out of range simulation index.
	ErrSimIndex = errors.New("pipe: simulation index out of range")
)
