package mf

import "errors"

var (
	// ErrNoSpins is returned when a Setup contains no spins.
	ErrNoSpins = errors.New("mf: no spins")

	// ErrDataMismatch is returned when per-datum slices differ in length or a
	// remap entry points outside the frequency list.
	ErrDataMismatch = errors.New("mf: inconsistent relaxation data")

	// ErrInvalidError is returned when a measurement error is zero or negative.
	ErrInvalidError = errors.New("mf: relaxation error must be > 0")

	// ErrGyro is returned for zero gyromagnetic ratios.
	ErrGyro = errors.New("mf: gyromagnetic ratio must be non-zero")

	// ErrDimension is returned when a parameter vector has the wrong length.
	ErrDimension = errors.New("mf: parameter vector length mismatch")
)
