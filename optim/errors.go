package optim

import "errors"

var (
	// ErrUnsupportedAlgorithm is returned for an unknown algorithm name.
	ErrUnsupportedAlgorithm = errors.New("optim: unsupported algorithm")

	// ErrGridTooLarge is returned when a grid exceeds MaxGridNodes.
	ErrGridTooLarge = errors.New("optim: grid too large")

	// ErrGridBounds is returned for bound and increment slices of the wrong
	// length or non-positive increments.
	ErrGridBounds = errors.New("optim: invalid grid bounds")

	// ErrNilFunc is returned when a Problem has no objective.
	ErrNilFunc = errors.New("optim: nil objective")

	// ErrNoGradient is returned when a gradient-based algorithm is given a
	// Problem without Grad (or Newton without Hess).
	ErrNoGradient = errors.New("optim: algorithm requires derivatives")

	// ErrConstraintShape is returned when A and b disagree with each other or
	// with the dimension of x.
	ErrConstraintShape = errors.New("optim: constraint dimension mismatch")
)
