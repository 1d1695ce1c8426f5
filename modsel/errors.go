package modsel

import "errors"

var (
	// ErrUnknownMethod is returned for an unsupported selection method.
	ErrUnknownMethod = errors.New("modsel: unknown model selection method")

	// ErrNoCandidates is returned when no source pipe is available.
	ErrNoCandidates = errors.New("modsel: no candidate pipes")

	// ErrDiffSequence is returned when candidates differ in their spins.
	ErrDiffSequence = errors.New("modsel: candidate pipes have different spin sequences")
)

// ErrTooFewFolds is returned when cross-validation has fewer than two
// relaxation data sets to leave out.
var ErrTooFewFolds = errors.New("modsel: cross-validation needs at least two data sets")
