// Package modsel selects between competing model-free fits.
//
// Each candidate is a pipe holding the same spin sequence optimised under a
// different model. For every comparable unit (one spin, or the whole pipe
// when a candidate is a global fit) the candidates are scored with one of
//
//	AIC  = χ² + 2k
//	AICc = χ² + 2k + 2k(k + 1)/(n − k − 1)
//	BIC  = χ² + k·ln n
//	CV   = mean held-out χ² of single-item-out refits
//
// where k is the number of free parameters and n the number of relaxation
// data points. The lowest score wins, the earliest candidate winning ties,
// and the winner is duplicated into the target pipe. Candidates without
// statistics for a unit are skipped.
//
// Errors (sentinel):
//
//	ErrUnknownMethod - method other than AIC, AICc, BIC or CV.
//	ErrNoCandidates  - nothing to select from.
//	ErrDiffSequence  - candidate pipes hold different spin sequences.
//
// Example usage:
//
//	choices, err := modsel.Select(ctx, store, modsel.AICMethod, "final", []string{"m1", "m2"}, modsel.DefaultOptions())
package modsel
