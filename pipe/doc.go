// Package pipe is the data model of an analysis: spins, the diffusion tensor,
// relaxation data and optimisation statistics.
//
// A Pipe is one named analysis context. Every operation in the module takes a
// *Pipe explicitly; there is no implicit "current" pipe. A Store groups named
// pipes, e.g. one per candidate model during model selection.
//
// Each optimisable quantity is a Param record holding the point estimate,
// the Monte Carlo simulation replicates and the error estimate together.
// Parameter presence is membership in a map keyed by name.
//
// Pipes are not safe for concurrent mutation of the same spin. Distinct spins
// may be written concurrently.
package pipe
