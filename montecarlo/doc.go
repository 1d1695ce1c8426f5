// Package montecarlo estimates parameter errors by Monte Carlo simulation.
//
// The protocol follows five stages, all on one pipe:
//
//  1. Setup allocates n simulations and selects them all.
//  2. CreateData draws every simulated data set from a normal distribution
//     centred on the back-calculated (or measured) value with the measured
//     error as standard deviation.
//  3. InitialValues seeds every simulation with the point estimates.
//  4. Each simulation is minimised, and optionally vetted by elimination.
//  5. ErrorAnalysis stores the sample standard deviation of the selected
//     simulations as the error of every parameter.
//
// Run chains the stages. Simulations write disjoint slots and may be
// minimised concurrently (Options.Workers).
//
// Errors (sentinel):
//
//	ErrBadCount      - the simulation count is not positive.
//	ErrUnknownMethod - data method other than back_calc or direct.
package montecarlo
