// Package eliminate removes spins that cannot support, or failed, a
// model-free fit.
//
// Two guards are provided:
//
//   - OverfitDeselect runs before optimisation. A spin is deselected when it
//     has no relaxation data, fewer than three data points while carrying
//     free parameters, more parameters than data points, or no bond vector
//     under a non-spherical tensor.
//   - Eliminate runs after optimisation. A fit is rejected when its local tm
//     or the optimised tensor tm reaches Options.C1, or when te, tf or ts
//     reaches Options.C2 times the correlation time of the spin (local tm or
//     the tensor tm). A rejected tensor rejects every spin of the run.
//
// Rejected spins are deselected, never deleted. For a Monte Carlo
// simulation only the simulation slot is deselected, on the spin for the
// per-spin model types and on the pipe for the global ones.
//
// Errors (sentinel):
//
//	ErrNoSpins  - the pipe holds no spins.
//	ErrBadLimit - C1 or C2 is not positive.
//
// Example usage:
//
//	ids, err := eliminate.Eliminate(p, eliminate.DefaultOptions())
//	if err != nil {
//		return err
//	}
//	log.Info("eliminated", "spins", ids)
package eliminate
