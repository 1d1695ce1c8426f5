// Package mf is the model-free relaxation physics function.
//
// A Func is built once per optimisation instance from a Setup describing the
// diffusion tensor, the spins and their relaxation data. It maps a scaled
// parameter vector onto
//
//	Cost(x)     - χ² = Σ ((Ri_obs − Ri_calc) / σ)² over all spins and data
//	Gradient    - ∂χ²/∂x by central finite differences
//	Hessian     - ∂²χ²/∂x² by central finite differences
//	BackCalc(x) - the predicted relaxation values of the first spin
//
// Predicted R1, R2 and NOE values follow the dipolar, CSA and chemical
// exchange relaxation mechanisms with the model-free spectral densities
// (original, extended and extended-2 formulae) summed over the diffusion
// components of the tensor.
//
// Numeric policy: an overflowing χ² is reported as OverflowCost so that
// line searches reject the step. NaN is propagated unchanged.
//
// Func is immutable after New and safe for concurrent use.
package mf
