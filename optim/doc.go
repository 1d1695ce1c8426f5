// Package optim is the minimisation library behind the model-free driver.
//
// It offers three entry points:
//
//   - Minimise: unconstrained minimisation with one of the Algorithm values,
//     each backed by gonum.org/v1/gonum/optimize. When Options.Constraints is
//     set the call is routed through MethodOfMultipliers.
//   - MethodOfMultipliers: augmented Lagrangian handling of the linear
//     inequality system A·x ≥ b around an inner Algorithm.
//   - Grid: exhaustive evaluation on a regular lattice, skipping nodes that
//     violate the constraints.
//
// All three return a Result carrying the location, the function value, the
// iteration and evaluation counts and an optional warning. Warnings describe
// non-fatal termination (iteration limits, penalty exhaustion); errors are
// reserved for invalid input.
package optim
