// Package minimise drives model-free optimisation of a pipe.
//
// A pipe's selected spins and diffusion tensor determine the ModelType:
//
//	– LocalTm: every selected spin carries its own local_tm (no global tensor).
//	– MF:      the tensor is fixed, spin parameters are optimised per spin.
//	– Diff:    all spins are fixed, only the tensor is optimised.
//	– All:     the tensor and all spin parameters are optimised together.
//
// MF and LocalTm runs are split into one instance per selected spin with
// data; Diff and All runs form a single instance spanning every selected spin.
//
// Per instance the driver runs these stages:
//
//	Stage 1: assemble the parameter vector (Assemble) and the scaling
//	         diagonal (ScalingMatrix); x is divided by the scale.
//	Stage 2: build the physics function (mf.New) from the relaxation data.
//	Stage 3: optional grid search (optim.Grid over GridBounds).
//	Stage 4: minimisation (optim.Minimise, wrapped in the Method of
//	         Multipliers when LinearConstraints are on).
//	Stage 5: reject non-finite χ², unscale, Disassemble and record Stats.
//
// Errors (sentinel):
//
//	– ErrNoModel          a selected spin has no model.
//	– ErrNoNucleus        a selected spin lacks heteronucleus or proton type.
//	– ErrMissingValue     r or CSA is neither optimised nor set (*MissingValueError).
//	– ErrNoTensor         a non-local_tm run without a diffusion tensor.
//	– ErrNoVector         a non-spherical tensor and a spin without bond vector.
//	– ErrLocalTmMismatch  only some selected spins carry local_tm.
//	– ErrAllFixed         all spins and the tensor are fixed.
//	– ErrInvalidError     a relaxation error ≤ 0.
//	– ErrNonFiniteCost    the optimised χ² is NaN or infinite.
//
// In MF and LocalTm runs, ErrInvalidError and ErrNonFiniteCost deselect the
// offending spin with a warning and the remaining instances continue.
//
// Example usage:
//
//	opts := minimise.DefaultOptions()
//	opts.GridInc = []int{11}
//	if err := minimise.Minimise(ctx, p, opts); err != nil {
//	    log.Fatal(err)
//	}
package minimise
