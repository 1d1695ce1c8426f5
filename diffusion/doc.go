// Package diffusion describes rigid-body rotational diffusion of a molecule.
//
// A diffusion tensor has one of three closed shapes:
//
//	Sphere    - params {tm}
//	Spheroid  - params {tm, Da, theta, phi}
//	Ellipsoid - params {tm, Da, Dr, alpha, beta, gamma}
//
// For each shape the package computes the weights cᵢ and correlation times τᵢ
// of the spectral density components given the unit bond vector of a spin,
// folds orientation angles into their canonical ranges and converts the
// reduced parameterisation into diffusion rates.
//
// All functions are pure. Zero denominators map onto the 1e99 sentinel so
// that a minimiser sees a huge cost rather than a division fault.
package diffusion
