// Package modelfree fits Lipari-Szabo model-free parameters to NMR
// relaxation data.
//
// Given R1, R2 and steady-state NOE measurements of a set of spins at one or
// more spectrometer fields, the module optimises per-spin internal motion
// parameters (S2, S2f, S2s, te, tf, ts, Rex, r, CSA, local tm) and the
// global rotational diffusion tensor (sphere, spheroid or ellipsoid) by
// constrained, scaled non-linear least squares.
//
// Layout:
//
//	physics/     - physical constants and gyromagnetic ratios
//	matrix/      - dense matrices used for scaling, constraints and covariance
//	diffusion/   - tensor shapes, geometry and correlation times
//	models/      - parameter names, equations and the m0-m39/tm0-tm39 catalogue
//	pipe/        - spins, tensors, relaxation data and named data pipes
//	mf/          - spectral densities, relaxation rates and the χ² target
//	optim/       - grid search, Method of Multipliers and inner minimisers
//	minimise/    - assembly of parameter vectors and the optimisation driver
//	modsel/      - AIC, AICc, BIC and cross-validation model selection
//	eliminate/   - rejection of failed models and overfit spins
//	montecarlo/  - Monte Carlo simulations and error analysis
//	metrics/     - Prometheus instrumentation of the driver
//	export/      - YAML and XLSX result writers
//	config/      - YAML analysis files
//	cmd/mfopt/   - command line front end
//
// A typical protocol loads an analysis, minimises every candidate model,
// eliminates failed fits, selects the best model per spin and estimates
// errors:
//
//	mfopt minimise m2.yaml --out m2-results.yaml
//	mfopt select --method AIC m1.yaml m2.yaml m4.yaml --xlsx final.xlsx
//
//	go get github.com/katalvlaran/modelfree
package modelfree
