package optim

import (
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/modelfree/matrix"
)

// Warning strings reported in Result.Warning.
const (
	WarnMaxIter     = "Maximum number of iterations reached"
	WarnMuTooSmall  = "Mu too small."
	WarnNoOptimised = "No optimisation"
)

// Algorithm names an inner minimiser.
type Algorithm string

const (
	Newton          Algorithm = "newton"
	BFGS            Algorithm = "bfgs"
	LBFGS           Algorithm = "lbfgs"
	CG              Algorithm = "cg"
	Simplex         Algorithm = "simplex"
	SteepestDescent Algorithm = "sd"
)

// Algorithms lists the supported algorithms.
var Algorithms = []Algorithm{Newton, BFGS, LBFGS, CG, Simplex, SteepestDescent}

// ParseAlgorithm maps a case-insensitive name onto an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	a := Algorithm(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Algorithms {
		if a == known {
			return a, nil
		}
	}

	return "", fmt.Errorf("ParseAlgorithm(%q): %w", s, ErrUnsupportedAlgorithm)
}

// needsGrad reports whether a uses first derivatives.
func (a Algorithm) needsGrad() bool { return a != Simplex }

// Problem is the objective with optional derivatives.
type Problem struct {
	Func func(x []float64) float64
	Grad func(grad, x []float64)
	Hess func(hess *mat.SymDense, x []float64)
}

// Constraints is the linear inequality system A·x ≥ b.
type Constraints struct {
	A matrix.Matrix
	B []float64
}

// values returns c = A·x − b.
func (c *Constraints) values(x []float64) ([]float64, error) {
	ax, err := matrix.MatVec(c.A, x)
	if err != nil {
		return nil, err
	}
	for i := range ax {
		ax[i] -= c.B[i]
	}

	return ax, nil
}

// check validates the shapes against a vector of length n.
func (c *Constraints) check(n int) error {
	if c.A == nil || c.A.Rows() != len(c.B) || c.A.Cols() != n {
		return ErrConstraintShape
	}

	return nil
}

// Satisfied reports whether min(A·x − b) ≥ 0.
func (c *Constraints) Satisfied(x []float64) bool {
	v, err := c.values(x)
	if err != nil {
		return false
	}
	for _, ci := range v {
		if ci < 0 {
			return false
		}
	}

	return true
}

// Options configures Minimise and MethodOfMultipliers.
type Options struct {
	Algorithm Algorithm

	// FuncTol is the absolute function-change tolerance.
	FuncTol float64

	// GradTol is the infinity-norm gradient tolerance of unconstrained runs.
	// Zero selects gonum's default.
	GradTol float64

	// MaxIter bounds the total number of major iterations.
	MaxIter int

	// Constraints, when non-nil, routes Minimise through MethodOfMultipliers.
	Constraints *Constraints

	// Multiplier settings for MethodOfMultipliers.
	Mu0, Epsilon0, Gamma0 float64

	Logger logr.Logger
}

// DefaultOptions returns BFGS with func_tol 1e-25, 1e6 iterations and the
// standard multiplier schedule μ0 = 1e-2, ε0 = γ0 = 1e5.
func DefaultOptions() Options {
	return Options{
		Algorithm: BFGS,
		FuncTol:   1e-25,
		MaxIter:   1_000_000,
		Mu0:       1e-2,
		Epsilon0:  1e5,
		Gamma0:    1e5,
	}
}

// Result is the outcome of a minimisation.
type Result struct {
	X       []float64
	F       float64
	Iter    int
	FCount  int
	GCount  int
	HCount  int
	Warning string
}

// add accumulates the counters of r into res.
func (res *Result) add(r Result) {
	res.Iter += r.Iter
	res.FCount += r.FCount
	res.GCount += r.GCount
	res.HCount += r.HCount
}
