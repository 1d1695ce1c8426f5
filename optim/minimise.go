package optim

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/optimize"
)

const (
	// convergeIterations is the number of non-improving major iterations
	// after which the function-change test terminates a run.
	convergeIterations = 20

	// relTol is the relative function change treated as no change.
	relTol = 1e-13
)

// unchanged reports whether b differs from a by at most abs + relTol·max(|a|,|b|).
func unchanged(a, b, abs float64) bool {
	return math.Abs(a-b) <= abs+relTol*math.Max(math.Abs(a), math.Abs(b))
}

// method maps an Algorithm onto its gonum implementation.
func method(a Algorithm) (optimize.Method, error) {
	switch a {
	case Newton:
		return &optimize.Newton{}, nil
	case BFGS:
		return &optimize.BFGS{}, nil
	case LBFGS:
		return &optimize.LBFGS{}, nil
	case CG:
		return &optimize.CG{}, nil
	case Simplex:
		return &optimize.NelderMead{}, nil
	case SteepestDescent:
		return &optimize.GradientDescent{}, nil
	}

	return nil, fmt.Errorf("%q: %w", a, ErrUnsupportedAlgorithm)
}

// Minimise minimises p from x0. With opts.Constraints set it delegates to
// MethodOfMultipliers; otherwise the inner algorithm runs directly.
func Minimise(p Problem, x0 []float64, opts Options) (Result, error) {
	if p.Func == nil {
		return Result{}, fmt.Errorf("Minimise: %w", ErrNilFunc)
	}
	if opts.Constraints != nil {
		return MethodOfMultipliers(p, x0, opts)
	}
	res, err := inner(p, x0, opts.Algorithm, opts.GradTol, opts.FuncTol, opts.MaxIter)
	if err != nil {
		return Result{}, fmt.Errorf("Minimise: %w", err)
	}

	return res, nil
}

// inner runs one unconstrained gonum minimisation.
func inner(p Problem, x0 []float64, alg Algorithm, gradTol, funcTol float64, maxIter int) (Result, error) {
	m, err := method(alg)
	if err != nil {
		return Result{}, err
	}
	if alg.needsGrad() && p.Grad == nil || alg == Newton && p.Hess == nil {
		return Result{}, fmt.Errorf("%s: %w", alg, ErrNoGradient)
	}
	if len(x0) == 0 {
		x := []float64{}
		return Result{X: x, F: p.Func(x), FCount: 1, Warning: WarnNoOptimised}, nil
	}

	prob := optimize.Problem{Func: p.Func}
	if alg.needsGrad() {
		prob.Grad = p.Grad
	}
	if alg == Newton {
		prob.Hess = p.Hess
	}
	settings := &optimize.Settings{
		GradientThreshold: gradTol,
		MajorIterations:   max(maxIter, 1),
		Converger: &optimize.FunctionConverge{
			Absolute:   funcTol,
			Relative:   relTol,
			Iterations: convergeIterations,
		},
	}

	r, err := optimize.Minimize(prob, slices.Clone(x0), settings, m)
	if r == nil {
		return Result{}, fmt.Errorf("%s: %w", alg, err)
	}
	res := Result{
		X:      slices.Clone(r.X),
		F:      r.F,
		Iter:   r.MajorIterations,
		FCount: r.FuncEvaluations,
		GCount: r.GradEvaluations,
		HCount: r.HessEvaluations,
	}
	switch {
	case err != nil && !errors.Is(err, optimize.ErrNoProgress):
		res.Warning = err.Error()
	case r.Status == optimize.IterationLimit:
		res.Warning = WarnMaxIter
	}

	return res, nil
}
