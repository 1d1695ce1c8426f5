package optim

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/modelfree/internal/logging"
)

const (
	// muFloor terminates the penalty schedule.
	muFloor = 1e-99

	// defaultGradFloor is the gradient tolerance below which a sub-problem
	// that took no step counts as converged.
	defaultGradFloor = 1e-12

	// subGradCap bounds the gradient tolerance handed to the inner
	// algorithm. A smaller Options.GradTol tightens it.
	subGradCap = 1e-6
)

// augmented is the augmented Lagrangian
//
//	L(x) = f(x) + Σᵢ ψ(cᵢ(x), λᵢ; μ)
//	ψ(t, s; μ) = −s·t + t²/(2μ)   if t ≤ μ·s
//	           = −μ·s²/2          otherwise
type augmented struct {
	p      Problem
	c      *Constraints
	rows   [][]float64
	lambda []float64
	mu     float64
}

func (a *augmented) constraints(x []float64) []float64 {
	c, err := a.c.values(x)
	if err != nil {
		panic(fmt.Sprintf("optim: %v", err))
	}

	return c
}

func (a *augmented) value(x []float64) float64 {
	l := a.p.Func(x)
	for i, ci := range a.constraints(x) {
		if ci <= a.mu*a.lambda[i] {
			l += -a.lambda[i]*ci + 0.5*ci*ci/a.mu
		} else {
			l -= 0.5 * a.mu * a.lambda[i] * a.lambda[i]
		}
	}

	return l
}

func (a *augmented) grad(g, x []float64) {
	a.p.Grad(g, x)
	for i, ci := range a.constraints(x) {
		if ci <= a.mu*a.lambda[i] {
			floats.AddScaled(g, -(a.lambda[i] - ci/a.mu), a.rows[i])
		}
	}
}

func (a *augmented) hess(h *mat.SymDense, x []float64) {
	a.p.Hess(h, x)
	for i, ci := range a.constraints(x) {
		if ci <= a.mu*a.lambda[i] {
			h.SymRankOne(h, 1/a.mu, mat.NewVecDense(len(a.rows[i]), a.rows[i]))
		}
	}
}

func (a *augmented) problem() Problem {
	q := Problem{Func: a.value}
	if a.p.Grad != nil {
		q.Grad = a.grad
	}
	if a.p.Hess != nil {
		q.Hess = a.hess
	}

	return q
}

// MethodOfMultipliers minimises p subject to opts.Constraints (A·x ≥ b) by
// the augmented Lagrangian method around opts.Algorithm.
//
// Each outer iteration solves the sub-problem to the gradient tolerance
// tk = min(ε, γ·‖c(x)‖), capped at 1e-6 or a smaller opts.GradTol. It stops
// when the Lagrangian changes by at most opts.FuncTol plus a relative
// rounding margin, and otherwise updates λ ← max(λ − c/μ, 0), μ ← μ/10 and
// ε, γ ← ε/100, γ/100. A sub-problem that leaves x untouched while its
// tolerance is above the gradient floor is not taken as convergence.
//
// Result.F is the unpenalised objective at the returned point and
// Result.Iter the outer plus inner iteration count.
func MethodOfMultipliers(p Problem, x0 []float64, opts Options) (Result, error) {
	if p.Func == nil {
		return Result{}, fmt.Errorf("MethodOfMultipliers: %w", ErrNilFunc)
	}
	c := opts.Constraints
	if c == nil {
		return Minimise(p, x0, opts)
	}
	if err := c.check(len(x0)); err != nil {
		return Result{}, fmt.Errorf("MethodOfMultipliers: %w", err)
	}

	// Stage 1: dense constraint rows and the initial state.
	rows := make([][]float64, c.A.Rows())
	for i := range rows {
		rows[i] = make([]float64, c.A.Cols())
		for j := range rows[i] {
			v, err := c.A.At(i, j)
			if err != nil {
				return Result{}, fmt.Errorf("MethodOfMultipliers: %w", err)
			}
			rows[i][j] = v
		}
	}
	var (
		log   = logging.OrDefault(opts.Logger)
		aug   = &augmented{p: p, c: c, rows: rows, lambda: make([]float64, len(rows)), mu: opts.Mu0}
		eps   = opts.Epsilon0
		gamma = opts.Gamma0
		floor = opts.GradTol
		xk    = slices.Clone(x0)
		xNew  = xk
		lk    = aug.value(xk)
		ck    = aug.constraints(xk)
		total Result
		k     int
	)
	if floor <= 0 {
		floor = defaultGradFloor
	}
	limit := subGradCap
	if opts.GradTol > 0 {
		limit = math.Min(limit, opts.GradTol)
	}

	// Stage 2: outer loop.
	for {
		tk := math.Min(math.Min(eps, gamma*floats.Norm(ck, 2)), limit)
		r, err := inner(aug.problem(), xk, opts.Algorithm, tk, opts.FuncTol, opts.MaxIter-total.Iter)
		if err != nil {
			return Result{}, fmt.Errorf("MethodOfMultipliers: %w", err)
		}
		total.add(r)
		xNew = r.X

		if total.Iter >= opts.MaxIter {
			total.Warning = WarnMaxIter
			break
		}
		stalled := slices.Equal(r.X, xk) && tk > floor
		if !stalled && unchanged(r.F, lk, opts.FuncTol) {
			break
		}

		ck = aug.constraints(xNew)
		for i := range aug.lambda {
			aug.lambda[i] = math.Max(aug.lambda[i]-ck[i]/aug.mu, 0)
		}
		aug.mu *= 0.1
		eps *= 1e-2
		gamma *= 1e-2
		if aug.mu < muFloor {
			total.Warning = WarnMuTooSmall
			break
		}

		xk = xNew
		lk = r.F
		k++
		log.V(logging.TRACE).Info("multiplier update", "k", k, "L", lk, "mu", aug.mu, "tk", tk)
	}

	total.X = slices.Clone(xNew)
	total.F = p.Func(xNew)
	total.FCount++
	total.Iter += k + 1

	return total, nil
}
