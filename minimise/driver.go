package minimise

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/modelfree/internal/logging"
	"github.com/katalvlaran/modelfree/matrix"
	"github.com/katalvlaran/modelfree/mf"
	"github.com/katalvlaran/modelfree/optim"
	"github.com/katalvlaran/modelfree/pipe"
)

// Calculate evaluates χ² from the current values without optimising and
// records it in the statistics.
func Calculate(ctx context.Context, p *pipe.Pipe, opts Options) error {
	return execute(ctx, p, opts, OpCalculate)
}

// GridSearch runs a grid search over the default bounds (increments from
// opts.GridInc) and stores the best node.
func GridSearch(ctx context.Context, p *pipe.Pipe, opts Options) error {
	return execute(ctx, p, opts, OpGrid)
}

// Minimise optimises the pipe, preceded by a grid search when opts.GridInc is
// set.
func Minimise(ctx context.Context, p *pipe.Pipe, opts Options) error {
	return execute(ctx, p, opts, OpMinimise)
}

// run is the shared state of one driver call.
type run struct {
	p    *pipe.Pipe
	mt   ModelType
	op   Op
	opts Options
	diff []float64
	log  logr.Logger
}

func execute(ctx context.Context, p *pipe.Pipe, opts Options, op Op) error {
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	// Stage 1: model type and preconditions.
	mt, err := DetermineModelType(p)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = Precheck(p, mt); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	sim := opts.SimIndex
	if err = p.CheckSim(sim); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	r := &run{p: p, mt: mt, op: op, opts: opts, log: logging.OrDefault(opts.Logger)}
	if p.Tensor != nil {
		r.diff = p.Tensor.Values(sim)
	}
	r.log.V(logging.DEBUG).Info("starting", "op", op, "pipe", p.Name, "modelType", mt.String(), "sim", sim)

	// Stage 2: a single global instance.
	if !mt.PerSpin() {
		if !p.SimSelected(sim) {
			return nil
		}
		return r.instance(nil)
	}

	// Stage 3: one instance per spin with data.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Workers, 1))
	for _, s := range Spins(p, mt, nil) {
		if s.NumData() == 0 || !s.SimSelected(sim) {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			err := r.instance(s)
			if errors.Is(err, ErrInvalidError) || errors.Is(err, ErrNonFiniteCost) {
				r.log.Info("deselecting spin", "spin", s.ID, "sim", sim, "reason", err.Error())
				deselect(s, sim, err.Error())
				return nil
			}
			return err
		})
	}

	return g.Wait()
}

// deselect removes a spin, or one of its simulations, from further analysis.
func deselect(s *pipe.Spin, sim int, reason string) {
	if sim < 0 {
		s.Deselect(reason)
		return
	}
	s.DeselectSim(sim, reason)
}

// instance optimises one spin (per-spin types) or the whole pipe (spin nil).
func (r *run) instance(spin *pipe.Spin) error {
	start := time.Now()
	res, err := r.solve(spin)
	if r.opts.Recorder != nil {
		ev := Event{Op: r.op, ModelType: r.mt, Result: res, Elapsed: time.Since(start), Err: err}
		if spin != nil {
			ev.Spin = spin.ID
		}
		r.opts.Recorder.Record(ev)
	}
	if err != nil {
		if spin != nil {
			return fmt.Errorf("%s: spin %q: %w", r.op, spin.ID, err)
		}
		return fmt.Errorf("%s: %w", r.op, err)
	}

	return nil
}

func (r *run) solve(spin *pipe.Spin) (optim.Result, error) {
	var (
		p    = r.p
		sim  = r.opts.SimIndex
		opts = r.opts
	)

	// Stage 1: vector and scaling.
	x0, err := Assemble(p, r.mt, spin, sim)
	if err != nil {
		return optim.Result{}, err
	}
	scale, err := ScaleFactors(p, r.mt, spin, opts.Scaling)
	if err != nil {
		return optim.Result{}, err
	}
	xs, err := matrix.DiagSolve(scale, x0)
	if err != nil {
		return optim.Result{}, err
	}

	// Stage 2: physics function.
	setup, err := buildSetup(p, r.mt, Spins(p, r.mt, spin), r.diff, scale, sim)
	if err != nil {
		return optim.Result{}, err
	}
	f, err := mf.New(setup)
	if err != nil {
		return optim.Result{}, err
	}
	var cons *optim.Constraints
	if opts.Constraints {
		a, b, err := LinearConstraints(p, r.mt, spin, scale, ConstraintOptions{TimeUpperBound: opts.TimeUpperBound, Sim: sim})
		if err != nil {
			return optim.Result{}, err
		}
		if a != nil {
			cons = &optim.Constraints{A: a, B: b}
		}
	}

	res := optim.Result{X: xs, F: f.Cost(xs), FCount: 1}
	if r.op != OpCalculate {
		// Stage 3: grid search.
		if r.op == OpGrid || len(opts.GridInc) > 0 {
			if res, err = r.grid(f, spin, scale, cons, len(xs)); err != nil {
				return optim.Result{}, err
			}
		}

		// Stage 4: minimisation.
		if r.op == OpMinimise {
			oo := optim.DefaultOptions()
			oo.Algorithm = opts.Algorithm
			oo.FuncTol = opts.FuncTol
			oo.GradTol = opts.GradTol
			oo.MaxIter = opts.MaxIter
			oo.Constraints = cons
			oo.Logger = r.log
			problem := optim.Problem{
				Func: f.Cost,
				Grad: func(g, x []float64) { f.Gradient(g, x) },
				Hess: f.Hessian,
			}
			if res, err = optim.Minimise(problem, res.X, oo); err != nil {
				return optim.Result{}, err
			}
		}
	}

	// Stage 5: verify, unscale, store.
	if math.IsNaN(res.F) || math.IsInf(res.F, 0) {
		return res, fmt.Errorf("chi2 = %g: %w", res.F, ErrNonFiniteCost)
	}
	if r.op != OpCalculate {
		x, err := matrix.DiagMul(scale, res.X)
		if err != nil {
			return res, err
		}
		if err = Disassemble(p, r.mt, spin, x, sim); err != nil {
			return res, err
		}
	}
	st := pipe.Stats{Chi2: res.F, Warning: res.Warning, Set: true}
	if r.op != OpCalculate {
		st.Iter, st.FCount, st.GCount, st.HCount = res.Iter, res.FCount, res.GCount, res.HCount
	}
	if spin != nil {
		*spin.StatsAt(sim) = st
	} else {
		*p.StatsAt(sim) = st
	}
	r.log.V(logging.DEBUG).Info("instance done", "op", r.op, "spin", spinID(spin), "chi2", res.F, "iter", res.Iter, "warning", res.Warning)

	return res, nil
}

func (r *run) grid(f *mf.Func, spin *pipe.Spin, scale []float64, cons *optim.Constraints, n int) (optim.Result, error) {
	inc, err := r.opts.expandInc(n)
	if err != nil {
		return optim.Result{}, err
	}
	lower, upper, err := GridBounds(r.p, r.mt, spin, scale)
	if err != nil {
		return optim.Result{}, err
	}

	return optim.Grid(f.Cost, inc, lower, upper, cons)
}

func spinID(s *pipe.Spin) string {
	if s == nil {
		return ""
	}

	return s.ID
}
