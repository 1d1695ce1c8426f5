package modsel

import (
	"context"
	"fmt"
	"slices"

	"github.com/go-logr/logr"

	"github.com/katalvlaran/modelfree/internal/logging"
	"github.com/katalvlaran/modelfree/minimise"
	"github.com/katalvlaran/modelfree/pipe"
)

// noBest is the starting criterion; any real score is below it.
const noBest = 1e300

// Options configures Select.
type Options struct {
	// Minimise configures the cross-validation refits.
	Minimise minimise.Options

	Logger logr.Logger
}

// DefaultOptions returns the default minimiser settings for CV refits.
func DefaultOptions() Options {
	return Options{Minimise: minimise.DefaultOptions()}
}

// Choice records the outcome for one comparable unit.
type Choice struct {
	Instance  int
	Spin      string // empty for a global unit
	Pipe      string // winning candidate, empty when none qualified
	Criterion float64
	Global    bool
}

// candidate is one source pipe and its instance count.
type candidate struct {
	name      string
	p         *pipe.Pipe
	instances int
}

// Select scores the source pipes for every comparable unit and duplicates
// the winners into the target pipe. Sources default to every other pipe of
// the store.
//
// Stage 1: method, candidates and spin sequence checks.
// Stage 2: the unit count is the smallest instance count over candidates; a
// candidate with more instances, or a single one, is scored globally.
// Stage 3: per unit, the strictly lowest criterion wins.
//
// Complexity: O(U·C) criterion evaluations for U units and C candidates.
func Select(ctx context.Context, st *pipe.Store, method Method, target string, sources []string, opts Options) ([]Choice, error) {
	method, err := ParseMethod(string(method))
	if err != nil {
		return nil, fmt.Errorf("Select: %w", err)
	}
	var formula func(float64, int, int) float64
	if method != CVMethod {
		if formula, err = Formula(method); err != nil {
			return nil, fmt.Errorf("Select: %w", err)
		}
	}
	log := logging.OrDefault(opts.Logger)

	// Stage 1: candidates.
	if len(sources) == 0 {
		sources = slices.DeleteFunc(st.Names(), func(n string) bool { return n == target })
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("Select: %w", ErrNoCandidates)
	}
	cands := make([]candidate, len(sources))
	for i, name := range sources {
		p, err := st.Get(name)
		if err != nil {
			return nil, fmt.Errorf("Select: %w", err)
		}
		if i > 0 && !sameSequence(cands[0].p, p) {
			return nil, fmt.Errorf("Select: %q and %q: %w", sources[0], name, ErrDiffSequence)
		}
		cands[i] = candidate{name: name, p: p, instances: instances(p)}
	}

	// Stage 2: unit count.
	units := cands[0].instances
	for _, c := range cands[1:] {
		units = min(units, c.instances)
	}
	log.V(logging.DEBUG).Info("model selection", "method", method, "target", target, "candidates", sources, "units", units)

	// Stage 3: per unit selection.
	out := make([]Choice, 0, units)
	for i := range units {
		var (
			best       = -1
			bestCrit   = noBest
			bestGlobal bool
		)
		for j, c := range cands {
			global := c.instances > units || c.instances == 1
			var spin *pipe.Spin
			if !global {
				spin = c.p.Spins[i]
			}

			crit, ok, err := score(ctx, c.p, spin, global, method, formula, opts)
			if err != nil {
				return out, fmt.Errorf("Select: %q: %w", c.name, err)
			}
			if !ok {
				continue
			}
			log.V(logging.DEBUG).Info("candidate", "unit", i, "pipe", c.name, "global", global, "criterion", crit)
			if crit < bestCrit {
				best, bestCrit, bestGlobal = j, crit, global
			}
		}

		ch := Choice{Instance: i, Criterion: bestCrit}
		if best >= 0 {
			idx := i
			if bestGlobal {
				idx = -1
			} else {
				ch.Spin = cands[best].p.Spins[i].ID
			}
			if err := st.Duplicate(cands[best].name, target, idx); err != nil {
				return out, fmt.Errorf("Select: %w", err)
			}
			ch.Pipe, ch.Global = cands[best].name, bestGlobal
		}
		log.Info("model selected", "unit", i, "spin", ch.Spin, "pipe", ch.Pipe, "criterion", ch.Criterion)
		out = append(out, ch)
	}

	return out, nil
}

// score returns the criterion of one unit of a candidate.
func score(ctx context.Context, p *pipe.Pipe, spin *pipe.Spin, global bool, method Method, formula func(float64, int, int) float64, opts Options) (float64, bool, error) {
	if method == CVMethod {
		if spin != nil && (!spin.Select || spin.NumData() == 0) {
			return 0, false, nil
		}
		crit, err := CrossValidate(ctx, p, spin, opts.Minimise)
		if err != nil {
			return 0, false, err
		}
		return crit, true, nil
	}

	st, ok, err := ModelStatistics(p, spin, global)
	if err != nil || !ok {
		return 0, false, err
	}

	return formula(st.Chi2, st.K, st.N), true, nil
}

// instances returns the number of optimisation instances of p: one per spin
// for the per-spin model types, one otherwise.
func instances(p *pipe.Pipe) int {
	mt, err := minimise.DetermineModelType(p)
	if err == nil && !mt.PerSpin() {
		return 1
	}

	return len(p.Spins)
}

func sameSequence(a, b *pipe.Pipe) bool {
	return slices.EqualFunc(a.Spins, b.Spins, func(x, y *pipe.Spin) bool { return x.ID == y.ID })
}
