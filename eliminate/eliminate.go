package eliminate

import (
	"fmt"
	"slices"

	"github.com/go-logr/logr"

	"github.com/katalvlaran/modelfree/diffusion"
	"github.com/katalvlaran/modelfree/internal/logging"
	"github.com/katalvlaran/modelfree/minimise"
	"github.com/katalvlaran/modelfree/models"
	"github.com/katalvlaran/modelfree/pipe"
)

const (
	// DefaultC1 is the local tm ceiling in seconds.
	DefaultC1 = 50e-9

	// DefaultC2 is the internal correlation time limit as a multiple of tm.
	// Fits constrained to te, tf, ts ≤ 2·tm never reach 2, hence 1.5.
	DefaultC2 = 1.5
)

// GlobalTm names the tm of the diffusion tensor in Reject and
// Options.Params.
const GlobalTm = models.ParamName(diffusion.Tm)

// Options configures Eliminate.
type Options struct {
	C1 float64 // local and global tm ceiling (s)
	C2 float64 // te, tf, ts ceiling as a multiple of tm

	// Params restricts the check to the listed parameters. Empty checks
	// the tensor tm (GlobalTm), local_tm, te, tf and ts.
	Params []models.ParamName

	// SimIndex selects a Monte Carlo simulation; -1 checks point values.
	SimIndex int

	Logger logr.Logger
}

// DefaultOptions returns C1 = 50 ns and C2 = 1.5 on the point values.
func DefaultOptions() Options {
	return Options{C1: DefaultC1, C2: DefaultC2, SimIndex: -1}
}

// Validate checks the thresholds.
func (o Options) Validate() error {
	if o.C1 <= 0 || o.C2 <= 0 {
		return fmt.Errorf("C1=%g C2=%g: %w", o.C1, o.C2, ErrBadLimit)
	}

	return nil
}

func (o Options) checks(q models.ParamName) bool {
	if len(o.Params) > 0 {
		return slices.Contains(o.Params, q)
	}

	return q == GlobalTm || q.IsTime()
}

// Reject applies the elimination rules to one parameter value. tm is the
// correlation time the internal times are compared with. It returns the
// reason and true when the value is rejected.
func Reject(name models.ParamName, value, tm float64, o Options) (string, bool) {
	switch name {
	case models.LocalTm, GlobalTm:
		if value >= o.C1 {
			return fmt.Sprintf("%s %g ≥ %g", name, value, o.C1), true
		}
	case models.Te, models.Tf, models.Ts:
		if limit := o.C2 * tm; value >= limit {
			return fmt.Sprintf("%s %g ≥ %g", name, value, limit), true
		}
	}

	return "", false
}

// Eliminate checks the fitted spins of p and deselects the rejected ones
// (or their simulation). It returns the IDs of the rejected spins.
//
// Stage 1: options, model type and simulation index.
// Stage 2: for the diff and all types, the tensor tm against C1. A failed
// tensor rejects every spin of the run.
// Stage 3: per spin, the checked parameters against the rules.
// Stage 4: deselection of the spin, the spin simulation or, for the global
// model types, the pipe simulation.
//
// Complexity: O(S·k).
func Eliminate(p *pipe.Pipe, opts Options) ([]string, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("Eliminate: %w", err)
	}
	if len(p.Spins) == 0 {
		return nil, fmt.Errorf("Eliminate: %w", ErrNoSpins)
	}
	mt, err := minimise.DetermineModelType(p)
	if err != nil {
		return nil, fmt.Errorf("Eliminate: %w", err)
	}
	sim := opts.SimIndex
	if err = p.CheckSim(sim); err != nil {
		return nil, fmt.Errorf("Eliminate: %w", err)
	}
	if !p.SimSelected(sim) {
		return nil, nil
	}
	log := logging.OrDefault(opts.Logger)

	var tensorTm float64
	if p.Tensor != nil {
		tensorTm = p.Tensor.Param(diffusion.Tm).Get(sim)
	}

	// Stage 2
	if mt.HasTensor() && p.Tensor != nil && opts.checks(GlobalTm) {
		if reason, bad := Reject(GlobalTm, tensorTm, tensorTm, opts); bad {
			return rejectTensor(p, mt, sim, reason, log), nil
		}
	}
	if mt == minimise.Diff {
		return nil, nil
	}

	// Stage 3
	var out []string
	for _, s := range minimise.Spins(p, mt, nil) {
		if !s.SimSelected(sim) {
			continue
		}
		tm := tensorTm
		if mt == minimise.LocalTm {
			tm, _ = s.Get(models.LocalTm, sim)
		}
		reason := check(s, tm, sim, opts)
		if reason == "" {
			continue
		}
		out = append(out, s.ID)
		log.Info("eliminating", "pipe", p.Name, "spin", s.ID, "sim", sim, "reason", reason)

		// Stage 4
		switch {
		case sim < 0:
			s.Deselect(reason)
		case mt.PerSpin():
			s.DeselectSim(sim, reason)
		default:
			p.DeselectSim(sim, fmt.Sprintf("spin %s: %s", s.ID, reason))
			return out, nil
		}
	}

	return out, nil
}

// rejectTensor deselects the pipe simulation at sim ≥ 0, or every spin of
// the run otherwise, and returns the IDs of the spins of the run.
func rejectTensor(p *pipe.Pipe, mt minimise.ModelType, sim int, reason string, log logr.Logger) []string {
	spins := minimise.Spins(p, mt, nil)
	out := make([]string, 0, len(spins))
	for _, s := range spins {
		out = append(out, s.ID)
	}
	log.Info("eliminating the diffusion tensor", "pipe", p.Name, "sim", sim, "reason", reason)

	if sim >= 0 {
		p.DeselectSim(sim, "tensor: "+reason)
		return out
	}
	for _, s := range spins {
		s.Deselect("tensor: " + reason)
	}

	return out
}

// check returns the first rejection reason of the spin, or "".
func check(s *pipe.Spin, tm float64, sim int, o Options) string {
	for _, q := range s.Params {
		if !o.checks(q) {
			continue
		}
		v, ok := s.Get(q, sim)
		if !ok {
			continue
		}
		if reason, bad := Reject(q, v, tm, o); bad {
			return reason
		}
	}

	return ""
}
