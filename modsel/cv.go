package modsel

import (
	"context"
	"fmt"
	"slices"

	"github.com/katalvlaran/modelfree/minimise"
	"github.com/katalvlaran/modelfree/pipe"
)

// heldOut is one observation removed from a fold.
type heldOut struct {
	spin *pipe.Spin
	obs  *pipe.Observation
}

// CrossValidate scores spin (or, when nil, every selected spin of p) by
// single-item-out cross-validation. Each relaxation data set is left out in
// turn, a copy of p is refitted with opts and the χ² of the left out points
// is accumulated. The mean over the folds is returned. p is not modified.
//
// Complexity: F refits for F relaxation data sets.
func CrossValidate(ctx context.Context, p *pipe.Pipe, spin *pipe.Spin, opts minimise.Options) (float64, error) {
	opts.SimIndex = -1
	idx := -1
	if spin != nil {
		if idx = slices.Index(p.Spins, spin); idx < 0 {
			return 0, fmt.Errorf("CrossValidate: spin %q: %w", spin.ID, pipe.ErrNoSpin)
		}
	}

	var folds []string
	for _, id := range p.RiIDs() {
		for _, s := range p.Selected() {
			if _, ok := s.Data[id]; ok && (spin == nil || s == spin) {
				folds = append(folds, id)
				break
			}
		}
	}
	if len(folds) < 2 {
		return 0, fmt.Errorf("CrossValidate: %d folds: %w", len(folds), ErrTooFewFolds)
	}

	var sum float64
	for _, id := range folds {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		cp := p.Clone(p.Name + "/cv-" + id)
		if idx >= 0 {
			for i, s := range cp.Spins {
				s.Select = s.Select && i == idx
			}
		}

		var held []heldOut
		for _, s := range cp.Selected() {
			if o, ok := s.Data[id]; ok {
				if o.Error <= 0 {
					return 0, fmt.Errorf("CrossValidate: spin %q: %s: %w", s.ID, id, minimise.ErrInvalidError)
				}
				held = append(held, heldOut{spin: s, obs: o})
				delete(s.Data, id)
			}
		}
		if err := minimise.Minimise(ctx, cp, opts); err != nil {
			return 0, fmt.Errorf("CrossValidate: fold %s: %w", id, err)
		}
		for _, h := range held {
			calc, err := minimise.BackCalc(cp, h.spin, id, -1)
			if err != nil {
				return 0, fmt.Errorf("CrossValidate: fold %s: %w", id, err)
			}
			d := (h.obs.Value - calc) / h.obs.Error
			sum += d * d
		}
	}

	return sum / float64(len(folds)), nil
}
