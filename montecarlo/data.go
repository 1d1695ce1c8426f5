package montecarlo

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/modelfree/minimise"
	"github.com/katalvlaran/modelfree/models"
	"github.com/katalvlaran/modelfree/pipe"
)

// DataMethod chooses the centre of the simulated data.
type DataMethod int

const (
	// BackCalc centres the simulations on the values predicted by the fit.
	BackCalc DataMethod = iota
	// Direct centres the simulations on the measured values.
	Direct
)

// String implements fmt.Stringer.
func (m DataMethod) String() string {
	switch m {
	case BackCalc:
		return "back_calc"
	case Direct:
		return "direct"
	}

	return fmt.Sprintf("DataMethod(%d)", int(m))
}

// ParseDataMethod accepts "back_calc" or "direct".
func ParseDataMethod(s string) (DataMethod, error) {
	switch s {
	case "back_calc":
		return BackCalc, nil
	case "direct":
		return Direct, nil
	}

	return 0, fmt.Errorf("ParseDataMethod(%q): %w", s, ErrUnknownMethod)
}

// Setup allocates n simulations on p and selects all of them.
func Setup(p *pipe.Pipe, n int) error {
	if n <= 0 {
		return fmt.Errorf("Setup(%d): %w", n, ErrBadCount)
	}
	p.SimNumber = n
	p.SimState = true
	p.SimSelect = trues(n)
	p.SimStats = make([]pipe.Stats, n)
	for _, s := range p.Spins {
		s.SimSelect = trues(n)
		s.SimStats = make([]pipe.Stats, n)
	}

	return nil
}

// CreateData fills the simulated data of every selected spin. Each value is
// drawn from N(centre, error²) using src.
//
// Complexity: O(S·d·n).
func CreateData(p *pipe.Pipe, method DataMethod, src rand.Source) error {
	if p.SimNumber == 0 {
		return fmt.Errorf("CreateData: %w", pipe.ErrNoSims)
	}
	if method != BackCalc && method != Direct {
		return fmt.Errorf("CreateData: %s: %w", method, ErrUnknownMethod)
	}

	for _, s := range p.Selected() {
		for _, r := range p.SpinRi(s) {
			o := s.Data[r.ID]
			if !(o.Error > 0) {
				return fmt.Errorf("CreateData: spin %q, %s: error %g: %w", s.ID, r.ID, o.Error, minimise.ErrInvalidError)
			}
			centre := o.Value
			if method == BackCalc {
				v, err := minimise.BackCalc(p, s, r.ID, -1)
				if err != nil {
					return fmt.Errorf("CreateData: %w", err)
				}
				centre = v
			}
			dist := distuv.Normal{Mu: centre, Sigma: o.Error, Src: src}
			o.Sim = make([]float64, p.SimNumber)
			for i := range o.Sim {
				o.Sim[i] = dist.Rand()
			}
		}
	}

	return nil
}

// InitialValues copies the point estimates into every simulation slot. All
// parameters a simulation can write are allocated here.
func InitialValues(p *pipe.Pipe) error {
	n := p.SimNumber
	if n == 0 {
		return fmt.Errorf("InitialValues: %w", pipe.ErrNoSims)
	}
	if p.Tensor != nil {
		for _, q := range p.Tensor.Shape.Params() {
			fill(p.Tensor.Param(q), n)
		}
	}
	for _, s := range p.Spins {
		names := slices.Concat(s.Params, s.SetParams())
		if s.Active(models.S2f) || s.Active(models.S2s) {
			names = append(names, models.S2, models.S2f, models.S2s)
		}
		for _, q := range names {
			fill(s.Ensure(q), n)
		}
	}

	return nil
}

// fill sets every replicate of rec to its point estimate.
func fill(rec *pipe.Param, n int) {
	rec.Sim = make([]float64, n)
	for i := range rec.Sim {
		rec.Sim[i] = rec.Value
	}
}

func trues(n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = true
	}

	return out
}
