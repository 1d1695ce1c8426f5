package minimise

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/modelfree/models"
	"github.com/katalvlaran/modelfree/pipe"
)

// hugeRatio replaces an order parameter ratio with a zero denominator.
const hugeRatio = 1e99

// Assemble builds the parameter vector of a run of type mt from the values at
// sim (point estimates when sim < 0). Unset parameters assemble as 0.
//
// Complexity: O(n) in the vector length.
func Assemble(p *pipe.Pipe, mt ModelType, spin *pipe.Spin, sim int) ([]float64, error) {
	slots, err := layout(p, mt, spin)
	if err != nil {
		return nil, fmt.Errorf("Assemble: %w", err)
	}
	x := make([]float64, len(slots))
	for i, sl := range slots {
		if sl.spin == nil {
			x[i] = p.Tensor.Param(sl.tensor).Get(sim)
			continue
		}
		x[i], _ = sl.spin.Get(sl.name, sim)
	}

	return x, nil
}

// Disassemble writes x back into the pipe at sim: the inverse of Assemble.
// Tensor angles are folded into their canonical ranges and the dependent
// order parameter of every spin with S2f or S2s is recomputed.
func Disassemble(p *pipe.Pipe, mt ModelType, spin *pipe.Spin, x []float64, sim int) error {
	slots, err := layout(p, mt, spin)
	if err != nil {
		return fmt.Errorf("Disassemble: %w", err)
	}
	if len(x) != len(slots) {
		return fmt.Errorf("Disassemble: %d values for %d slots: %w", len(x), len(slots), ErrDimension)
	}

	var (
		tensor bool
		spins  []*pipe.Spin
	)
	for i, sl := range slots {
		if sl.spin == nil {
			p.Tensor.Param(sl.tensor).Put(sim, x[i])
			tensor = true
			continue
		}
		sl.spin.Put(sl.name, sim, x[i])
		if !slices.Contains(spins, sl.spin) {
			spins = append(spins, sl.spin)
		}
	}
	if tensor {
		p.Tensor.FoldAngles(sim)
	}
	for _, s := range spins {
		DeriveOrderParams(s, sim)
	}

	return nil
}

// DeriveOrderParams recomputes the order parameter not in the spin's model
// from the other two (S2 = S2f·S2s). Spins without S2f or S2s are left
// untouched. Zero denominators give hugeRatio.
func DeriveOrderParams(s *pipe.Spin, sim int) {
	hasF, hasS := s.Active(models.S2f), s.Active(models.S2s)
	if !hasF && !hasS {
		return
	}
	get := func(q models.ParamName) float64 {
		v, _ := s.Get(q, sim)
		return v
	}

	if !s.Active(models.S2) {
		s2 := get(models.S2f)
		if hasS {
			s2 *= get(models.S2s)
		}
		s.Put(models.S2, sim, s2)
	}
	if !hasF {
		s.Put(models.S2f, sim, ratio(get(models.S2), get(models.S2s)))
	}
	if !hasS {
		s.Put(models.S2s, sim, ratio(get(models.S2), get(models.S2f)))
	}
}

func ratio(a, b float64) float64 {
	if b == 0 {
		return hugeRatio
	}

	return a / b
}
