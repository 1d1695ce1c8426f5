package minimise

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/modelfree/diffusion"
	"github.com/katalvlaran/modelfree/models"
	"github.com/katalvlaran/modelfree/pipe"
)

// slot identifies one position of the parameter vector: a tensor parameter
// (spin == nil) or a spin parameter.
type slot struct {
	tensor diffusion.Param
	spin   *pipe.Spin
	name   models.ParamName
}

// layout lists the vector slots of a run: tensor parameters first, then the
// active parameters of each spin in declared order.
func layout(p *pipe.Pipe, mt ModelType, spin *pipe.Spin) ([]slot, error) {
	var out []slot
	if mt.HasTensor() {
		if p.Tensor == nil {
			return nil, ErrNoTensor
		}
		for _, q := range p.Tensor.Shape.Params() {
			out = append(out, slot{tensor: q})
		}
	}
	if mt == Diff {
		return out, nil
	}
	for _, s := range Spins(p, mt, spin) {
		for _, name := range s.Params {
			if !slices.Contains(models.AllParams, name) {
				return nil, fmt.Errorf("spin %q: parameter %q: %w", s.ID, name, models.ErrUnknownParameter)
			}
			out = append(out, slot{spin: s, name: name})
		}
	}

	return out, nil
}

// index returns the position of the spin parameter in slots, or -1.
func index(slots []slot, s *pipe.Spin, name models.ParamName) int {
	return slices.IndexFunc(slots, func(sl slot) bool { return sl.spin == s && sl.name == name })
}

// tensorIndex returns the position of the tensor parameter in slots, or -1.
func tensorIndex(slots []slot, q diffusion.Param) int {
	return slices.IndexFunc(slots, func(sl slot) bool { return sl.spin == nil && sl.tensor == q })
}
