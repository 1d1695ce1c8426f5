package pipe

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/modelfree/diffusion"
)

// Tensor is the global diffusion tensor of a pipe.
type Tensor struct {
	Shape    diffusion.Shape
	Spheroid diffusion.SpheroidType
	Fixed    bool

	params map[diffusion.Param]*Param
}

// NewTensor builds a tensor of the given shape from values ordered as
// shape.Params().
func NewTensor(shape diffusion.Shape, values ...float64) (*Tensor, error) {
	names := shape.Params()
	if len(values) != len(names) {
		return nil, fmt.Errorf("NewTensor(%s): %d values: %w", shape, len(values), diffusion.ErrParamCount)
	}
	t := &Tensor{Shape: shape, params: make(map[diffusion.Param]*Param, len(names))}
	for i, n := range names {
		t.params[n] = &Param{Value: values[i]}
	}

	return t, nil
}

// Param returns the record for p, creating a zero one for a valid name.
func (t *Tensor) Param(p diffusion.Param) *Param {
	if t.params == nil {
		t.params = make(map[diffusion.Param]*Param)
	}
	rec, ok := t.params[p]
	if !ok {
		rec = &Param{}
		t.params[p] = rec
	}

	return rec
}

// Value returns the point estimate of p.
func (t *Tensor) Value(p diffusion.Param) float64 { return t.Param(p).Value }

// Values returns the parameters in vector order at sim (point estimates when
// sim < 0).
func (t *Tensor) Values(sim int) []float64 {
	names := t.Shape.Params()
	out := make([]float64, len(names))
	for i, n := range names {
		out[i] = t.Param(n).Get(sim)
	}

	return out
}

// Put stores values (ordered as Shape.Params) at sim and folds the angles.
func (t *Tensor) Put(sim int, values []float64) error {
	names := t.Shape.Params()
	if len(values) != len(names) {
		return fmt.Errorf("Tensor.Put: %d values: %w", len(values), diffusion.ErrParamCount)
	}
	for i, n := range names {
		t.Param(n).Put(sim, values[i])
	}
	t.FoldAngles(sim)

	return nil
}

// FoldAngles wraps the orientation angles into their canonical ranges. For
// simulations the angles are folded around the point estimates.
func (t *Tensor) FoldAngles(sim int) {
	switch t.Shape {
	case diffusion.Spheroid:
		th, ph := t.Param(diffusion.Theta), t.Param(diffusion.Phi)
		if sim < 0 {
			th.Value, ph.Value = diffusion.FoldSpheroid(th.Value, ph.Value)
			return
		}
		a, b := diffusion.FoldSpheroidSim(th.Value, ph.Value, th.Get(sim), ph.Get(sim))
		th.Put(sim, a)
		ph.Put(sim, b)

	case diffusion.Ellipsoid:
		al, be, ga := t.Param(diffusion.Alpha), t.Param(diffusion.Beta), t.Param(diffusion.Gamma)
		if sim < 0 {
			al.Value, be.Value, ga.Value = diffusion.FoldEllipsoid(al.Value, be.Value, ga.Value)
			return
		}
		a, b, g := diffusion.FoldEllipsoidSim(al.Value, be.Value, ga.Value, al.Get(sim), be.Get(sim), ga.Get(sim))
		al.Put(sim, a)
		be.Put(sim, b)
		ga.Put(sim, g)
	}
}

// Equal reports whether o has the same shape and point estimates.
func (t *Tensor) Equal(o *Tensor) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.Shape != o.Shape || t.Spheroid != o.Spheroid {
		return false
	}

	return slices.Equal(t.Values(-1), o.Values(-1))
}

// Clone returns a deep copy.
func (t *Tensor) Clone() *Tensor {
	if t == nil {
		return nil
	}
	cp := *t
	cp.params = make(map[diffusion.Param]*Param, len(t.params))
	for k, rec := range t.params {
		cp.params[k] = rec.clone()
	}

	return &cp
}
