package minimise

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/modelfree/diffusion"
	"github.com/katalvlaran/modelfree/mf"
	"github.com/katalvlaran/modelfree/models"
	"github.com/katalvlaran/modelfree/physics"
	"github.com/katalvlaran/modelfree/pipe"
)

// spinBase collects the spin-level physics inputs of s at sim: nuclei,
// equation, parameters, values and bond vector.
func spinBase(s *pipe.Spin, sim int) (mf.SpinData, error) {
	gh, err := physics.Gyro(s.ProtonNucleus)
	if err != nil {
		return mf.SpinData{}, err
	}
	gx, err := physics.Gyro(s.HeteroNucleus)
	if err != nil {
		return mf.SpinData{}, err
	}
	d := mf.SpinData{
		Equation: s.Equation,
		Params:   slices.Clone(s.Params),
		Values:   make(map[models.ParamName]float64),
		Gh:       gh,
		Gx:       gx,
	}
	if s.Vector != nil {
		d.Vector = *s.Vector
	}
	for _, q := range s.SetParams() {
		d.Values[q], _ = s.Get(q, sim)
	}

	return d, nil
}

// spinData collects the physics inputs of one spin at sim, including its
// relaxation data in registration order.
//
// Complexity: O(d²) for d relaxation data (NOE→R1 pairing).
func spinData(p *pipe.Pipe, s *pipe.Spin, sim int) (mf.SpinData, error) {
	d, err := spinBase(s, sim)
	if err != nil {
		return mf.SpinData{}, err
	}

	ri := p.SpinRi(s)
	d.Frq = pipe.Frequencies(ri)
	d.Types = make([]pipe.RiType, len(ri))
	d.Remap = make([]int, len(ri))
	d.NoeR1 = make([]int, len(ri))
	d.Obs = make([]float64, len(ri))
	d.Err = make([]float64, len(ri))
	for i, r := range ri {
		o := s.Data[r.ID]
		if !(o.Error > 0) {
			return mf.SpinData{}, fmt.Errorf("spin %q, %s: error %g: %w", s.ID, r.ID, o.Error, ErrInvalidError)
		}
		d.Types[i] = r.Type
		d.Remap[i] = slices.Index(d.Frq, r.Frq)
		d.Obs[i] = o.Get(sim)
		d.Err[i] = o.Error
		d.NoeR1[i] = -1
		if r.Type == pipe.NOE {
			d.NoeR1[i] = slices.IndexFunc(ri, func(x pipe.RiInfo) bool { return x.Type == pipe.R1 && x.Frq == r.Frq })
		}
	}

	return d, nil
}

// buildSetup assembles the physics function inputs of an instance. diff holds
// the tensor values at sim (nil without a tensor).
func buildSetup(p *pipe.Pipe, mt ModelType, spins []*pipe.Spin, diff, scale []float64, sim int) (mf.Setup, error) {
	s := mf.Setup{
		Shape:         diffusion.Sphere,
		Diff:          diff,
		DiffInVector:  mt.HasTensor(),
		SpinsInVector: mt != Diff,
		Spins:         make([]mf.SpinData, len(spins)),
		Scale:         scale,
	}
	if p.Tensor != nil && mt != LocalTm {
		s.Shape = p.Tensor.Shape
	}
	if s.DiffInVector {
		s.Diff = nil
	}
	for i, sp := range spins {
		d, err := spinData(p, sp, sim)
		if err != nil {
			return mf.Setup{}, err
		}
		s.Spins[i] = d
	}

	return s, nil
}
