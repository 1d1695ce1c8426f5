package config

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/modelfree/diffusion"
	"github.com/katalvlaran/modelfree/models"
	"github.com/katalvlaran/modelfree/pipe"
)

// ToPipe validates the analysis and builds its data pipe.
//
// Stage 1: relaxation data sets in file order.
// Stage 2: the diffusion tensor, if any.
// Stage 3: spins with model, values, vector and data. A zero bond vector
// deselects its spin instead of failing.
//
// Complexity: O(S·(D+K)).
func (a *Analysis) ToPipe() (*pipe.Pipe, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	p := pipe.New(a.Pipe)

	// Stage 1
	for _, r := range a.Relaxation {
		typ, _ := pipe.ParseRiType(r.Type)
		if err := p.AddRelaxation(r.ID, typ, r.Frequency); err != nil {
			return nil, fmt.Errorf("ToPipe: %w", err)
		}
	}

	// Stage 2
	if a.Tensor != nil {
		t, err := a.Tensor.build()
		if err != nil {
			return nil, fmt.Errorf("ToPipe: %w", err)
		}
		p.Tensor = t
	}

	// Stage 3
	for i := range a.Spins {
		sc := &a.Spins[i]
		s, err := sc.build()
		if err != nil {
			return nil, fmt.Errorf("ToPipe: %w", err)
		}
		if err = p.AddSpin(s); err != nil {
			return nil, fmt.Errorf("ToPipe: %w", err)
		}
		for _, d := range sc.Data {
			if err = p.SetData(s.ID, d.RI, d.Value, d.Error); err != nil {
				return nil, fmt.Errorf("ToPipe: %w", err)
			}
		}
	}

	return p, nil
}

func (t *Tensor) build() (*pipe.Tensor, error) {
	shape, _ := diffusion.ParseShape(t.Shape)
	sph, _ := diffusion.ParseSpheroidType(t.Spheroid)
	vals, _ := Numbers(t.Params)
	tn, err := pipe.NewTensor(shape, vals...)
	if err != nil {
		return nil, err
	}
	tn.Spheroid = sph
	tn.Fixed = t.Fixed

	return tn, nil
}

func (s *Spin) build() (*pipe.Spin, error) {
	m, err := s.model()
	if err != nil {
		return nil, err
	}
	out := pipe.NewSpin(s.ID)
	out.SetModel(m)
	out.Fixed = s.Fixed
	out.HeteroNucleus = s.heteronucleus()
	out.ProtonNucleus = s.proton()

	for k, v := range s.Values {
		q, _ := models.ParseParam(k)
		f, err := v.Resolve(q)
		if err != nil {
			return nil, err
		}
		out.SetValue(q, f)
	}

	if s.Vector != nil {
		xyz, _ := Numbers(s.Vector)
		err = out.SetVector(r3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]})
		if err != nil && !errors.Is(err, diffusion.ErrZeroVector) {
			return nil, err
		}
	}
	if s.Select != nil && !*s.Select {
		out.Deselect("deselected in configuration")
	}

	return out, nil
}
