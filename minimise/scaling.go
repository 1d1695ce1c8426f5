package minimise

import (
	"fmt"
	"math"

	"github.com/katalvlaran/modelfree/diffusion"
	"github.com/katalvlaran/modelfree/matrix"
	"github.com/katalvlaran/modelfree/models"
	"github.com/katalvlaran/modelfree/physics"
	"github.com/katalvlaran/modelfree/pipe"
)

// Scaling factors of the natural parameter units.
const (
	TimeScale = 1e-12
	DaScale   = 1e7
	RScale    = 1e-10
	CSAScale  = 1e-4
)

// Bounds of the linear constraints.
const (
	MaxTm    = 200e-9
	MinR     = 0.9e-10
	MaxR     = 2e-10
	MinCSA   = -300e-6
	TimeMult = 2.0 // internal correlation times are bounded by TimeMult·tm
)

// rexScale returns 1/(2π·frq₀)² for the first relaxation frequency of the
// spin, falling back to the pipe's first frequency, or 1 without data.
func rexScale(p *pipe.Pipe, s *pipe.Spin) float64 {
	ri := p.SpinRi(s)
	if ids := p.RiIDs(); len(ri) == 0 && len(ids) > 0 {
		info, _ := p.Relaxation(ids[0])
		ri = append(ri, info)
	}
	if len(ri) == 0 {
		return 1
	}
	w := physics.Angular(ri[0].Frq)

	return 1 / (w * w)
}

// scaleOf returns the scaling factor of one slot.
func scaleOf(p *pipe.Pipe, sl slot) float64 {
	if sl.spin == nil {
		switch sl.tensor {
		case diffusion.Tm:
			return TimeScale
		case diffusion.Da:
			return DaScale
		}
		return 1
	}
	switch sl.name {
	case models.LocalTm, models.Te, models.Tf, models.Ts:
		return TimeScale
	case models.Rex:
		return rexScale(p, sl.spin)
	case models.R:
		return RScale
	case models.CSA:
		return CSAScale
	}

	return 1
}

// ScaleFactors returns the diagonal of the scaling matrix, all ones when
// enabled is false.
func ScaleFactors(p *pipe.Pipe, mt ModelType, spin *pipe.Spin, enabled bool) ([]float64, error) {
	slots, err := layout(p, mt, spin)
	if err != nil {
		return nil, fmt.Errorf("ScaleFactors: %w", err)
	}

	return scales(p, slots, enabled), nil
}

func scales(p *pipe.Pipe, slots []slot, enabled bool) []float64 {
	d := make([]float64, len(slots))
	for i, sl := range slots {
		d[i] = 1
		if enabled {
			d[i] = scaleOf(p, sl)
		}
	}

	return d
}

// ScalingMatrix returns the diagonal scaling matrix of a run; the identity
// when enabled is false. A run without parameters yields ErrDimension.
func ScalingMatrix(p *pipe.Pipe, mt ModelType, spin *pipe.Spin, enabled bool) (*matrix.Dense, error) {
	d, err := ScaleFactors(p, mt, spin, enabled)
	if err != nil {
		return nil, fmt.Errorf("ScalingMatrix: %w", err)
	}
	m, err := matrix.NewDiagonal(d)
	if err != nil {
		return nil, fmt.Errorf("ScalingMatrix: %w", ErrDimension)
	}

	return m, nil
}

// ConstraintOptions configures LinearConstraints.
type ConstraintOptions struct {
	// TimeUpperBound adds te, ts ≤ TimeMult·tm.
	TimeUpperBound bool
	// Sim is the Monte Carlo replicate whose fixed tensor tm bounds te and
	// ts in MF runs. The point estimate is used when Sim < 0 or the tensor
	// holds no replicate at Sim.
	Sim int
}

// builder accumulates constraint rows in natural units.
type builder struct {
	n    int
	rows [][]float64
	b    []float64
}

// add appends Σ coef[k]·x[idx[k]] ≥ rhs.
func (bl *builder) add(rhs float64, terms ...term) {
	row := make([]float64, bl.n)
	for _, t := range terms {
		row[t.i] += t.c
	}
	bl.rows = append(bl.rows, row)
	bl.b = append(bl.b, rhs)
}

type term struct {
	i int
	c float64
}

// between appends lo ≤ x[i] ≤ hi.
func (bl *builder) between(i int, lo, hi float64) {
	bl.add(lo, term{i, 1})
	bl.add(-hi, term{i, -1})
}

// LinearConstraints returns A and b of A·x ≥ b for the scaled vector of a
// run. Single-parameter rows have unit coefficients and b divided by the
// parameter's scale; rows over several parameters share one scale. A run
// without parameters returns nil A and b.
//
// Complexity: O(n·m) for n parameters and m rows.
func LinearConstraints(p *pipe.Pipe, mt ModelType, spin *pipe.Spin, scale []float64, opts ConstraintOptions) (*matrix.Dense, []float64, error) {
	slots, err := layout(p, mt, spin)
	if err != nil {
		return nil, nil, fmt.Errorf("LinearConstraints: %w", err)
	}
	if len(slots) == 0 {
		return nil, nil, nil
	}
	if scale == nil {
		scale = scales(p, slots, false)
	}
	if len(scale) != len(slots) {
		return nil, nil, fmt.Errorf("LinearConstraints: %d scale entries for %d params: %w", len(scale), len(slots), ErrDimension)
	}

	bl := &builder{n: len(slots)}

	// Stage 1: tensor rows.
	if mt.HasTensor() {
		t := p.Tensor
		bl.between(tensorIndex(slots, diffusion.Tm), 0, MaxTm)
		switch t.Shape {
		case diffusion.Spheroid:
			da := tensorIndex(slots, diffusion.Da)
			switch t.Spheroid {
			case diffusion.Prolate:
				bl.add(0, term{da, 1})
			case diffusion.Oblate:
				bl.add(0, term{da, -1})
			}
		case diffusion.Ellipsoid:
			bl.add(0, term{tensorIndex(slots, diffusion.Da), 1})
			bl.between(tensorIndex(slots, diffusion.Dr), 0, 1)
		}
	}

	// Stage 2: spin rows.
	if mt != Diff {
		for _, s := range Spins(p, mt, spin) {
			spinRows(bl, p, mt, slots, s, opts)
		}
	}

	if len(bl.rows) == 0 {
		return nil, nil, nil
	}

	// Stage 3: scale each row by its leading parameter.
	rows := make([][]float64, len(bl.rows))
	b := make([]float64, len(bl.b))
	for r, row := range bl.rows {
		lead := -1
		for j, c := range row {
			if c != 0 {
				lead = j
				break
			}
		}
		rows[r] = make([]float64, len(row))
		for j, c := range row {
			rows[r][j] = c * scale[j] / scale[lead]
		}
		b[r] = bl.b[r] / scale[lead]
	}
	a, err := matrix.NewFromRows(rows)
	if err != nil {
		return nil, nil, fmt.Errorf("LinearConstraints: %w", err)
	}

	return a, b, nil
}

func spinRows(bl *builder, p *pipe.Pipe, mt ModelType, slots []slot, s *pipe.Spin, opts ConstraintOptions) {
	idx := func(q models.ParamName) int { return index(slots, s, q) }
	var (
		s2, s2f, s2s = idx(models.S2), idx(models.S2f), idx(models.S2s)
		tf, ts       = idx(models.Tf), idx(models.Ts)
	)

	for _, q := range s.Params {
		i := idx(q)
		switch q {
		case models.LocalTm:
			bl.between(i, 0, MaxTm)
		case models.S2, models.S2f, models.S2s:
			bl.between(i, 0, 1)
		case models.Te, models.Tf, models.Ts, models.Rex:
			bl.add(0, term{i, 1})
		case models.R:
			bl.between(i, MinR, MaxR)
		case models.CSA:
			bl.between(i, MinCSA, 0)
		}
	}
	if s2 >= 0 && s2f >= 0 {
		bl.add(0, term{s2f, 1}, term{s2, -1})
	}
	if s2 >= 0 && s2s >= 0 {
		bl.add(0, term{s2s, 1}, term{s2, -1})
	}
	if tf >= 0 && ts >= 0 {
		bl.add(0, term{ts, 1}, term{tf, -1})
	}

	if !opts.TimeUpperBound {
		return
	}
	for _, q := range []models.ParamName{models.Te, models.Ts} {
		i := idx(q)
		if i < 0 {
			continue
		}
		switch mt {
		case MF:
			bl.add(-TimeMult*p.Tensor.Param(diffusion.Tm).Get(opts.Sim), term{i, -1})
		case LocalTm:
			bl.add(0, term{i, -1}, term{idx(models.LocalTm), TimeMult})
		case All:
			bl.add(0, term{i, -1}, term{tensorIndex(slots, diffusion.Tm), TimeMult})
		}
	}
}

// GridBounds returns the default grid search bounds of a run, divided by
// scale (nil means unscaled).
func GridBounds(p *pipe.Pipe, mt ModelType, spin *pipe.Spin, scale []float64) (lower, upper []float64, err error) {
	slots, err := layout(p, mt, spin)
	if err != nil {
		return nil, nil, fmt.Errorf("GridBounds: %w", err)
	}
	if scale == nil {
		scale = scales(p, slots, false)
	}
	if len(scale) != len(slots) {
		return nil, nil, fmt.Errorf("GridBounds: %w", ErrDimension)
	}

	lower = make([]float64, len(slots))
	upper = make([]float64, len(slots))
	for i, sl := range slots {
		lo, hi := bounds(p, sl)
		lower[i], upper[i] = lo/scale[i], hi/scale[i]
	}

	return lower, upper, nil
}

func bounds(p *pipe.Pipe, sl slot) (float64, float64) {
	if sl.spin == nil {
		t := p.Tensor
		switch sl.tensor {
		case diffusion.Tm:
			return 1e-9, 12e-9
		case diffusion.Da:
			if t.Shape == diffusion.Ellipsoid {
				return 0, 1e7
			}
			switch t.Spheroid {
			case diffusion.Prolate:
				return 0, 1e7
			case diffusion.Oblate:
				return -1e7, 0
			}
			return -1e7, 1e7
		case diffusion.Dr:
			return 0, 1
		}
		return 0, math.Pi
	}

	switch sl.name {
	case models.LocalTm:
		return 1e-9, 12e-9
	case models.Te, models.Tf, models.Ts:
		return 0, 500e-12
	case models.Rex:
		return 0, 5 * rexScale(p, sl.spin)
	case models.R:
		return 1.0e-10, 1.05e-10
	case models.CSA:
		return -120e-6, -200e-6
	}

	return 0, 1
}
