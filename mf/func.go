package mf

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/modelfree/diffusion"
	"github.com/katalvlaran/modelfree/models"
)

// Func is the χ² target function of one optimisation instance.
type Func struct {
	setup  Setup
	n      int
	offset []int // per spin: first vector index of its params
	fd     *fd.Settings
}

// New validates s and returns the target function.
//
// Stage 1: structural checks (spins, per-datum lengths, remaps, errors).
// Stage 2: vector layout (tensor block, then each spin's block).
//
// Complexity: O(total data).
func New(s Setup) (*Func, error) {
	if len(s.Spins) == 0 {
		return nil, fmt.Errorf("New: %w", ErrNoSpins)
	}
	if !s.DiffInVector && len(s.Diff) != s.Shape.NumParams() && !allLocalTm(s.Spins) {
		return nil, fmt.Errorf("New: tensor has %d values for %s: %w", len(s.Diff), s.Shape, diffusion.ErrParamCount)
	}
	for i := range s.Spins {
		if err := checkSpin(&s.Spins[i]); err != nil {
			return nil, fmt.Errorf("New: spin %d: %w", i, err)
		}
	}

	f := &Func{
		setup:  s,
		n:      s.NumParams(),
		offset: make([]int, len(s.Spins)),
		fd:     &fd.Settings{Formula: fd.Central},
	}
	if s.Scale != nil && len(s.Scale) != f.n {
		return nil, fmt.Errorf("New: scale has %d entries for %d params: %w", len(s.Scale), f.n, ErrDimension)
	}

	next := 0
	if s.DiffInVector {
		next = s.Shape.NumParams()
	}
	for i, sp := range s.Spins {
		f.offset[i] = next
		if s.SpinsInVector {
			next += len(sp.Params)
		}
	}

	return f, nil
}

func allLocalTm(spins []SpinData) bool {
	for _, sp := range spins {
		if !slices.Contains(sp.Params, models.LocalTm) {
			return false
		}
	}

	return true
}

func checkSpin(d *SpinData) error {
	n := len(d.Types)
	if len(d.Remap) != n || len(d.NoeR1) != n || len(d.Obs) != n || len(d.Err) != n {
		return ErrDataMismatch
	}
	if d.Gh == 0 || d.Gx == 0 {
		return ErrGyro
	}
	for i := 0; i < n; i++ {
		if d.Remap[i] < 0 || d.Remap[i] >= len(d.Frq) {
			return fmt.Errorf("datum %d remaps to %d: %w", i, d.Remap[i], ErrDataMismatch)
		}
		if d.NoeR1[i] >= n {
			return fmt.Errorf("datum %d R1 index %d: %w", i, d.NoeR1[i], ErrDataMismatch)
		}
		if !(d.Err[i] > 0) {
			return fmt.Errorf("datum %d error %g: %w", i, d.Err[i], ErrInvalidError)
		}
	}

	return nil
}

// Dim returns the length of the parameter vector.
func (f *Func) Dim() int { return f.n }

// unscale returns the parameter vector in natural units.
func (f *Func) unscale(x []float64) []float64 {
	if f.setup.Scale == nil {
		return x
	}
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v * f.setup.Scale[i]
	}

	return out
}

// spinPredict back-calculates the data of spin i from the natural vector p.
func (f *Func) spinPredict(i int, p []float64, dst []float64) ([]float64, error) {
	var (
		s   = f.setup
		d   = &s.Spins[i]
		off = f.offset[i]
	)
	has := func(q models.ParamName) bool { return slices.Contains(d.Params, q) }
	val := func(q models.ParamName) float64 {
		if s.SpinsInVector {
			if k := slices.Index(d.Params, q); k >= 0 {
				return p[off+k]
			}
		}

		return d.Values[q]
	}

	shape, diff := s.Shape, s.Diff
	switch {
	case has(models.LocalTm):
		shape, diff = diffusion.Sphere, []float64{val(models.LocalTm)}
	case s.DiffInVector:
		diff = p[:s.Shape.NumParams()]
	}
	ci, ti, err := diffusion.Components(shape, diff, d.Vector)
	if err != nil {
		return nil, err
	}

	in := interaction{r: val(models.R), csa: val(models.CSA)}
	if has(models.Rex) {
		in.rex = val(models.Rex)
	}

	return predict(d, rates(d, buildTerms(d.Equation, has, val), in, ci, ti), dst), nil
}

// Cost returns χ² at the scaled vector x. An infinite χ² is reported as
// OverflowCost; NaN is propagated.
func (f *Func) Cost(x []float64) float64 {
	if len(x) != f.n {
		panic(fmt.Sprintf("mf: Cost: %v", ErrDimension))
	}
	p := f.unscale(x)

	var (
		chi2 float64
		buf  []float64
	)
	for i := range f.setup.Spins {
		var err error
		if buf, err = f.spinPredict(i, p, buf); err != nil {
			return math.NaN()
		}
		d := &f.setup.Spins[i]
		for k, v := range buf {
			r := (d.Obs[k] - v) / d.Err[k]
			chi2 += r * r
		}
	}
	if math.IsInf(chi2, 0) {
		return OverflowCost
	}

	return chi2
}

// Gradient writes ∂χ²/∂x into dst (allocated when nil) and returns it.
func (f *Func) Gradient(dst, x []float64) []float64 {
	if dst == nil {
		dst = make([]float64, len(x))
	}

	return fd.Gradient(dst, f.Cost, x, f.fd)
}

// Hessian writes ∂²χ²/∂x² into dst. An empty dst is resized.
func (f *Func) Hessian(dst *mat.SymDense, x []float64) {
	fd.Hessian(dst, f.Cost, x, f.fd)
}

// BackCalc returns the predicted relaxation values of the first spin, in its
// data order.
func (f *Func) BackCalc(x []float64) ([]float64, error) {
	if len(x) != f.n {
		return nil, fmt.Errorf("BackCalc: %w", ErrDimension)
	}

	return f.spinPredict(0, f.unscale(x), nil)
}

// Predict returns the predicted relaxation values of every spin.
func (f *Func) Predict(x []float64) ([][]float64, error) {
	if len(x) != f.n {
		return nil, fmt.Errorf("Predict: %w", ErrDimension)
	}
	p := f.unscale(x)
	out := make([][]float64, len(f.setup.Spins))
	for i := range out {
		v, err := f.spinPredict(i, p, nil)
		if err != nil {
			return nil, fmt.Errorf("Predict: spin %d: %w", i, err)
		}
		out[i] = v
	}

	return out, nil
}
