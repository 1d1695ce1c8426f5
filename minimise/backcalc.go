package minimise

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/modelfree/diffusion"
	"github.com/katalvlaran/modelfree/matrix"
	"github.com/katalvlaran/modelfree/matrix/ops"
	"github.com/katalvlaran/modelfree/mf"
	"github.com/katalvlaran/modelfree/models"
	"github.com/katalvlaran/modelfree/pipe"
)

// BackCalc predicts the relaxation value of riID for spin from its current
// values at sim and the tensor. The spin need not hold data for riID.
func BackCalc(p *pipe.Pipe, spin *pipe.Spin, riID string, sim int) (float64, error) {
	if spin == nil {
		return 0, fmt.Errorf("BackCalc: %w", ErrSpinRequired)
	}
	info, err := p.Relaxation(riID)
	if err != nil {
		return 0, fmt.Errorf("BackCalc: %w", err)
	}
	for _, q := range []models.ParamName{models.R, models.CSA} {
		if !spin.Set(q) {
			return 0, fmt.Errorf("BackCalc: %w", &MissingValueError{Spin: spin.ID, Param: q})
		}
	}

	d, err := spinBase(spin, sim)
	if err != nil {
		return 0, fmt.Errorf("BackCalc: spin %q: %w", spin.ID, err)
	}
	d.Frq = []float64{info.Frq}
	d.Types = []pipe.RiType{info.Type}
	d.Remap = []int{0}
	d.NoeR1 = []int{-1}
	d.Obs = []float64{0}
	d.Err = []float64{1}

	s := mf.Setup{Shape: diffusion.Sphere, Spins: []mf.SpinData{d}}
	if !spin.Active(models.LocalTm) {
		if p.Tensor == nil {
			return 0, fmt.Errorf("BackCalc: %w", ErrNoTensor)
		}
		if p.Tensor.Shape != diffusion.Sphere && spin.Vector == nil {
			return 0, fmt.Errorf("BackCalc: spin %q: %w", spin.ID, ErrNoVector)
		}
		s.Shape, s.Diff = p.Tensor.Shape, p.Tensor.Values(sim)
	}
	f, err := mf.New(s)
	if err != nil {
		return 0, fmt.Errorf("BackCalc: %w", err)
	}
	ri, err := f.BackCalc(nil)
	if err != nil {
		return 0, fmt.Errorf("BackCalc: %w", err)
	}

	return ri[0], nil
}

// Covariance estimates the parameter covariance matrix 2·H⁻¹ at the current
// point estimates from the numeric χ² Hessian, in natural units, and stores
// the square roots of its diagonal as parameter errors. Per-spin model types
// require spin; global types ignore it.
//
// Complexity: O(n³) for n parameters plus O(n²) χ² evaluations.
func Covariance(p *pipe.Pipe, spin *pipe.Spin) (*matrix.Dense, error) {
	mt, err := DetermineModelType(p)
	if err != nil {
		return nil, fmt.Errorf("Covariance: %w", err)
	}
	if err = Precheck(p, mt); err != nil {
		return nil, fmt.Errorf("Covariance: %w", err)
	}
	if !mt.PerSpin() {
		spin = nil
	} else if spin == nil {
		return nil, fmt.Errorf("Covariance: %w", ErrSpinRequired)
	}

	// Stage 1: scaled vector and physics function.
	slots, err := layout(p, mt, spin)
	if err != nil {
		return nil, fmt.Errorf("Covariance: %w", err)
	}
	if len(slots) == 0 {
		return nil, fmt.Errorf("Covariance: %w", ErrDimension)
	}
	x0, err := Assemble(p, mt, spin, -1)
	if err != nil {
		return nil, fmt.Errorf("Covariance: %w", err)
	}
	scale := scales(p, slots, true)
	xs, err := matrix.DiagSolve(scale, x0)
	if err != nil {
		return nil, fmt.Errorf("Covariance: %w", err)
	}
	var diff []float64
	if p.Tensor != nil {
		diff = p.Tensor.Values(-1)
	}
	setup, err := buildSetup(p, mt, Spins(p, mt, spin), diff, scale, -1)
	if err != nil {
		return nil, fmt.Errorf("Covariance: %w", err)
	}
	f, err := mf.New(setup)
	if err != nil {
		return nil, fmt.Errorf("Covariance: %w", err)
	}

	// Stage 2: Hessian and inverse.
	var h mat.SymDense
	f.Hessian(&h, xs)
	n := len(xs)
	inv, err := invertHessian(&h)
	if err != nil {
		return nil, fmt.Errorf("Covariance: %w", err)
	}

	// Stage 3: unscale and store errors.
	cov, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, fmt.Errorf("Covariance: %w", err)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			_ = cov.Set(i, j, 2*inv.At(i, j)*scale[i]*scale[j])
		}
	}
	for i, sl := range slots {
		v, _ := cov.At(i, i)
		if sl.spin == nil {
			p.Tensor.Param(sl.tensor).Err = math.Sqrt(v)
			continue
		}
		sl.spin.Ensure(sl.name).Err = math.Sqrt(v)
	}

	return cov, nil
}

// invertHessian inverts h through its Cholesky factor, falling back to the
// pivoted LU inverse of matrix/ops when h is not positive definite.
func invertHessian(h *mat.SymDense) (mat.Matrix, error) {
	var chol mat.Cholesky
	if chol.Factorize(h) {
		var inv mat.SymDense
		if err := chol.InverseTo(&inv); err == nil {
			return &inv, nil
		}
	}

	n := h.SymmetricDim()
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
		for j := range rows[i] {
			rows[i][j] = h.At(i, j)
		}
	}
	hm, err := matrix.NewFromRows(rows)
	if err != nil {
		return nil, err
	}
	inv, err := ops.Inverse(hm)
	if err != nil {
		return nil, err
	}
	out := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v, _ := inv.At(i, j)
			out.Set(i, j, v)
		}
	}

	return out, nil
}
