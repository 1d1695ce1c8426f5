package matrix

import "fmt"

// MatVec returns y = m·x.
// Stage 1 (Validate): m non-nil and len(x) == m.Cols().
// Stage 2 (Execute): row-wise dot products; *Dense uses the flat fast path.
// Complexity: O(r*c).
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if m == nil {
		return nil, fmt.Errorf("MatVec: %w", ErrNilMatrix)
	}
	if len(x) != m.Cols() {
		return nil, fmt.Errorf("MatVec: len(x)=%d, cols=%d: %w", len(x), m.Cols(), ErrDimensionMismatch)
	}
	y := make([]float64, m.Rows())

	// Fast path: flat row-major dot products.
	if d, ok := m.(*Dense); ok {
		var (
			i, j, base int
			acc, xv    float64
		)
		for i = 0; i < d.r; i++ {
			acc = 0
			base = i * d.c
			for j = 0; j < d.c; j++ {
				xv = x[j]
				if xv != 0 { // skip zero multiplications
					acc += d.data[base+j] * xv
				}
			}
			y[i] = acc
		}

		return y, nil
	}

	var (
		i, j int
		v    float64
		err  error
	)
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, fmt.Errorf("MatVec: %w", err)
			}
			y[i] += v * x[j]
		}
	}

	return y, nil
}

// DiagMul returns diag(d)·x element-wise (the scaling operation S·x for a
// diagonal S given by its diagonal d).
func DiagMul(d, x []float64) ([]float64, error) {
	if len(d) != len(x) {
		return nil, fmt.Errorf("DiagMul: %d vs %d: %w", len(d), len(x), ErrDimensionMismatch)
	}
	out := make([]float64, len(x))
	for i := range x {
		out[i] = d[i] * x[i]
	}

	return out, nil
}

// DiagSolve returns diag(d)⁻¹·x. A zero diagonal entry yields ErrSingular.
func DiagSolve(d, x []float64) ([]float64, error) {
	if len(d) != len(x) {
		return nil, fmt.Errorf("DiagSolve: %d vs %d: %w", len(d), len(x), ErrDimensionMismatch)
	}
	out := make([]float64, len(x))
	for i := range x {
		if d[i] == 0 {
			return nil, fmt.Errorf("DiagSolve: zero diagonal at %d: %w", i, ErrSingular)
		}
		out[i] = x[i] / d[i]
	}

	return out, nil
}
