package ops

import (
	"fmt"

	"github.com/katalvlaran/modelfree/matrix"
)

// Inverse returns the inverse of the square matrix m.
// Blueprint:
//
//	Stage 1 (Validate): ensure m is square.
//	Stage 2 (Decompose): P·A = L·U via Doolittle with partial pivoting.
//	Stage 3 (Execute): for each identity column eᵢ, solve L·y = P·eᵢ then U·x = y.
//	Stage 4 (Finalize): assemble columns into the inverse.
//
// Complexity: O(n³) time, O(n²) memory.
func Inverse(m matrix.Matrix) (*matrix.Dense, error) {
	// Stage 1: Validate input shape
	if m == nil {
		return nil, fmt.Errorf("Inverse: %w", matrix.ErrNilMatrix)
	}
	n := m.Rows()
	if n != m.Cols() {
		return nil, fmt.Errorf("Inverse: non-square %dx%d: %w", n, m.Cols(), matrix.ErrNonSquare)
	}

	// Stage 2: LU decomposition
	L, U, perm, err := LU(m)
	if err != nil {
		return nil, fmt.Errorf("Inverse: %w", err)
	}

	inv, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, fmt.Errorf("Inverse: %w", err)
	}
	y := make([]float64, n) // forward substitution scratch
	x := make([]float64, n) // backward substitution scratch

	// Stage 3: Compute each column of the inverse
	var (
		col, i, k  int
		sum, pivot float64
		aVal       float64
	)
	for col = 0; col < n; col++ {
		// Forward substitution: L·y = P·e_col
		for i = 0; i < n; i++ {
			sum = 0
			for k = 0; k < i; k++ {
				aVal, _ = L.At(i, k)
				sum += aVal * y[k]
			}
			if perm[i] == col {
				y[i] = 1.0 - sum
			} else {
				y[i] = -sum
			}
		}

		// Backward substitution: U·x = y
		for i = n - 1; i >= 0; i-- {
			sum = 0
			for k = i + 1; k < n; k++ {
				aVal, _ = U.At(i, k)
				sum += aVal * x[k]
			}
			pivot, _ = U.At(i, i)
			x[i] = (y[i] - sum) / pivot // pivots checked non-zero by LU
		}

		for i = 0; i < n; i++ {
			_ = inv.Set(i, col, x[i])
		}
	}

	// Stage 4: Return computed inverse
	return inv, nil
}
