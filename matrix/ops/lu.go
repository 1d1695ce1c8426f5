package ops

import (
	"fmt"
	"math"

	"github.com/katalvlaran/modelfree/matrix"
)

// LU performs Doolittle LU decomposition with partial pivoting on a square
// matrix m, so that P·m = L·U. It returns L (unit lower triangular),
// U (upper triangular) and perm, where row i of P·m is row perm[i] of m.
// A column with no non-zero pivot yields matrix.ErrSingular.
// Complexity: O(n³) time, O(n²) memory.
func LU(m matrix.Matrix) (*matrix.Dense, *matrix.Dense, []int, error) {
	// Stage 1: Validate input is square
	if m == nil {
		return nil, nil, nil, fmt.Errorf("LU: %w", matrix.ErrNilMatrix)
	}
	rows, cols := m.Rows(), m.Cols()
	if rows != cols {
		return nil, nil, nil, fmt.Errorf("LU: non-square matrix %dx%d: %w", rows, cols, matrix.ErrNonSquare)
	}
	n := rows

	// Stage 2: Working copy and identity permutation
	a := make([][]float64, n)
	perm := make([]int, n)
	for i := range a {
		a[i] = make([]float64, n)
		for j := range a[i] {
			a[i][j], _ = m.At(i, j)
		}
		perm[i] = i
	}

	// Stage 3: Eliminate column by column, pivoting on the largest magnitude
	var (
		i, j, k int
		best    float64
		factor  float64
	)
	for k = 0; k < n; k++ {
		pivot := k
		best = math.Abs(a[k][k])
		for i = k + 1; i < n; i++ {
			if v := math.Abs(a[i][k]); v > best {
				pivot, best = i, v
			}
		}
		if best == 0 {
			return nil, nil, nil, fmt.Errorf("LU: zero pivot at %d: %w", k, matrix.ErrSingular)
		}
		if pivot != k {
			a[k], a[pivot] = a[pivot], a[k]
			perm[k], perm[pivot] = perm[pivot], perm[k]
		}
		for i = k + 1; i < n; i++ {
			factor = a[i][k] / a[k][k]
			a[i][k] = factor // multiplier kept below the diagonal
			for j = k + 1; j < n; j++ {
				a[i][j] -= factor * a[k][j]
			}
		}
	}

	// Stage 4: Split into L and U
	L, err := matrix.NewIdentity(n)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("LU: %w", err)
	}
	U, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("LU: %w", err)
	}
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if j < i {
				_ = L.Set(i, j, a[i][j])
				continue
			}
			_ = U.Set(i, j, a[i][j])
		}
	}

	return L, U, perm, nil
}
