package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/modelfree/matrix"
)

func TestNewDense_InvalidDimensions(t *testing.T) {
	_, err := matrix.NewDense(0, 3)
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

func TestDense_AtSetBounds(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	require.NoError(t, m.Set(1, 0, 3.5))

	v, err := m.At(1, 0)
	require.NoError(t, err)
	assert.Equal(t, 3.5, v)

	_, err = m.At(2, 0)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
	assert.ErrorIs(t, m.Set(0, -1, 1), matrix.ErrOutOfRange)
}

func TestDiagonalAndIdentity(t *testing.T) {
	d, err := matrix.NewDiagonal([]float64{1e-12, 1, 1e-10})
	require.NoError(t, err)
	diag, err := d.Diag()
	require.NoError(t, err)
	assert.Equal(t, []float64{1e-12, 1, 1e-10}, diag)

	off, _ := d.At(0, 1)
	assert.Zero(t, off)

	id, err := matrix.NewIdentity(2)
	require.NoError(t, err)
	y, err := matrix.MatVec(id, []float64{3, 4})
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4}, y)
}

func TestMatVec(t *testing.T) {
	a, err := matrix.NewFromRows([][]float64{{1, 0}, {-1, 0}, {1, 2}, {0, 1}})
	require.NoError(t, err)
	y, err := matrix.MatVec(a, []float64{0.5, 0.25})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, -0.5, 1, 0.25}, y)

	_, err = matrix.MatVec(a, []float64{1})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestNewFromRows_Ragged(t *testing.T) {
	_, err := matrix.NewFromRows([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestDiagMulSolve(t *testing.T) {
	x, err := matrix.DiagSolve([]float64{1e-12, 2}, []float64{8e-11, 1})
	require.NoError(t, err)
	assert.InDelta(t, 80, x[0], 1e-9)
	back, err := matrix.DiagMul([]float64{1e-12, 2}, x)
	require.NoError(t, err)
	assert.InDelta(t, 8e-11, back[0], 1e-20)

	_, err = matrix.DiagSolve([]float64{0}, []float64{1})
	assert.ErrorIs(t, err, matrix.ErrSingular)
}
