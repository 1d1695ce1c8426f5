package diffusion_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/modelfree/diffusion"
)

func TestParseShape(t *testing.T) {
	for _, s := range []diffusion.Shape{diffusion.Sphere, diffusion.Spheroid, diffusion.Ellipsoid} {
		got, err := diffusion.ParseShape(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := diffusion.ParseShape("cube")
	assert.ErrorIs(t, err, diffusion.ErrUnknownShape)
}

func TestShapeParams(t *testing.T) {
	assert.Equal(t, []diffusion.Param{diffusion.Tm}, diffusion.Sphere.Params())
	assert.Equal(t, 4, diffusion.Spheroid.NumParams())
	assert.Equal(t, 6, diffusion.Ellipsoid.NumParams())
	assert.Equal(t, 5, diffusion.Ellipsoid.Components())
	assert.True(t, diffusion.Gamma.IsAngle())
	assert.False(t, diffusion.Da.IsAngle())
}

func TestComponents_Sphere(t *testing.T) {
	ci, ti, err := diffusion.Components(diffusion.Sphere, []float64{10e-9}, r3.Vec{})
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, ci)
	assert.Equal(t, []float64{10e-9}, ti)
}

func TestComponents_WeightsSumToOne(t *testing.T) {
	unit, err := diffusion.Unit(r3.Vec{X: 0.3, Y: -0.5, Z: 0.8})
	require.NoError(t, err)

	ci, ti, err := diffusion.Components(diffusion.Spheroid, []float64{10e-9, 2e7, 0.4, 1.1}, unit)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, floats.Sum(ci), 1e-12)
	assert.Len(t, ti, 3)
	assert.Greater(t, ti[0], ti[2], "t-1 is slower than t1 for Da > 0")

	ci, ti, err = diffusion.Components(diffusion.Ellipsoid, []float64{10e-9, 2e7, 0.3, 0.2, 1.0, 2.5}, unit)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, floats.Sum(ci), 1e-12)
	assert.Len(t, ti, 5)
}

func TestComponents_IsotropicLimit(t *testing.T) {
	unit := r3.Vec{Z: 1}
	_, ti, err := diffusion.Components(diffusion.Ellipsoid, []float64{8e-9, 0, 0, 0, 0, 0}, unit)
	require.NoError(t, err)
	for i := range ti {
		assert.InEpsilon(t, 8e-9, ti[i], 1e-12)
	}
}

func TestComponents_ZeroTm(t *testing.T) {
	_, ti, err := diffusion.Components(diffusion.Spheroid, []float64{0, 0, 0, 0}, r3.Vec{Z: 1})
	require.NoError(t, err)
	assert.InEpsilon(t, 1e-99, ti[1], 1e-9, "1/(1e99) guard")
}

func TestComponents_ParamCount(t *testing.T) {
	_, _, err := diffusion.Components(diffusion.Spheroid, []float64{1}, r3.Vec{})
	assert.ErrorIs(t, err, diffusion.ErrParamCount)
}

func TestDirectionCosines_Identity(t *testing.T) {
	dx, dy, dz := diffusion.DirectionCosines(0, 0, 0, r3.Vec{Z: 1})
	assert.InDelta(t, 0, dx, 1e-15)
	assert.InDelta(t, 0, dy, 1e-15)
	assert.InDelta(t, 1, dz, 1e-15)
}

func TestUnit_Zero(t *testing.T) {
	_, err := diffusion.Unit(r3.Vec{})
	assert.ErrorIs(t, err, diffusion.ErrZeroVector)
}

func TestRates(t *testing.T) {
	r, err := diffusion.Rates(diffusion.Spheroid, []float64{1.0 / 6e7, 3e7, 0, 0})
	require.NoError(t, err)
	assert.InEpsilon(t, 1e7+2e7, r[0], 1e-12)
	assert.InDelta(t, 0, r[1], 1e-6)
}

func TestFolding(t *testing.T) {
	assert.InDelta(t, 7-2*math.Pi, diffusion.WrapAngle(7, 0, 2*math.Pi), 1e-12)
	assert.InDelta(t, 2*math.Pi-1, diffusion.WrapAngle(-1, 0, 2*math.Pi), 1e-12)

	theta, phi := diffusion.FoldSpheroid(0.5, 4)
	assert.InDelta(t, math.Pi-0.5, theta, 1e-12)
	assert.InDelta(t, 4-math.Pi, phi, 1e-12)

	a, b, g := diffusion.FoldEllipsoid(0.2, 0.3, 0.4)
	assert.Equal(t, []float64{0.2, 0.3, 0.4}, []float64{a, b, g})

	a, b, g = diffusion.FoldEllipsoid(0.2, 0.3, math.Pi+0.4)
	assert.InDelta(t, math.Pi-0.2, a, 1e-12)
	assert.InDelta(t, math.Pi-0.3, b, 1e-12)
	assert.InDelta(t, 0.4, g, 1e-12)

	ts, ps := diffusion.FoldSpheroidSim(1, 1, 1.1, 1+math.Pi)
	assert.InDelta(t, math.Pi-1.1, ts, 1e-12)
	assert.InDelta(t, 1, ps, 1e-12)
}
