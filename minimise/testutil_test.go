package minimise_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/modelfree/diffusion"
	"github.com/katalvlaran/modelfree/minimise"
	"github.com/katalvlaran/modelfree/models"
	"github.com/katalvlaran/modelfree/physics"
	"github.com/katalvlaran/modelfree/pipe"
)

const tm10 = 10e-9 // 10 ns global correlation time

// truthM2 is the reference m2 parameter set.
var truthM2 = map[models.ParamName]float64{models.S2: 0.85, models.Te: 80e-12}

// newPipe returns a pipe with a fixed spherical tensor and R1, R2, NOE data
// sets registered at 600 and 500 MHz.
func newPipe(t *testing.T, tm float64) *pipe.Pipe {
	t.Helper()
	p := pipe.New("test")
	tn, err := pipe.NewTensor(diffusion.Sphere, tm)
	require.NoError(t, err)
	tn.Fixed = true
	p.Tensor = tn

	for _, r := range []struct {
		id  string
		typ pipe.RiType
		frq float64
	}{
		{"R1_600", pipe.R1, 600e6},
		{"R2_600", pipe.R2, 600e6},
		{"NOE_600", pipe.NOE, 600e6},
		{"R1_500", pipe.R1, 500e6},
		{"R2_500", pipe.R2, 500e6},
		{"NOE_500", pipe.NOE, 500e6},
	} {
		require.NoError(t, p.AddRelaxation(r.id, r.typ, r.frq))
	}

	return p
}

// addSpin adds a 15N-1H spin with the given model and values, then fills its
// relaxation data with noise-free back-calculated values (2% errors).
func addSpin(t *testing.T, p *pipe.Pipe, id, model string, values map[models.ParamName]float64) *pipe.Spin {
	t.Helper()
	m, err := models.Select(model)
	require.NoError(t, err)

	s := pipe.NewSpin(id)
	s.SetModel(m)
	s.HeteroNucleus, s.ProtonNucleus = "15N", "1H"
	s.SetValue(models.R, physics.NHBondLength)
	s.SetValue(models.CSA, physics.NCSA)
	for k, v := range values {
		s.SetValue(k, v)
	}
	require.NoError(t, s.SetVector(r3.Vec{X: 0.3, Y: 0.2, Z: 1}))
	require.NoError(t, p.AddSpin(s))

	for _, ri := range p.RiIDs() {
		v, err := minimise.BackCalc(p, s, ri, -1)
		require.NoError(t, err)
		s.SetData(ri, v, 0.02*v)
	}

	return s
}

// value returns the point estimate of q, failing when unset.
func value(t *testing.T, s *pipe.Spin, q models.ParamName) float64 {
	t.Helper()
	v, ok := s.Value(q)
	require.True(t, ok, "%s not set", q)

	return v
}
