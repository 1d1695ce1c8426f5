package minimise_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/modelfree/diffusion"
	"github.com/katalvlaran/modelfree/internal/logging"
	"github.com/katalvlaran/modelfree/matrix"
	"github.com/katalvlaran/modelfree/minimise"
	"github.com/katalvlaran/modelfree/models"
	"github.com/katalvlaran/modelfree/optim"
	"github.com/katalvlaran/modelfree/pipe"
)

func testOptions() minimise.Options {
	opts := minimise.DefaultOptions()
	opts.Logger = logging.NewTestLogger()

	return opts
}

func TestDetermineModelType(t *testing.T) {
	p := newPipe(t, tm10)
	a := addSpin(t, p, "a", "m2", truthM2)
	b := addSpin(t, p, "b", "m1", map[models.ParamName]float64{models.S2: 0.9})

	mt, err := minimise.DetermineModelType(p)
	require.NoError(t, err)
	assert.Equal(t, minimise.MF, mt) // tensor fixed

	p.Tensor.Fixed = false
	mt, err = minimise.DetermineModelType(p)
	require.NoError(t, err)
	assert.Equal(t, minimise.All, mt)

	a.Fixed, b.Fixed = true, true
	mt, err = minimise.DetermineModelType(p)
	require.NoError(t, err)
	assert.Equal(t, minimise.Diff, mt)

	p.Tensor.Fixed = true
	_, err = minimise.DetermineModelType(p)
	assert.ErrorIs(t, err, minimise.ErrAllFixed)

	a.Fixed, b.Fixed = false, false
	tm, err := models.Select("tm2")
	require.NoError(t, err)
	a.SetModel(tm)
	_, err = minimise.DetermineModelType(p)
	assert.ErrorIs(t, err, minimise.ErrLocalTmMismatch)

	b.SetModel(tm)
	p.Tensor = nil
	mt, err = minimise.DetermineModelType(p)
	require.NoError(t, err)
	assert.Equal(t, minimise.LocalTm, mt)
	assert.Equal(t, "local_tm", mt.String())

	b.SetModel(models.Model{Name: "m1", Equation: models.Orig, Params: []models.ParamName{models.S2}})
	b.Deselect("test")
	a.Deselect("test")
	_, err = minimise.DetermineModelType(p)
	assert.ErrorIs(t, err, minimise.ErrNoTensor)
}

func TestPrecheck(t *testing.T) {
	p := newPipe(t, tm10)
	s := addSpin(t, p, "a", "m2", truthM2)
	require.NoError(t, minimise.Precheck(p, minimise.MF))

	s.Unset(models.CSA)
	err := minimise.Precheck(p, minimise.MF)
	assert.ErrorIs(t, err, minimise.ErrMissingValue)
	var mv *minimise.MissingValueError
	require.True(t, errors.As(err, &mv))
	assert.Equal(t, "a", mv.Spin)
	assert.Equal(t, models.CSA, mv.Param)

	s.SetValue(models.CSA, -172e-6)
	s.HeteroNucleus = ""
	assert.ErrorIs(t, minimise.Precheck(p, minimise.MF), minimise.ErrNoNucleus)

	s.HeteroNucleus = "15N"
	s.Model = ""
	assert.ErrorIs(t, minimise.Precheck(p, minimise.MF), minimise.ErrNoModel)

	m, err := models.Select("m2")
	require.NoError(t, err)
	s.SetModel(m)
	tn, err := pipe.NewTensor(diffusion.Spheroid, tm10, 1e7, 0.5, 0.5)
	require.NoError(t, err)
	p.Tensor = tn
	s.Vector = nil
	assert.ErrorIs(t, minimise.Precheck(p, minimise.MF), minimise.ErrNoVector)
}

func TestMinimiseRecoversM2(t *testing.T) {
	p := newPipe(t, tm10)
	s := addSpin(t, p, "a", "m2", truthM2)
	s.SetValue(models.S2, 0)
	s.SetValue(models.Te, 0)

	opts := testOptions()
	opts.GridInc = []int{11}
	require.NoError(t, minimise.Minimise(context.Background(), p, opts))

	assert.InEpsilon(t, 0.85, value(t, s, models.S2), 1e-3)
	assert.InEpsilon(t, 80e-12, value(t, s, models.Te), 1e-2)
	assert.True(t, s.Stats.Set)
	assert.Less(t, s.Stats.Chi2, 1e-6)
	assert.Positive(t, s.Stats.Iter)
	assert.False(t, p.Stats.Set, "per-spin runs leave the global statistics alone")

	// The converged point satisfies A·x ≥ b (scaled).
	scale, err := minimise.ScaleFactors(p, minimise.MF, s, true)
	require.NoError(t, err)
	a, b, err := minimise.LinearConstraints(p, minimise.MF, s, scale, minimise.ConstraintOptions{TimeUpperBound: true})
	require.NoError(t, err)
	x, err := minimise.Assemble(p, minimise.MF, s, -1)
	require.NoError(t, err)
	xs, err := matrix.DiagSolve(scale, x)
	require.NoError(t, err)
	ax, err := matrix.MatVec(a, xs)
	require.NoError(t, err)
	for i := range ax {
		assert.GreaterOrEqual(t, ax[i]-b[i], -1e-6, "row %d", i)
	}
}

func TestMinimiseWithoutConstraintsOrScaling(t *testing.T) {
	p := newPipe(t, tm10)
	s := addSpin(t, p, "a", "m1", map[models.ParamName]float64{models.S2: 0.7})
	s.SetValue(models.S2, 0.5)

	opts := testOptions()
	opts.Constraints = false
	opts.Scaling = false
	opts.Algorithm = optim.Newton
	require.NoError(t, minimise.Minimise(context.Background(), p, opts))
	assert.InEpsilon(t, 0.7, value(t, s, models.S2), 1e-4)
}

func TestGridSearch(t *testing.T) {
	p := newPipe(t, tm10)
	s := addSpin(t, p, "a", "m2", map[models.ParamName]float64{models.S2: 0.8, models.Te: 100e-12})

	opts := testOptions()
	opts.GridInc = []int{11, 6}
	require.NoError(t, minimise.GridSearch(context.Background(), p, opts))

	assert.InDelta(t, 0.8, value(t, s, models.S2), 1e-12)
	assert.InDelta(t, 100e-12, value(t, s, models.Te), 1e-20)
	assert.Equal(t, 66, s.Stats.Iter) // 11 × 6 nodes, none violating
	assert.InDelta(t, 0, s.Stats.Chi2, 1e-12)
}

func TestCalculate(t *testing.T) {
	p := newPipe(t, tm10)
	s := addSpin(t, p, "a", "m2", truthM2)
	require.NoError(t, minimise.Calculate(context.Background(), p, testOptions()))
	assert.True(t, s.Stats.Set)
	assert.InDelta(t, 0, s.Stats.Chi2, 1e-20)
	assert.Zero(t, s.Stats.Iter)

	s.SetValue(models.S2, 0.7)
	require.NoError(t, minimise.Calculate(context.Background(), p, testOptions()))
	assert.Greater(t, s.Stats.Chi2, 1.0)
	assert.Equal(t, 0.7, value(t, s, models.S2), "values are not modified")
}

func TestMinimiseDeselectsInvalidErrors(t *testing.T) {
	p := newPipe(t, tm10)
	bad := addSpin(t, p, "bad", "m1", map[models.ParamName]float64{models.S2: 0.8})
	good := addSpin(t, p, "good", "m1", map[models.ParamName]float64{models.S2: 0.8})
	bad.Data["R2_600"].Error = 0
	good.SetValue(models.S2, 0.6)

	require.NoError(t, minimise.Minimise(context.Background(), p, testOptions()))
	assert.False(t, bad.Select)
	assert.Contains(t, bad.Warning, "error must be > 0")
	assert.True(t, good.Select)
	assert.InEpsilon(t, 0.8, value(t, good, models.S2), 1e-4)
}

func TestMinimiseDiffOnly(t *testing.T) {
	p := newPipe(t, tm10)
	a := addSpin(t, p, "a", "m2", truthM2)
	b := addSpin(t, p, "b", "m1", map[models.ParamName]float64{models.S2: 0.9})
	a.Fixed, b.Fixed = true, true
	p.Tensor.Fixed = false
	p.Tensor.Param(diffusion.Tm).Value = 8e-9

	require.NoError(t, minimise.Minimise(context.Background(), p, testOptions()))
	assert.InEpsilon(t, tm10, p.Tensor.Value(diffusion.Tm), 1e-4)
	assert.True(t, p.Stats.Set)
	assert.False(t, a.Stats.Set)
	assert.Equal(t, 0.85, value(t, a, models.S2), "fixed spins keep their values")
}

func TestMinimiseLocalTm(t *testing.T) {
	p := newPipe(t, tm10)
	s := addSpin(t, p, "a", "m1", map[models.ParamName]float64{models.S2: 0.8})
	tm, err := models.Select("tm1")
	require.NoError(t, err)
	s.SetModel(tm)
	s.SetValue(models.LocalTm, 7e-9)
	s.SetValue(models.S2, 0.5)
	p.Tensor = nil

	opts := testOptions()
	opts.Algorithm = optim.LBFGS
	require.NoError(t, minimise.Minimise(context.Background(), p, opts))
	assert.InEpsilon(t, tm10, value(t, s, models.LocalTm), 1e-3)
	assert.InEpsilon(t, 0.8, value(t, s, models.S2), 1e-3)
}

type countingRecorder struct {
	mu     sync.Mutex
	events []minimise.Event
}

func (c *countingRecorder) Record(ev minimise.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
}

func TestMinimiseWorkersMatchSequential(t *testing.T) {
	build := func() *pipe.Pipe {
		p := newPipe(t, tm10)
		for i, s2 := range []float64{0.6, 0.7, 0.8, 0.9} {
			s := addSpin(t, p, string(rune('a'+i)), "m2", map[models.ParamName]float64{models.S2: s2, models.Te: 50e-12})
			s.SetValue(models.S2, 0.5)
			s.SetValue(models.Te, 20e-12)
		}
		return p
	}

	seq, par := build(), build()
	opts := testOptions()
	require.NoError(t, minimise.Minimise(context.Background(), seq, opts))

	rec := &countingRecorder{}
	opts.Workers = 4
	opts.Recorder = rec
	require.NoError(t, minimise.Minimise(context.Background(), par, opts))

	for i := range seq.Spins {
		assert.Equal(t, value(t, seq.Spins[i], models.S2), value(t, par.Spins[i], models.S2))
		assert.Equal(t, value(t, seq.Spins[i], models.Te), value(t, par.Spins[i], models.Te))
	}
	require.Len(t, rec.events, 4)
	for _, ev := range rec.events {
		assert.Equal(t, minimise.OpMinimise, ev.Op)
		assert.Equal(t, minimise.MF, ev.ModelType)
		assert.NoError(t, ev.Err)
	}
}

func TestMinimiseSimulation(t *testing.T) {
	p := newPipe(t, tm10)
	s := addSpin(t, p, "a", "m1", map[models.ParamName]float64{models.S2: 0.8})
	p.SimNumber, p.SimState = 1, true
	for _, o := range s.Data {
		o.Sim = []float64{o.Value}
	}
	s.Put(models.S2, 0, 0.6)

	opts := testOptions()
	opts.SimIndex = 0
	require.NoError(t, minimise.Minimise(context.Background(), p, opts))
	v, _ := s.Get(models.S2, 0)
	assert.InEpsilon(t, 0.8, v, 1e-4)
	assert.Equal(t, 0.8, value(t, s, models.S2), "point estimate untouched")
	assert.True(t, s.StatsAt(0).Set)

	opts.SimIndex = 3
	assert.ErrorIs(t, minimise.Minimise(context.Background(), p, opts), pipe.ErrSimIndex)
}

func TestOptionsValidate(t *testing.T) {
	opts := minimise.DefaultOptions()
	require.NoError(t, opts.Validate())

	opts.MaxIter = 0
	assert.ErrorIs(t, opts.Validate(), minimise.ErrBadOption)

	opts = minimise.DefaultOptions()
	opts.Algorithm = "bogus"
	assert.ErrorIs(t, opts.Validate(), optim.ErrUnsupportedAlgorithm)

	opts = minimise.DefaultOptions()
	opts.GridInc = []int{0}
	assert.ErrorIs(t, opts.Validate(), minimise.ErrBadOption)
}

func TestBackCalcAndCovariance(t *testing.T) {
	p := newPipe(t, tm10)
	s := addSpin(t, p, "a", "m2", truthM2)

	for _, ri := range p.RiIDs() {
		v, err := minimise.BackCalc(p, s, ri, -1)
		require.NoError(t, err)
		assert.Equal(t, s.Data[ri].Value, v)
	}
	_, err := minimise.BackCalc(p, s, "R1_900", -1)
	assert.ErrorIs(t, err, pipe.ErrUnknownRi)
	_, err = minimise.BackCalc(p, nil, "R1_600", -1)
	assert.ErrorIs(t, err, minimise.ErrSpinRequired)

	cov, err := minimise.Covariance(p, s)
	require.NoError(t, err)
	assert.Equal(t, 2, cov.Rows())
	c00, _ := cov.At(0, 0)
	assert.Positive(t, c00)
	assert.InDelta(t, math.Sqrt(c00), s.Param(models.S2).Err, 1e-15)
	assert.Positive(t, s.Param(models.Te).Err)

	_, err = minimise.Covariance(p, nil)
	assert.ErrorIs(t, err, minimise.ErrSpinRequired)
}
