package minimise_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/modelfree/diffusion"
	"github.com/katalvlaran/modelfree/minimise"
	"github.com/katalvlaran/modelfree/models"
	"github.com/katalvlaran/modelfree/pipe"
)

func TestAssembleDisassembleRoundTrip(t *testing.T) {
	p := newPipe(t, tm10)
	tn, err := pipe.NewTensor(diffusion.Spheroid, tm10, 2e7, 0.4, 1.1)
	require.NoError(t, err)
	p.Tensor = tn
	a := addSpin(t, p, "a", "m4", map[models.ParamName]float64{models.S2: 0.8, models.Te: 40e-12, models.Rex: 1e-19})
	b := addSpin(t, p, "b", "m25", map[models.ParamName]float64{models.R: 1.01e-10, models.S2f: 0.9, models.S2: 0.7, models.Ts: 1.5e-9})

	tests := []struct {
		name string
		mt   minimise.ModelType
		want []float64
	}{
		{"mf", minimise.MF, []float64{0.8, 40e-12, 1e-19, 1.01e-10, 0.9, 0.7, 1.5e-9}},
		{"diff", minimise.Diff, []float64{tm10, 2e7, 0.4, 1.1}},
		{"all", minimise.All, []float64{tm10, 2e7, 0.4, 1.1, 0.8, 40e-12, 1e-19, 1.01e-10, 0.9, 0.7, 1.5e-9}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, err := minimise.Assemble(p, tc.mt, nil, -1)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, x); diff != "" {
				t.Fatalf("Assemble mismatch (-want +got):\n%s", diff)
			}

			cp := p.Clone("copy")
			require.NoError(t, minimise.Disassemble(cp, tc.mt, nil, x, -1))
			y, err := minimise.Assemble(cp, tc.mt, nil, -1)
			require.NoError(t, err)
			assert.Equal(t, x, y)
		})
	}

	x, err := minimise.Assemble(p, minimise.MF, b, -1)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.01e-10, 0.9, 0.7, 1.5e-9}, x, "single spin")

	// m25 derives S2s = S2/S2f on disassembly.
	require.NoError(t, minimise.Disassemble(p, minimise.MF, b, x, -1))
	assert.InDelta(t, 0.7/0.9, value(t, b, models.S2s), 1e-15)
	assert.False(t, a.Set(models.S2s))

	err = minimise.Disassemble(p, minimise.MF, b, x[:2], -1)
	assert.ErrorIs(t, err, minimise.ErrDimension)
}

// roundTrip assembles the run of type mt, disassembles a perturbed vector
// into a clone and checks that it assembles back unchanged.
func roundTrip(t *testing.T, p *pipe.Pipe, mt minimise.ModelType, size int) {
	t.Helper()
	x, err := minimise.Assemble(p, mt, nil, -1)
	require.NoError(t, err)
	require.Len(t, x, size)

	moved := make([]float64, len(x))
	for i, v := range x {
		moved[i] = 1.05 * v
	}
	cp := p.Clone("copy")
	require.NoError(t, minimise.Disassemble(cp, mt, nil, moved, -1))
	y, err := minimise.Assemble(cp, mt, nil, -1)
	require.NoError(t, err)
	if diff := cmp.Diff(moved, y); diff != "" {
		t.Fatalf("round trip (-want +got):\n%s", diff)
	}
}

// spinFor returns a spin of model m with every parameter set to a non-zero
// value.
func spinFor(m models.Model) *pipe.Spin {
	s := pipe.NewSpin("a")
	s.SetModel(m)
	for _, q := range m.Params {
		v := models.Default(q)
		if v == 0 {
			v = 1e-19
		}
		s.SetValue(q, v)
	}

	return s
}

func TestAssembleRoundTripCatalogue(t *testing.T) {
	for _, name := range models.Names() {
		t.Run(name, func(t *testing.T) {
			m, err := models.Select(name)
			require.NoError(t, err)

			p := newPipe(t, tm10)
			require.NoError(t, p.AddSpin(spinFor(m)))
			mt, err := minimise.DetermineModelType(p)
			require.NoError(t, err)
			if m.Has(models.LocalTm) {
				assert.Equal(t, minimise.LocalTm, mt)
			} else {
				assert.Equal(t, minimise.MF, mt)
			}
			roundTrip(t, p, mt, len(m.Params))

			if !m.Has(models.LocalTm) {
				p.Tensor.Fixed = false
				roundTrip(t, p, minimise.All, 1+len(m.Params))
			}
		})
	}
}

func TestAssembleRoundTripCustomModels(t *testing.T) {
	tests := []struct {
		equation string
		params   []string
	}{
		{"mf_orig", []string{"S2", "te", "Rex", "r", "CSA"}},
		{"mf_orig", []string{"local_tm", "S2", "te"}},
		{"mf_ext", []string{"S2f", "S2s", "ts"}},
		{"mf_ext", []string{"S2f", "tf", "S2s", "ts", "Rex"}},
		{"mf_ext2", []string{"S2f", "S2s", "ts"}},
		{"mf_ext2", []string{"S2f", "tf", "S2", "ts", "Rex", "r", "CSA"}},
		{"mf_ext2", []string{"S2f", "tf", "S2s", "ts"}},
		{"mf_ext2", []string{"local_tm", "S2f", "S2s", "ts", "Rex"}},
		{"mf_ext2", []string{"S2", "ts"}},
	}
	for i, tc := range tests {
		m, err := models.Create("custom", tc.equation, tc.params)
		require.NoError(t, err, "case %d", i)

		p := newPipe(t, tm10)
		s := spinFor(m)
		require.NoError(t, p.AddSpin(s))
		mt, err := minimise.DetermineModelType(p)
		require.NoError(t, err)
		roundTrip(t, p, mt, len(tc.params))

		// The order parameter left out of the vector is derived.
		if m.Has(models.S2f) && m.Has(models.S2s) {
			cp := p.Clone("derived")
			x, err := minimise.Assemble(cp, mt, nil, -1)
			require.NoError(t, err)
			require.NoError(t, minimise.Disassemble(cp, mt, nil, x, -1))
			s2, ok := cp.Spins[0].Value(models.S2)
			require.True(t, ok)
			assert.InDelta(t, 0.64, s2, 1e-15, "case %d: S2 = S2f·S2s", i)
		}
	}
}

func TestAssembleLocalTmAndMissing(t *testing.T) {
	p := newPipe(t, tm10)
	s := addSpin(t, p, "a", "m1", map[models.ParamName]float64{models.S2: 0.8})
	m, err := models.Select("tm2")
	require.NoError(t, err)
	s.SetModel(m)

	x, err := minimise.Assemble(p, minimise.LocalTm, nil, -1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.8, 0}, x, "unset local_tm and te assemble as 0")

	s.Params = append(s.Params, "bogus")
	_, err = minimise.Assemble(p, minimise.LocalTm, nil, -1)
	assert.ErrorIs(t, err, models.ErrUnknownParameter)
}

func TestDisassembleFoldsAngles(t *testing.T) {
	p := newPipe(t, tm10)
	tn, err := pipe.NewTensor(diffusion.Spheroid, tm10, 1e7, 0, 0)
	require.NoError(t, err)
	p.Tensor = tn
	addSpin(t, p, "a", "m1", map[models.ParamName]float64{models.S2: 0.8})
	p.Spins[0].Fixed = true

	require.NoError(t, minimise.Disassemble(p, minimise.Diff, nil, []float64{tm10, 1e7, -0.5, 4}, -1))
	th, ph := tn.Value(diffusion.Theta), tn.Value(diffusion.Phi)
	assert.GreaterOrEqual(t, th, 0.0)
	assert.LessOrEqual(t, th, math.Pi)
	assert.GreaterOrEqual(t, ph, 0.0)
	assert.LessOrEqual(t, ph, math.Pi)
}

func TestDeriveOrderParamsExt2(t *testing.T) {
	s := pipe.NewSpin("a")
	m, err := models.Create("ext2", "mf_ext2", []string{"s2f", "tf", "s2s", "ts"})
	require.NoError(t, err)
	s.SetModel(m)
	s.SetValue(models.S2f, 0.9)
	s.SetValue(models.S2s, 0.8)

	minimise.DeriveOrderParams(s, -1)
	assert.InDelta(t, 0.72, value(t, s, models.S2), 1e-15)

	s.SetValue(models.S2s, 0)
	minimise.DeriveOrderParams(s, -1)
	assert.Equal(t, 0.0, value(t, s, models.S2))
}

func TestScaleFactors(t *testing.T) {
	p := newPipe(t, tm10)
	s := addSpin(t, p, "a", "m4", truthM2)

	d, err := minimise.ScaleFactors(p, minimise.MF, s, true)
	require.NoError(t, err)
	w := 2 * math.Pi * 600e6
	assert.Equal(t, []float64{1, 1e-12, 1 / (w * w)}, d)

	m, err := minimise.ScalingMatrix(p, minimise.MF, s, false)
	require.NoError(t, err)
	diag, err := m.Diag()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1}, diag)

	p.Tensor.Fixed = false
	p.Spins[0].Fixed = true
	d, err = minimise.ScaleFactors(p, minimise.Diff, nil, true)
	require.NoError(t, err)
	assert.Equal(t, []float64{1e-12}, d)
}

func TestLinearConstraintsMF(t *testing.T) {
	p := newPipe(t, tm10)
	s := addSpin(t, p, "a", "m2", truthM2)
	scale, err := minimise.ScaleFactors(p, minimise.MF, s, true)
	require.NoError(t, err)

	a, b, err := minimise.LinearConstraints(p, minimise.MF, s, scale, minimise.ConstraintOptions{TimeUpperBound: true})
	require.NoError(t, err)
	want := [][]float64{
		{1, 0},  // S2 ≥ 0
		{-1, 0}, // −S2 ≥ −1
		{0, 1},  // te ≥ 0
		{0, -1}, // −te ≥ −2·tm
	}
	require.Equal(t, len(want), a.Rows())
	for i, row := range want {
		got, err := a.Row(i)
		require.NoError(t, err)
		assert.Equal(t, row, got, "row %d", i)
	}
	assert.Equal(t, 0.0, b[0])
	assert.Equal(t, -1.0, b[1])
	assert.Equal(t, 0.0, b[2])
	assert.InEpsilon(t, -2*tm10/1e-12, b[3], 1e-12)

	a, _, err = minimise.LinearConstraints(p, minimise.MF, s, scale, minimise.ConstraintOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, a.Rows(), "no te upper bound")
}

func TestLinearConstraintsSimulationTm(t *testing.T) {
	p := newPipe(t, tm10)
	s := addSpin(t, p, "a", "m2", truthM2)
	p.Tensor.Param(diffusion.Tm).Put(1, 20e-9)
	scale, err := minimise.ScaleFactors(p, minimise.MF, s, true)
	require.NoError(t, err)

	for _, tc := range []struct {
		sim int
		tm  float64
	}{
		{-1, tm10},
		{0, 0},
		{1, 20e-9},
		{5, tm10},
	} {
		_, b, err := minimise.LinearConstraints(p, minimise.MF, s, scale, minimise.ConstraintOptions{TimeUpperBound: true, Sim: tc.sim})
		require.NoError(t, err)
		require.Len(t, b, 4)
		assert.InDelta(t, -2*tc.tm/1e-12, b[3], 1e-6, "sim %d", tc.sim)
	}
}

func TestLinearConstraintsLocalTm(t *testing.T) {
	p := newPipe(t, tm10)
	s := addSpin(t, p, "a", "m1", map[models.ParamName]float64{models.S2: 0.8})
	m, err := models.Select("tm6") // local_tm, S2f, tf, S2, ts
	require.NoError(t, err)
	s.SetModel(m)
	p.Tensor = nil

	scale, err := minimise.ScaleFactors(p, minimise.LocalTm, s, true)
	require.NoError(t, err)
	a, b, err := minimise.LinearConstraints(p, minimise.LocalTm, s, scale, minimise.ConstraintOptions{TimeUpperBound: true})
	require.NoError(t, err)

	rows := make([][]float64, a.Rows())
	for i := range rows {
		rows[i], err = a.Row(i)
		require.NoError(t, err)
	}
	assert.Contains(t, rows, []float64{0, 1, 0, -1, 0}) // S2f − S2 ≥ 0
	assert.Contains(t, rows, []float64{0, 0, -1, 0, 1}) // ts − tf ≥ 0
	assert.Contains(t, rows, []float64{2, 0, 0, 0, -1}) // 2·local_tm − ts ≥ 0
	assert.Contains(t, rows, []float64{-1, 0, 0, 0, 0}) // local_tm ≤ 200 ns
	i := indexOfRow(rows, []float64{-1, 0, 0, 0, 0})
	assert.InEpsilon(t, -200e-9/1e-12, b[i], 1e-12)
}

func indexOfRow(rows [][]float64, row []float64) int {
	for i, r := range rows {
		if cmp.Equal(r, row) {
			return i
		}
	}

	return -1
}

func TestLinearConstraintsTensor(t *testing.T) {
	p := newPipe(t, tm10)
	tn, err := pipe.NewTensor(diffusion.Spheroid, tm10, 1e7, 0.5, 0.5)
	require.NoError(t, err)
	tn.Spheroid = diffusion.Oblate
	p.Tensor = tn
	addSpin(t, p, "a", "m1", map[models.ParamName]float64{models.S2: 0.8}).Fixed = true

	scale, err := minimise.ScaleFactors(p, minimise.Diff, nil, true)
	require.NoError(t, err)
	a, b, err := minimise.LinearConstraints(p, minimise.Diff, nil, scale, minimise.ConstraintOptions{})
	require.NoError(t, err)
	require.Equal(t, 3, a.Rows())
	r2, err := a.Row(2)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, -1, 0, 0}, r2) // −Da ≥ 0
	assert.InDeltaSlice(t, []float64{0, -200e-9 / 1e-12, 0}, b, 1e-6)
}

func TestLinearConstraintsEmpty(t *testing.T) {
	p := newPipe(t, tm10)
	s := addSpin(t, p, "a", "m0", nil)
	a, b, err := minimise.LinearConstraints(p, minimise.MF, s, nil, minimise.ConstraintOptions{})
	require.NoError(t, err)
	assert.Nil(t, a)
	assert.Nil(t, b)
}

func TestGridBounds(t *testing.T) {
	p := newPipe(t, tm10)
	s := addSpin(t, p, "a", "m4", truthM2)
	scale, err := minimise.ScaleFactors(p, minimise.MF, s, true)
	require.NoError(t, err)

	lo, hi, err := minimise.GridBounds(p, minimise.MF, s, scale)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0}, lo)
	assert.Equal(t, 1.0, hi[0])
	assert.InEpsilon(t, 500, hi[1], 1e-12)
	assert.InEpsilon(t, 5, hi[2], 1e-12)
}
