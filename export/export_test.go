package export_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/katalvlaran/modelfree/diffusion"
	"github.com/katalvlaran/modelfree/export"
	"github.com/katalvlaran/modelfree/models"
	"github.com/katalvlaran/modelfree/pipe"
)

func resultsPipe(t *testing.T) *pipe.Pipe {
	t.Helper()
	p := pipe.New("final")
	tn, err := pipe.NewTensor(diffusion.Sphere, 10e-9)
	require.NoError(t, err)
	tn.Fixed = true
	p.Tensor = tn

	m, err := models.Select("m2")
	require.NoError(t, err)
	a := pipe.NewSpin("a")
	a.SetModel(m)
	a.SetValue(models.S2, 0.85)
	a.Ensure(models.S2).Err = 0.01
	a.SetValue(models.Te, 80e-12)
	a.SetValue(models.R, 1.02e-10)
	a.Stats = pipe.Stats{Chi2: 0.5, Iter: 12, FCount: 30, GCount: 12, Set: true}
	require.NoError(t, p.AddSpin(a))

	b := pipe.NewSpin("b")
	b.Deselect("no relaxation data")
	require.NoError(t, p.AddSpin(b))

	return p
}

func TestFromPipe(t *testing.T) {
	r := export.FromPipe(resultsPipe(t))
	require.Len(t, r.Spins, 2)
	assert.Nil(t, r.Stats)
	assert.Equal(t, "sphere", r.Tensor.Shape)

	a := r.Spins[0]
	assert.Equal(t, "mf_orig", a.Equation)
	assert.Equal(t, []string{"s2", "te", "r"}, names(a.Params), "model order first")
	s2, ok := a.Param("s2")
	require.True(t, ok)
	assert.Equal(t, export.ParamResult{Name: "s2", Value: 0.85, Err: 0.01}, s2)

	b := r.Spins[1]
	assert.False(t, b.Select)
	assert.Empty(t, b.Equation)
	assert.Nil(t, b.Stats)
	assert.Equal(t, "no relaxation data", b.Warning)
}

func names(ps []export.ParamResult) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}

	return out
}

func TestYAMLRoundTrip(t *testing.T) {
	r := export.FromPipe(resultsPipe(t))
	var buf bytes.Buffer
	require.NoError(t, export.WriteYAML(&buf, r))
	assert.Contains(t, buf.String(), "model: m2")
	assert.Contains(t, buf.String(), "warning: no relaxation data")

	got, err := export.ReadYAML(&buf)
	require.NoError(t, err)
	if diff := cmp.Diff(r, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	_, err = export.ReadYAML(bytes.NewBufferString("spins: [oops"))
	assert.Error(t, err)
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "final.xlsx")
	require.NoError(t, export.WriteXLSX(path, export.FromPipe(resultsPipe(t))))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(export.SpinSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, export.SpinHeader(), rows[0])
	assert.Equal(t, "a", rows[1][0])
	assert.Equal(t, "m2", rows[1][2])
	assert.Equal(t, "b", rows[2][0])

	tensor, err := f.GetRows(export.TensorSheet)
	require.NoError(t, err)
	require.Len(t, tensor, 3)
	assert.Equal(t, "tm", tensor[2][0])

	assert.Error(t, export.WriteXLSX(filepath.Join(t.TempDir(), "missing", "x.xlsx"), export.Results{}))
}
