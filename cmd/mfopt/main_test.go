package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/modelfree/export"
	"github.com/katalvlaran/modelfree/models"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return out.String(), err
}

func TestCatalogue(t *testing.T) {
	out, err := execute(t, "catalogue")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, len(models.Names()))
	assert.Contains(t, out, "m5    mf_ext   {s2f, s2, ts}\n")
	assert.Contains(t, out, "tm39  mf_orig  {local_tm, r, csa, rex}\n")
}

func TestMinimise(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "results.yaml")
	promPath := filepath.Join(dir, "mfopt.prom")

	_, err := execute(t, "minimise", "testdata/m2.yaml", "--out", yamlPath, "--metrics", promPath)
	require.NoError(t, err)

	f, err := os.Open(yamlPath)
	require.NoError(t, err)
	defer f.Close()
	res, err := export.ReadYAML(f)
	require.NoError(t, err)
	assert.Equal(t, "m2", res.Pipe)
	require.Len(t, res.Spins, 1)
	assert.Equal(t, "m2", res.Spins[0].Model)

	prom, err := os.ReadFile(promPath)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "modelfree_instances_total")
}

func TestMinimise_Errors(t *testing.T) {
	_, err := execute(t, "minimise")
	assert.Error(t, err, "analysis file is required")

	_, err = execute(t, "minimise", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = execute(t, "minimise", "testdata/m2.yaml", "--algorithm", "annealing")
	assert.Error(t, err)

	_, err = execute(t, "select", "--method", "XIC", "testdata/m2.yaml", "testdata/m2.yaml")
	assert.Error(t, err)
}
