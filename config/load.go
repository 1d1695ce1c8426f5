package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/modelfree/eliminate"
	"github.com/katalvlaran/modelfree/minimise"
	"github.com/katalvlaran/modelfree/montecarlo"
)

// EnvPrefix prefixes the environment overrides of the settings sections.
const EnvPrefix = "MFOPT"

// Setting keys, as seen by viper.
const (
	KeyAlgorithm      = "optimiser.algorithm"
	KeyConstraints    = "optimiser.constraints"
	KeyScaling        = "optimiser.scaling"
	KeyTimeUpperBound = "optimiser.time_upper_bound"
	KeyGridInc        = "optimiser.grid_inc"
	KeyFuncTol        = "optimiser.func_tol"
	KeyGradTol        = "optimiser.grad_tol"
	KeyMaxIter        = "optimiser.max_iter"
	KeyWorkers        = "optimiser.workers"

	KeySims      = "montecarlo.sims"
	KeySeed      = "montecarlo.seed"
	KeyMethod    = "montecarlo.method"
	KeyMCWorkers = "montecarlo.workers"

	KeyEliminate = "eliminate.enabled"
	KeyC1        = "eliminate.c1"
	KeyC2        = "eliminate.c2"
)

// SetDefaults registers the package defaults on v.
func SetDefaults(v *viper.Viper) {
	mo := minimise.DefaultOptions()
	v.SetDefault(KeyAlgorithm, string(mo.Algorithm))
	v.SetDefault(KeyConstraints, mo.Constraints)
	v.SetDefault(KeyScaling, mo.Scaling)
	v.SetDefault(KeyTimeUpperBound, mo.TimeUpperBound)
	v.SetDefault(KeyGridInc, []int{})
	v.SetDefault(KeyFuncTol, mo.FuncTol)
	v.SetDefault(KeyGradTol, mo.GradTol)
	v.SetDefault(KeyMaxIter, mo.MaxIter)
	v.SetDefault(KeyWorkers, mo.Workers)

	mc := montecarlo.DefaultOptions()
	v.SetDefault(KeySims, 0)
	v.SetDefault(KeySeed, mc.Seed)
	v.SetDefault(KeyMethod, mc.Method.String())
	v.SetDefault(KeyMCWorkers, mc.Workers)

	el := eliminate.DefaultOptions()
	v.SetDefault(KeyEliminate, false)
	v.SetDefault(KeyC1, el.C1)
	v.SetDefault(KeyC2, el.C2)
}

// Load reads the analysis file at path.
//
// The tensor, relaxation and spins documents are decoded from the file with
// yaml.v3. The settings sections go through v, so defaults, MFOPT_*
// environment variables and any flags bound on v take part. A nil v uses a
// fresh viper instance.
//
// Complexity: O(file size).
func Load(path string, v *viper.Viper) (*Analysis, error) {
	if v == nil {
		v = viper.New()
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("Load(%q): %w", path, err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Load(%q): %w", path, err)
	}
	a, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("Load(%q): %w", path, err)
	}
	a.Optimiser = Optimiser{
		Algorithm:      v.GetString(KeyAlgorithm),
		Constraints:    v.GetBool(KeyConstraints),
		Scaling:        v.GetBool(KeyScaling),
		TimeUpperBound: v.GetBool(KeyTimeUpperBound),
		GridInc:        v.GetIntSlice(KeyGridInc),
		FuncTol:        v.GetFloat64(KeyFuncTol),
		GradTol:        v.GetFloat64(KeyGradTol),
		MaxIter:        v.GetInt(KeyMaxIter),
		Workers:        v.GetInt(KeyWorkers),
	}
	a.MonteCarlo = MonteCarlo{
		Sims:    v.GetInt(KeySims),
		Seed:    v.GetUint64(KeySeed),
		Method:  v.GetString(KeyMethod),
		Workers: v.GetInt(KeyMCWorkers),
	}
	a.Eliminate = Eliminate{
		Enabled: v.GetBool(KeyEliminate),
		C1:      v.GetFloat64(KeyC1),
		C2:      v.GetFloat64(KeyC2),
	}
	if len(a.Optimiser.GridInc) == 0 {
		a.Optimiser.GridInc = nil
	}
	if err = a.Validate(); err != nil {
		return nil, fmt.Errorf("Load(%q): %w", path, err)
	}

	return a, nil
}

// Parse decodes an analysis document as written, without defaults,
// overrides or validation.
func Parse(raw []byte) (*Analysis, error) {
	var a Analysis
	if err := yaml.Unmarshal(raw, &a); err != nil {
		return nil, err
	}

	return &a, nil
}
