package config

import (
	"fmt"

	"github.com/katalvlaran/modelfree/eliminate"
	"github.com/katalvlaran/modelfree/minimise"
	"github.com/katalvlaran/modelfree/montecarlo"
	"github.com/katalvlaran/modelfree/optim"
)

// Optimiser holds the minimise.Options settings.
type Optimiser struct {
	Algorithm      string  `yaml:"algorithm"`
	Constraints    bool    `yaml:"constraints"`
	Scaling        bool    `yaml:"scaling"`
	TimeUpperBound bool    `yaml:"time_upper_bound"`
	GridInc        []int   `yaml:"grid_inc,omitempty"`
	FuncTol        float64 `yaml:"func_tol"`
	GradTol        float64 `yaml:"grad_tol"`
	MaxIter        int     `yaml:"max_iter"`
	Workers        int     `yaml:"workers"`
}

// MonteCarlo holds the montecarlo.Options settings. Sims 0 disables the
// error analysis.
type MonteCarlo struct {
	Sims    int    `yaml:"sims"`
	Seed    uint64 `yaml:"seed"`
	Method  string `yaml:"method"`
	Workers int    `yaml:"workers"`
}

// Eliminate holds the eliminate.Options settings.
type Eliminate struct {
	Enabled bool    `yaml:"enabled"`
	C1      float64 `yaml:"c1"`
	C2      float64 `yaml:"c2"`
}

// MinimiseOptions converts the settings and validates the result.
func (o Optimiser) MinimiseOptions() (minimise.Options, error) {
	alg, err := optim.ParseAlgorithm(o.Algorithm)
	if err != nil {
		return minimise.Options{}, fmt.Errorf("optimiser: %w", err)
	}
	opts := minimise.DefaultOptions()
	opts.Algorithm = alg
	opts.Constraints = o.Constraints
	opts.Scaling = o.Scaling
	opts.TimeUpperBound = o.TimeUpperBound
	opts.GridInc = o.GridInc
	opts.FuncTol = o.FuncTol
	opts.GradTol = o.GradTol
	opts.MaxIter = o.MaxIter
	opts.Workers = o.Workers
	if err = opts.Validate(); err != nil {
		return minimise.Options{}, fmt.Errorf("optimiser: %w", err)
	}

	return opts, nil
}

// Validate checks the settings by converting them.
func (o Optimiser) Validate() error {
	_, err := o.MinimiseOptions()

	return err
}

// Validate checks the counts and the data method.
func (m MonteCarlo) Validate() error {
	if m.Sims < 0 || m.Workers < 0 {
		return fmt.Errorf("montecarlo: sims=%d workers=%d: %w", m.Sims, m.Workers, ErrInvalid)
	}
	if _, err := montecarlo.ParseDataMethod(m.Method); err != nil {
		return fmt.Errorf("montecarlo: %w", err)
	}

	return nil
}

// Options converts the settings. Elimination is nil when disabled.
func (e Eliminate) Options() *eliminate.Options {
	if !e.Enabled {
		return nil
	}
	opts := eliminate.DefaultOptions()
	opts.C1, opts.C2 = e.C1, e.C2

	return &opts
}

// Validate checks the limits of an enabled elimination.
func (e Eliminate) Validate() error {
	if o := e.Options(); o != nil {
		if err := o.Validate(); err != nil {
			return fmt.Errorf("eliminate: %w", err)
		}
	}

	return nil
}

// MonteCarloOptions combines the optimiser, montecarlo and eliminate
// settings.
func (a *Analysis) MonteCarloOptions() (montecarlo.Options, error) {
	if err := a.MonteCarlo.Validate(); err != nil {
		return montecarlo.Options{}, err
	}
	mo, err := a.Optimiser.MinimiseOptions()
	if err != nil {
		return montecarlo.Options{}, err
	}
	method, _ := montecarlo.ParseDataMethod(a.MonteCarlo.Method)

	opts := montecarlo.DefaultOptions()
	opts.N = a.MonteCarlo.Sims
	opts.Seed = a.MonteCarlo.Seed
	opts.Method = method
	opts.Workers = a.MonteCarlo.Workers
	opts.Minimise = mo
	opts.Eliminate = a.Eliminate.Options()

	return opts, nil
}
