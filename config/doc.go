// Package config loads a model-free analysis description.
//
// An analysis file is YAML. The tensor, relaxation data sets and spins are
// decoded with gopkg.in/yaml.v3; the optimiser, montecarlo and eliminate
// sections are read through github.com/spf13/viper so that defaults,
// environment variables (prefix MFOPT_, e.g. MFOPT_OPTIMISER_ALGORITHM) and
// bound command line flags apply to them.
//
// Spin values are tagged: a YAML number is a Number, a string is Text. The
// only Text accepted today is "default", resolved to models.Default.
//
// Configuration Types:
//
//   - Analysis:   the whole file; ToPipe builds a *pipe.Pipe.
//   - Tensor:     diffusion tensor shape and parameters.
//   - Relaxation: one relaxation data set (type, spectrometer frequency).
//   - Spin:       model, nuclei, values, bond vector and data of one spin.
//   - Optimiser:  maps onto minimise.Options.
//   - MonteCarlo: maps onto montecarlo.Options.
//   - Eliminate:  maps onto eliminate.Options.
//
// Example usage:
//
//	a, err := config.Load("analysis.yaml", nil)
//	if err != nil {
//		return err
//	}
//	p, err := a.ToPipe()
//	if err != nil {
//		return err
//	}
//	opts, err := a.Optimiser.MinimiseOptions()
package config
