package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/katalvlaran/modelfree/config"
	"github.com/katalvlaran/modelfree/internal/logging"
)

func newRootCmd() *cobra.Command {
	var (
		verbosity int
		dev       bool
	)
	root := &cobra.Command{
		Use:          "mfopt",
		Short:        "Model-free optimisation of NMR relaxation data",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			l, err := logging.NewLogger(verbosity, dev)
			if err != nil {
				return err
			}
			logging.SetDefault(l)

			return nil
		},
	}
	root.PersistentFlags().IntVarP(&verbosity, "verbosity", "v", logging.INFO, "log verbosity (0 info, 1 debug, 2 trace)")
	root.PersistentFlags().BoolVar(&dev, "dev", false, "human readable console logs")

	root.AddCommand(newMinimiseCmd(), newSelectCmd(), newCatalogueCmd())

	return root
}

// settingFlags registers the flags shared by minimise and select and binds
// them onto v.
func settingFlags(fs *pflag.FlagSet, v *viper.Viper) error {
	fs.String("algorithm", "", "inner minimiser (newton, bfgs, lbfgs, cg, simplex, sd)")
	fs.IntSlice("grid-inc", nil, "grid search increments per parameter")
	fs.Int("max-iter", 0, "maximum number of iterations")
	fs.Int("workers", 0, "concurrent per-spin instances")
	fs.Bool("constraints", true, "linear constraints")
	fs.Bool("scaling", true, "diagonal parameter scaling")
	fs.Int("mc", 0, "number of Monte Carlo simulations")
	fs.Uint64("seed", 0, "Monte Carlo noise seed")
	fs.Bool("eliminate", false, "eliminate failed model-free models")

	binds := map[string]string{
		config.KeyAlgorithm:   "algorithm",
		config.KeyGridInc:     "grid-inc",
		config.KeyMaxIter:     "max-iter",
		config.KeyWorkers:     "workers",
		config.KeyConstraints: "constraints",
		config.KeyScaling:     "scaling",
		config.KeySims:        "mc",
		config.KeySeed:        "seed",
		config.KeyEliminate:   "eliminate",
	}
	for key, name := range binds {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return err
		}
	}

	return nil
}
