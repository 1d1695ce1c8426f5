package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/katalvlaran/modelfree/config"
	"github.com/katalvlaran/modelfree/internal/logging"
	"github.com/katalvlaran/modelfree/metrics"
	"github.com/katalvlaran/modelfree/modsel"
	"github.com/katalvlaran/modelfree/pipe"
)

func newSelectCmd() *cobra.Command {
	var (
		out    outputs
		method string
		target string
	)
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "select ANALYSIS...",
		Short: "Optimise several candidate analyses and keep the best model per spin",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := modsel.ParseMethod(method)
			if err != nil {
				return err
			}
			log := logging.Default()
			rec := metrics.NewRecorder()

			st := pipe.NewStore()
			names := make([]string, 0, len(args))
			var last *config.Analysis
			for _, path := range args {
				a, err := config.Load(path, v)
				if err != nil {
					return err
				}
				p, err := analyse(cmd.Context(), a, log, rec)
				if err != nil {
					return err
				}
				if err = st.Add(p); err != nil {
					return err
				}
				names = append(names, p.Name)
				last = a
			}

			opts := modsel.DefaultOptions()
			opts.Logger = log
			if opts.Minimise, err = last.Optimiser.MinimiseOptions(); err != nil {
				return err
			}
			opts.Minimise.Logger = log
			choices, err := modsel.Select(cmd.Context(), st, m, target, names, opts)
			if err != nil {
				return err
			}
			for _, c := range choices {
				unit := c.Spin
				if c.Global {
					unit = "(global)"
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "%-12s %-12s %s=%.6g\n", unit, c.Pipe, m, c.Criterion)
			}

			p, err := st.Get(target)
			if err != nil {
				return err
			}

			return out.write(cmd.OutOrStdout(), p, rec)
		},
	}
	cmd.Flags().StringVar(&method, "method", string(modsel.AICMethod), "selection method (AIC, AICc, BIC, CV)")
	cmd.Flags().StringVar(&target, "target", "final", "name of the pipe holding the selected models")
	out.flags(cmd)
	cobra.CheckErr(settingFlags(cmd.Flags(), v))

	return cmd
}
