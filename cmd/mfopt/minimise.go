package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/katalvlaran/modelfree/config"
	"github.com/katalvlaran/modelfree/eliminate"
	"github.com/katalvlaran/modelfree/export"
	"github.com/katalvlaran/modelfree/internal/logging"
	"github.com/katalvlaran/modelfree/metrics"
	"github.com/katalvlaran/modelfree/minimise"
	"github.com/katalvlaran/modelfree/montecarlo"
	"github.com/katalvlaran/modelfree/pipe"
)

// outputs are the result destinations shared by minimise and select.
type outputs struct {
	yaml    string
	xlsx    string
	metrics string
}

func (o *outputs) flags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.yaml, "out", "o", "-", "YAML results file, - for stdout")
	cmd.Flags().StringVar(&o.xlsx, "xlsx", "", "spreadsheet results file")
	cmd.Flags().StringVar(&o.metrics, "metrics", "", "Prometheus textfile of the optimisation metrics")
}

func (o *outputs) write(w io.Writer, p *pipe.Pipe, rec *metrics.Recorder) error {
	res := export.FromPipe(p)
	if o.yaml == "-" {
		if err := export.WriteYAML(w, res); err != nil {
			return err
		}
	} else if o.yaml != "" {
		f, err := os.Create(o.yaml)
		if err != nil {
			return err
		}
		if err = export.WriteYAML(f, res); err != nil {
			_ = f.Close()
			return err
		}
		if err = f.Close(); err != nil {
			return err
		}
	}
	if o.xlsx != "" {
		if err := export.WriteXLSX(o.xlsx, res); err != nil {
			return err
		}
	}
	if o.metrics != "" {
		return rec.WriteTextfile(o.metrics)
	}

	return nil
}

func newMinimiseCmd() *cobra.Command {
	var out outputs
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "minimise ANALYSIS",
		Short: "Optimise the model-free parameters of one analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := config.Load(args[0], v)
			if err != nil {
				return err
			}
			rec := metrics.NewRecorder()
			p, err := analyse(cmd.Context(), a, logging.Default(), rec)
			if err != nil {
				return err
			}

			return out.write(cmd.OutOrStdout(), p, rec)
		},
	}
	out.flags(cmd)
	cobra.CheckErr(settingFlags(cmd.Flags(), v))

	return cmd
}

// analyse runs the protocol on one analysis and returns its pipe.
//
// Stage 1: build the pipe and deselect spins that cannot be fitted.
// Stage 2: grid search (when configured) and minimisation.
// Stage 3: model elimination, when enabled.
// Stage 4: Monte Carlo error analysis, when simulations are requested.
func analyse(ctx context.Context, a *config.Analysis, log logr.Logger, rec minimise.Recorder) (*pipe.Pipe, error) {
	// Stage 1
	p, err := a.ToPipe()
	if err != nil {
		return nil, err
	}
	dropped, err := eliminate.OverfitDeselect(p, log)
	if err != nil {
		return nil, err
	}
	if len(dropped) > 0 {
		log.Info("spins deselected before optimisation", "pipe", p.Name, "spins", dropped)
	}

	// Stage 2
	opts, err := a.Optimiser.MinimiseOptions()
	if err != nil {
		return nil, err
	}
	opts.Logger = log
	opts.Recorder = rec
	if err = minimise.Minimise(ctx, p, opts); err != nil {
		return nil, fmt.Errorf("pipe %q: %w", p.Name, err)
	}

	// Stage 3
	if el := a.Eliminate.Options(); el != nil {
		el.Logger = log
		if _, err = eliminate.Eliminate(p, *el); err != nil {
			return nil, fmt.Errorf("pipe %q: %w", p.Name, err)
		}
	}

	// Stage 4
	if a.MonteCarlo.Sims > 0 {
		mc, err := a.MonteCarloOptions()
		if err != nil {
			return nil, err
		}
		mc.Logger = log
		mc.Minimise.Logger = log
		mc.Minimise.Recorder = rec
		if err = montecarlo.Run(ctx, p, mc); err != nil {
			return nil, fmt.Errorf("pipe %q: %w", p.Name, err)
		}
	}
	log.V(logging.DEBUG).Info("analysis complete", "pipe", p.Name, "chi2", p.Stats.Chi2)

	return p, nil
}
