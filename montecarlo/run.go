package montecarlo

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/modelfree/eliminate"
	"github.com/katalvlaran/modelfree/internal/logging"
	"github.com/katalvlaran/modelfree/minimise"
	"github.com/katalvlaran/modelfree/pipe"
)

// DefaultSeed seeds the noise source when Options.Seed is zero.
const DefaultSeed = 1

// Options configures Run.
type Options struct {
	N      int        // number of simulations
	Method DataMethod // centre of the simulated data
	Seed   uint64     // noise seed, DefaultSeed when 0

	// Minimise configures every simulation fit. SimIndex is overwritten.
	Minimise minimise.Options

	// Eliminate, when set, vets every simulation after its fit.
	Eliminate *eliminate.Options

	// Workers bounds the number of concurrently minimised simulations.
	Workers int

	Logger logr.Logger
}

// DefaultOptions returns 500 back-calculated simulations minimised
// sequentially with the default minimiser and elimination settings.
func DefaultOptions() Options {
	el := eliminate.DefaultOptions()

	return Options{
		N:         500,
		Method:    BackCalc,
		Seed:      DefaultSeed,
		Minimise:  minimise.DefaultOptions(),
		Eliminate: &el,
		Workers:   1,
	}
}

// Run executes the Monte Carlo protocol on the fitted pipe p and leaves the
// parameter errors in the Err field of every parameter record.
//
// Stage 1: setup, data creation and initial values.
// Stage 2: per simulation minimisation and elimination.
// Stage 3: error analysis.
func Run(ctx context.Context, p *pipe.Pipe, opts Options) error {
	log := logging.OrDefault(opts.Logger)
	seed := opts.Seed
	if seed == 0 {
		seed = DefaultSeed
	}

	// Stage 1: simulated data.
	if err := Setup(p, opts.N); err != nil {
		return fmt.Errorf("Run: %w", err)
	}
	if err := CreateData(p, opts.Method, rand.NewPCG(seed, seed)); err != nil {
		return fmt.Errorf("Run: %w", err)
	}
	if err := InitialValues(p); err != nil {
		return fmt.Errorf("Run: %w", err)
	}
	log.V(logging.DEBUG).Info("monte carlo", "pipe", p.Name, "sims", opts.N, "method", opts.Method.String(), "seed", seed)

	// Stage 2: simulations.
	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Workers, 1))
	for sim := range opts.N {
		g.Go(func() error {
			mo := opts.Minimise
			mo.SimIndex = sim
			if mo.Logger.GetSink() == nil {
				mo.Logger = opts.Logger
			}
			if err := minimise.Minimise(gctx, p, mo); err != nil {
				return fmt.Errorf("simulation %d: %w", sim, err)
			}
			if opts.Eliminate != nil {
				eo := *opts.Eliminate
				eo.SimIndex = sim
				if _, err := eliminate.Eliminate(p, eo); err != nil {
					return fmt.Errorf("simulation %d: %w", sim, err)
				}
			}
			log.V(logging.TRACE).Info("simulation done", "sim", sim)

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("Run: %w", err)
	}
	log.V(logging.DEBUG).Info("simulations done", "pipe", p.Name, "elapsed", time.Since(start))

	// Stage 3: errors.
	if err := ErrorAnalysis(p); err != nil {
		return fmt.Errorf("Run: %w", err)
	}
	p.SimState = false

	return nil
}
