package minimise

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-logr/logr"

	"github.com/katalvlaran/modelfree/optim"
)

// DefaultGridInc is the per-parameter increment count of GridSearch when
// Options.GridInc is empty.
const DefaultGridInc = 21

// ErrBadOption indicates an invalid Options field.
var ErrBadOption = errors.New("minimise: invalid option")

// Options configures Calculate, GridSearch and Minimise.
type Options struct {
	Algorithm optim.Algorithm

	// Constraints enables the linear constraints (Method of Multipliers and
	// grid node filtering).
	Constraints bool

	// Scaling enables diagonal parameter scaling.
	Scaling bool

	// TimeUpperBound adds the te, ts ≤ 2·tm rows to the constraints.
	TimeUpperBound bool

	// GridInc holds the grid increments per parameter. A single value applies
	// to every parameter. When non-empty, Minimise starts from a grid search.
	GridInc []int

	FuncTol float64
	GradTol float64
	MaxIter int

	// SimIndex selects a Monte Carlo simulation; -1 works on point values.
	SimIndex int

	// Workers bounds the number of concurrent per-spin instances.
	Workers int

	Logger   logr.Logger
	Recorder Recorder
}

// DefaultOptions returns BFGS with constraints, scaling and the te/ts upper
// bound on, func_tol 1e-25, 1e6 iterations and one worker.
func DefaultOptions() Options {
	return Options{
		Algorithm:      optim.BFGS,
		Constraints:    true,
		Scaling:        true,
		TimeUpperBound: true,
		FuncTol:        1e-25,
		MaxIter:        1_000_000,
		SimIndex:       -1,
		Workers:        1,
	}
}

// Validate checks the option values.
// Complexity: O(len(GridInc)).
func (o Options) Validate() error {
	if _, err := optim.ParseAlgorithm(string(o.Algorithm)); err != nil {
		return err
	}
	if o.MaxIter <= 0 {
		return fmt.Errorf("MaxIter %d: %w", o.MaxIter, ErrBadOption)
	}
	if o.Workers < 0 {
		return fmt.Errorf("Workers %d: %w", o.Workers, ErrBadOption)
	}
	if o.FuncTol < 0 || o.GradTol < 0 {
		return fmt.Errorf("negative tolerance: %w", ErrBadOption)
	}
	for _, n := range o.GridInc {
		if n < 1 {
			return fmt.Errorf("GridInc %d: %w", n, ErrBadOption)
		}
	}

	return nil
}

// expandInc maps GridInc onto n parameters.
func (o Options) expandInc(n int) ([]int, error) {
	inc := make([]int, n)
	switch len(o.GridInc) {
	case 0:
		for i := range inc {
			inc[i] = DefaultGridInc
		}
	case 1:
		for i := range inc {
			inc[i] = o.GridInc[0]
		}
	case n:
		copy(inc, o.GridInc)
	default:
		return nil, fmt.Errorf("GridInc has %d entries for %d params: %w", len(o.GridInc), n, ErrBadOption)
	}

	return inc, nil
}

// Op names a driver operation.
type Op string

const (
	OpCalculate Op = "calculate"
	OpGrid      Op = "grid"
	OpMinimise  Op = "minimise"
)

// Event describes one finished optimisation instance.
type Event struct {
	Op        Op
	ModelType ModelType
	Spin      string // empty for global instances
	Result    optim.Result
	Elapsed   time.Duration
	Err       error
}

// Recorder observes finished instances. Implementations must be safe for
// concurrent use.
type Recorder interface {
	Record(Event)
}
