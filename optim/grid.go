package optim

import (
	"fmt"
	"slices"
)

// MaxGridNodes bounds the lattice size of Grid.
const MaxGridNodes = 100_000_000

// initialFMin seeds the grid minimum.
const initialFMin = 1e300

// Axis returns the n linearly spaced points of [lower, upper]. A single
// increment yields the midpoint.
func Axis(n int, lower, upper float64) []float64 {
	if n == 1 {
		return []float64{(lower + upper) / 2}
	}
	pts := make([]float64, n)
	for i := range pts {
		pts[i] = lower + float64(i)*(upper-lower)/float64(n-1)
	}

	return pts
}

// GridNodes returns the number of lattice nodes spanned by inc. Lattices of
// up to MaxGridNodes nodes are accepted.
func GridNodes(inc []int) (int, error) {
	total := 1
	for k, v := range inc {
		if v < 1 {
			return 0, fmt.Errorf("dimension %d has %d increments: %w", k, v, ErrGridBounds)
		}
		if total > MaxGridNodes/v {
			return 0, fmt.Errorf("more than %d nodes: %w", MaxGridNodes, ErrGridTooLarge)
		}
		total *= v
	}

	return total, nil
}

// Grid evaluates f on the regular lattice spanned by inc points per
// dimension between lower and upper. Nodes violating c (when non-nil) are
// skipped. The first dimension varies fastest and ties keep the earliest node.
//
// Result.Iter and Result.FCount are the number of evaluated nodes. A
// zero-dimensional problem is evaluated once with WarnNoOptimised.
//
// Complexity: O(Π inc · cost(f)).
func Grid(f func([]float64) float64, inc []int, lower, upper []float64, c *Constraints) (Result, error) {
	if f == nil {
		return Result{}, fmt.Errorf("Grid: %w", ErrNilFunc)
	}
	n := len(inc)
	if len(lower) != n || len(upper) != n {
		return Result{}, fmt.Errorf("Grid: %d incs, %d lower, %d upper: %w", n, len(lower), len(upper), ErrGridBounds)
	}
	if n == 0 {
		x := []float64{}
		return Result{X: x, F: f(x), Iter: 1, FCount: 1, Warning: WarnNoOptimised}, nil
	}
	if c != nil {
		if err := c.check(n); err != nil {
			return Result{}, fmt.Errorf("Grid: %w", err)
		}
	}

	// Stage 1: size the lattice and build the axes.
	total, err := GridNodes(inc)
	if err != nil {
		return Result{}, fmt.Errorf("Grid: %w", err)
	}
	axes := make([][]float64, n)
	for k := range inc {
		axes[k] = Axis(inc[k], lower[k], upper[k])
	}

	// Stage 2: walk the lattice odometer-style.
	var (
		step = make([]int, n)
		x    = make([]float64, n)
		res  = Result{X: slices.Clone(lower), F: initialFMin}
	)
	for k := range x {
		x[k] = axes[k][0]
	}
	for node := 0; node < total; node++ {
		if c == nil || c.Satisfied(x) {
			v := f(x)
			res.FCount++
			if v < res.F {
				res.F = v
				copy(res.X, x)
			}
		}
		for k := 0; k < n; k++ {
			if step[k]+1 < inc[k] {
				step[k]++
				x[k] = axes[k][step[k]]
				break
			}
			step[k] = 0
			x[k] = axes[k][0]
		}
	}
	res.Iter = res.FCount

	return res, nil
}
