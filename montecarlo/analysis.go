package montecarlo

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/modelfree/pipe"
)

// ErrorAnalysis sets the error of every tensor parameter and every parameter
// of the selected spins to the sample standard deviation (n − 1) of its
// selected simulations. Fewer than two selected simulations leave the error
// at zero.
//
// Complexity: O(P·n) for P parameters.
func ErrorAnalysis(p *pipe.Pipe) error {
	n := p.SimNumber
	if n == 0 {
		return fmt.Errorf("ErrorAnalysis: %w", pipe.ErrNoSims)
	}
	if p.Tensor != nil {
		for _, q := range p.Tensor.Shape.Params() {
			rec := p.Tensor.Param(q)
			rec.Err = sd(rec, n, p.SimSelected)
		}
	}
	for _, s := range p.Selected() {
		keep := func(i int) bool { return p.SimSelected(i) && s.SimSelected(i) }
		for _, q := range s.SetParams() {
			rec := s.Param(q)
			rec.Err = sd(rec, n, keep)
		}
	}

	return nil
}

func sd(rec *pipe.Param, n int, keep func(int) bool) float64 {
	xs := make([]float64, 0, n)
	for i := 0; i < n && i < len(rec.Sim); i++ {
		if keep(i) {
			xs = append(xs, rec.Sim[i])
		}
	}
	if len(xs) < 2 {
		return 0
	}

	return stat.StdDev(xs, nil)
}
