package modsel

import (
	"fmt"

	"github.com/katalvlaran/modelfree/minimise"
	"github.com/katalvlaran/modelfree/pipe"
)

// Statistics are the inputs of the information criteria.
type Statistics struct {
	K    int     // free parameters
	N    int     // relaxation data points
	Chi2 float64 // minimised χ²
}

// ModelStatistics returns the statistics of one spin (global false) or of
// the whole pipe (global true). ok is false when the unit has no statistics:
// a deselected spin, no data or no recorded χ².
//
// Global χ² is the pipe χ² for the diff and all model types and the sum of
// the spin χ² for the per-spin types.
//
// Complexity: O(S·k).
func ModelStatistics(p *pipe.Pipe, spin *pipe.Spin, global bool) (st Statistics, ok bool, err error) {
	if !global {
		if spin == nil {
			return st, false, fmt.Errorf("ModelStatistics: %w", minimise.ErrSpinRequired)
		}
		if !spin.Select || spin.NumData() == 0 || !spin.Stats.Set {
			return st, false, nil
		}

		return Statistics{K: len(spin.Params), N: spin.NumData(), Chi2: spin.Stats.Chi2}, true, nil
	}

	mt, err := minimise.DetermineModelType(p)
	if err != nil {
		return st, false, fmt.Errorf("ModelStatistics: %w", err)
	}
	x, err := minimise.Assemble(p, mt, nil, -1)
	if err != nil {
		return st, false, fmt.Errorf("ModelStatistics: %w", err)
	}
	st.K = len(x)

	for _, s := range p.Selected() {
		if s.NumData() == 0 {
			continue
		}
		st.N += s.NumData()
		if mt.PerSpin() {
			if !s.Stats.Set {
				return Statistics{}, false, nil
			}
			st.Chi2 += s.Stats.Chi2
		}
	}
	if !mt.PerSpin() {
		if !p.Stats.Set {
			return Statistics{}, false, nil
		}
		st.Chi2 = p.Stats.Chi2
	}
	if st.N == 0 {
		return Statistics{}, false, nil
	}

	return st, true, nil
}
