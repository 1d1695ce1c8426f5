package eliminate

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/katalvlaran/modelfree/diffusion"
	"github.com/katalvlaran/modelfree/internal/logging"
	"github.com/katalvlaran/modelfree/pipe"
)

// MinData is the number of relaxation data points a spin with free
// parameters needs.
const MinData = 3

// Overfit returns why s cannot be fitted, or "" when it can.
func Overfit(s *pipe.Spin, needVector bool) string {
	n, k := s.NumData(), len(s.Params)
	switch {
	case n == 0:
		return "no relaxation data"
	case k > n:
		return fmt.Sprintf("%d parameters for %d data points", k, n)
	case k > 0 && n < MinData:
		return fmt.Sprintf("only %d relaxation data points", n)
	case needVector && s.Vector == nil:
		return "no bond vector for a non-spherical tensor"
	}

	return ""
}

// OverfitDeselect deselects the selected spins with insufficient data and
// returns their IDs.
//
// Complexity: O(S).
func OverfitDeselect(p *pipe.Pipe, log logr.Logger) ([]string, error) {
	if len(p.Spins) == 0 {
		return nil, fmt.Errorf("OverfitDeselect: %w", ErrNoSpins)
	}
	log = logging.OrDefault(log)
	needVector := p.Tensor != nil && p.Tensor.Shape != diffusion.Sphere

	var out []string
	for _, s := range p.Selected() {
		if reason := Overfit(s, needVector); reason != "" {
			s.Deselect(reason)
			out = append(out, s.ID)
			log.Info("deselecting spin", "spin", s.ID, "reason", reason)
		}
	}

	return out, nil
}
