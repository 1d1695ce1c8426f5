package minimise

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/modelfree/diffusion"
	"github.com/katalvlaran/modelfree/models"
	"github.com/katalvlaran/modelfree/physics"
	"github.com/katalvlaran/modelfree/pipe"
)

// ModelType classifies which parameters a run optimises.
type ModelType int

const (
	MF ModelType = iota
	LocalTm
	Diff
	All
)

// String returns the conventional lower-case name.
func (t ModelType) String() string {
	switch t {
	case MF:
		return "mf"
	case LocalTm:
		return "local_tm"
	case Diff:
		return "diff"
	case All:
		return "all"
	}

	return fmt.Sprintf("ModelType(%d)", int(t))
}

// PerSpin reports whether runs of this type are split into spin instances.
func (t ModelType) PerSpin() bool { return t == MF || t == LocalTm }

// HasTensor reports whether the tensor parameters are in the vector.
func (t ModelType) HasTensor() bool { return t == Diff || t == All }

// DetermineModelType derives the model type from the selected spins and the
// tensor.
//
// Complexity: O(S·k) for S selected spins with k parameters each.
func DetermineModelType(p *pipe.Pipe) (ModelType, error) {
	var (
		sel      = p.Selected()
		local    int
		allFixed = true
	)
	for _, s := range sel {
		if slices.Contains(s.Params, models.LocalTm) {
			local++
		}
		if !s.Fixed {
			allFixed = false
		}
	}
	if local > 0 {
		if local != len(sel) {
			return 0, fmt.Errorf("DetermineModelType: %d of %d spins: %w", local, len(sel), ErrLocalTmMismatch)
		}
		return LocalTm, nil
	}

	if p.Tensor == nil {
		return 0, fmt.Errorf("DetermineModelType: %w", ErrNoTensor)
	}
	switch {
	case allFixed && p.Tensor.Fixed:
		return 0, fmt.Errorf("DetermineModelType: %w", ErrAllFixed)
	case allFixed:
		return Diff, nil
	case p.Tensor.Fixed:
		return MF, nil
	}

	return All, nil
}

// Spins returns the spins taking part in a run of type mt: spin alone when
// non-nil, otherwise the selected spins (excluding fixed ones for MF).
func Spins(p *pipe.Pipe, mt ModelType, spin *pipe.Spin) []*pipe.Spin {
	if spin != nil {
		return []*pipe.Spin{spin}
	}
	out := p.Selected()
	if mt == MF {
		out = slices.DeleteFunc(out, func(s *pipe.Spin) bool { return s.Fixed })
	}

	return out
}

// Precheck validates the preconditions of a run of type mt.
//
// Stage 1: per selected spin: model, nuclei, r/CSA values.
// Stage 2: tensor presence and bond vectors under non-spherical tensors.
func Precheck(p *pipe.Pipe, mt ModelType) error {
	sel := p.Selected()
	for _, s := range sel {
		if !s.HasModel() {
			return fmt.Errorf("Precheck: spin %q: %w", s.ID, ErrNoModel)
		}
		if s.HeteroNucleus == "" || s.ProtonNucleus == "" {
			return fmt.Errorf("Precheck: spin %q: %w", s.ID, ErrNoNucleus)
		}
		for _, n := range []string{s.HeteroNucleus, s.ProtonNucleus} {
			if _, err := physics.Gyro(n); err != nil {
				return fmt.Errorf("Precheck: spin %q: %w", s.ID, err)
			}
		}
		for _, q := range []models.ParamName{models.R, models.CSA} {
			if !s.Active(q) && !s.Set(q) {
				return fmt.Errorf("Precheck: %w", &MissingValueError{Spin: s.ID, Param: q})
			}
		}
	}

	if mt == LocalTm {
		return nil
	}
	if p.Tensor == nil {
		return fmt.Errorf("Precheck: %w", ErrNoTensor)
	}
	if p.Tensor.Shape != diffusion.Sphere {
		for _, s := range sel {
			if s.Vector == nil {
				return fmt.Errorf("Precheck: spin %q: %w", s.ID, ErrNoVector)
			}
		}
	}

	return nil
}
