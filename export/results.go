package export

import (
	"slices"

	"github.com/katalvlaran/modelfree/pipe"
)

// Results is the exported view of one pipe.
type Results struct {
	Pipe   string        `yaml:"pipe"`
	Sims   int           `yaml:"sims,omitempty"`
	Tensor *TensorResult `yaml:"tensor,omitempty"`
	Stats  *StatsResult  `yaml:"stats,omitempty"`
	Spins  []SpinResult  `yaml:"spins"`
}

// TensorResult is the exported diffusion tensor.
type TensorResult struct {
	Shape  string        `yaml:"shape"`
	Fixed  bool          `yaml:"fixed"`
	Params []ParamResult `yaml:"params"`
}

// ParamResult is one parameter value and its error.
type ParamResult struct {
	Name  string  `yaml:"name"`
	Value float64 `yaml:"value"`
	Err   float64 `yaml:"error,omitempty"`
}

// StatsResult are exported minimisation statistics.
type StatsResult struct {
	Chi2    float64 `yaml:"chi2"`
	Iter    int     `yaml:"iter"`
	FCount  int     `yaml:"f_count"`
	GCount  int     `yaml:"g_count"`
	HCount  int     `yaml:"h_count"`
	Warning string  `yaml:"warning,omitempty"`
}

// SpinResult is one exported spin.
type SpinResult struct {
	ID       string        `yaml:"id"`
	Select   bool          `yaml:"select"`
	Model    string        `yaml:"model,omitempty"`
	Equation string        `yaml:"equation,omitempty"`
	Params   []ParamResult `yaml:"params,omitempty"`
	Stats    *StatsResult  `yaml:"stats,omitempty"`
	Warning  string        `yaml:"warning,omitempty"`
}

// Param returns the named parameter and whether it is present.
func (s SpinResult) Param(name string) (ParamResult, bool) {
	i := slices.IndexFunc(s.Params, func(p ParamResult) bool { return p.Name == name })
	if i < 0 {
		return ParamResult{}, false
	}

	return s.Params[i], true
}

// FromPipe flattens p. Spin parameters are listed in model order followed
// by the other set parameters (r, CSA) in name order.
func FromPipe(p *pipe.Pipe) Results {
	out := Results{Pipe: p.Name, Sims: p.SimNumber, Spins: make([]SpinResult, 0, len(p.Spins))}
	if t := p.Tensor; t != nil {
		tr := &TensorResult{Shape: t.Shape.String(), Fixed: t.Fixed}
		for _, q := range t.Shape.Params() {
			rec := t.Param(q)
			tr.Params = append(tr.Params, ParamResult{Name: string(q), Value: rec.Value, Err: rec.Err})
		}
		out.Tensor = tr
	}
	out.Stats = stats(p.Stats)

	for _, s := range p.Spins {
		sr := SpinResult{ID: s.ID, Select: s.Select, Model: s.Model, Warning: s.Warning, Stats: stats(s.Stats)}
		if s.HasModel() {
			sr.Equation = s.Equation.String()
		}
		names := slices.Clone(s.Params)
		for _, q := range s.SetParams() {
			if !slices.Contains(names, q) {
				names = append(names, q)
			}
		}
		for _, q := range names {
			if rec := s.Param(q); rec != nil {
				sr.Params = append(sr.Params, ParamResult{Name: string(q), Value: rec.Value, Err: rec.Err})
			}
		}
		out.Spins = append(out.Spins, sr)
	}

	return out
}

func stats(st pipe.Stats) *StatsResult {
	if !st.Set {
		return nil
	}

	return &StatsResult{
		Chi2:    st.Chi2,
		Iter:    st.Iter,
		FCount:  st.FCount,
		GCount:  st.GCount,
		HCount:  st.HCount,
		Warning: st.Warning,
	}
}
