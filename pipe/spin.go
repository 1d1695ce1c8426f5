package pipe

import (
	"maps"
	"slices"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/modelfree/diffusion"
	"github.com/katalvlaran/modelfree/models"
)

// Spin is one observable nuclear site.
type Spin struct {
	ID     string
	Select bool
	Fixed  bool // parameters are held fixed (diffusion-only optimisation)

	Model    string
	Equation models.Equation
	Params   []models.ParamName // active parameters, in vector order

	HeteroNucleus string // e.g. "15N"
	ProtonNucleus string // e.g. "1H"

	Data   map[string]*Observation // relaxation ID → observation
	Vector *r3.Vec                 // unit bond vector, nil when absent

	Stats     Stats
	SimStats  []Stats
	SimSelect []bool

	// Warning holds the last non-fatal problem that deselected the spin.
	Warning string

	values map[models.ParamName]*Param
}

// NewSpin returns a selected spin with no model.
func NewSpin(id string) *Spin {
	return &Spin{
		ID:     id,
		Select: true,
		Data:   make(map[string]*Observation),
		values: make(map[models.ParamName]*Param),
	}
}

// SetModel installs the model's equation and parameter list.
// Existing values are kept.
func (s *Spin) SetModel(m models.Model) {
	s.Model = m.Name
	s.Equation = m.Equation
	s.Params = slices.Clone(m.Params)
	if s.Params == nil {
		s.Params = []models.ParamName{}
	}
}

// HasModel reports whether a model has been set.
func (s *Spin) HasModel() bool { return s.Model != "" }

// Active reports whether p is in the spin's parameter list.
func (s *Spin) Active(p models.ParamName) bool { return slices.Contains(s.Params, p) }

// Param returns the record for p, or nil when no value is set.
func (s *Spin) Param(p models.ParamName) *Param { return s.values[p] }

// Ensure returns the record for p, creating a zero one if absent.
func (s *Spin) Ensure(p models.ParamName) *Param {
	if s.values == nil {
		s.values = make(map[models.ParamName]*Param)
	}
	rec, ok := s.values[p]
	if !ok {
		rec = &Param{}
		s.values[p] = rec
	}

	return rec
}

// Value returns the point estimate of p and whether it is set.
func (s *Spin) Value(p models.ParamName) (float64, bool) {
	rec, ok := s.values[p]
	if !ok {
		return 0, false
	}

	return rec.Value, true
}

// Get returns the value of p at sim (point estimate when sim < 0) and
// whether p is set.
func (s *Spin) Get(p models.ParamName, sim int) (float64, bool) {
	rec, ok := s.values[p]
	if !ok {
		return 0, false
	}

	return rec.Get(sim), true
}

// SetValue sets the point estimate of p.
func (s *Spin) SetValue(p models.ParamName, v float64) { s.Ensure(p).Value = v }

// Put sets p at sim (point estimate when sim < 0).
func (s *Spin) Put(p models.ParamName, sim int, v float64) { s.Ensure(p).Put(sim, v) }

// Unset removes p.
func (s *Spin) Unset(p models.ParamName) { delete(s.values, p) }

// Set reports whether a value is held for p.
func (s *Spin) Set(p models.ParamName) bool {
	_, ok := s.values[p]
	return ok
}

// SetData stores an observation for the relaxation ID.
func (s *Spin) SetData(ri string, value, err float64) {
	if s.Data == nil {
		s.Data = make(map[string]*Observation)
	}
	s.Data[ri] = &Observation{Value: value, Error: err}
}

// NumData returns the number of relaxation observations.
func (s *Spin) NumData() int { return len(s.Data) }

// SetVector stores the unit bond vector. A zero-length vector deselects the
// spin, records a warning and returns diffusion.ErrZeroVector.
func (s *Spin) SetVector(v r3.Vec) error {
	u, err := diffusion.Unit(v)
	if err != nil {
		s.Vector = nil
		s.Deselect("zero length bond vector")
		return err
	}
	s.Vector = &u

	return nil
}

// Deselect removes the spin from optimisation and records why.
func (s *Spin) Deselect(warning string) {
	s.Select = false
	s.Warning = warning
}

// DeselectSim removes simulation sim of the spin from further analysis and
// records why.
func (s *Spin) DeselectSim(sim int, warning string) {
	for len(s.SimSelect) <= sim {
		s.SimSelect = append(s.SimSelect, true)
	}
	s.SimSelect[sim] = false
	s.StatsAt(sim).Warning = warning
}

// SimSelected reports whether simulation sim is still selected.
func (s *Spin) SimSelected(sim int) bool {
	if sim < 0 || sim >= len(s.SimSelect) {
		return true
	}

	return s.SimSelect[sim]
}

// StatsAt returns the statistics slot for sim (point statistics when sim < 0).
func (s *Spin) StatsAt(sim int) *Stats {
	if sim < 0 {
		return &s.Stats
	}
	for len(s.SimStats) <= sim {
		s.SimStats = append(s.SimStats, Stats{})
	}

	return &s.SimStats[sim]
}

// Clone returns a deep copy of the spin.
func (s *Spin) Clone() *Spin {
	cp := *s
	cp.Params = slices.Clone(s.Params)
	cp.SimStats = slices.Clone(s.SimStats)
	cp.SimSelect = slices.Clone(s.SimSelect)
	if s.Vector != nil {
		v := *s.Vector
		cp.Vector = &v
	}
	cp.Data = make(map[string]*Observation, len(s.Data))
	for k, o := range s.Data {
		oc := *o
		oc.Sim = slices.Clone(o.Sim)
		cp.Data[k] = &oc
	}
	cp.values = make(map[models.ParamName]*Param, len(s.values))
	for k, rec := range s.values {
		cp.values[k] = rec.clone()
	}

	return &cp
}

// SetParams returns the names of all parameters holding a value, sorted.
func (s *Spin) SetParams() []models.ParamName {
	return slices.Sorted(maps.Keys(s.values))
}
