package pipe

import (
	"fmt"
	"slices"
)

// Pipe is one named analysis context.
type Pipe struct {
	Name   string
	Tensor *Tensor // nil when no diffusion tensor is defined
	Spins  []*Spin

	ri    []RiInfo // registration order
	riIdx map[string]int

	// Global statistics, used for the diff and all model types.
	Stats    Stats
	SimStats []Stats

	// Monte Carlo state.
	SimNumber int
	SimState  bool
	SimSelect []bool // global simulation selection (diff and all types)
}

// New returns an empty pipe.
func New(name string) *Pipe {
	return &Pipe{Name: name, riIdx: make(map[string]int)}
}

// AddSpin appends a spin. Duplicate IDs are rejected.
func (p *Pipe) AddSpin(s *Spin) error {
	if _, err := p.Spin(s.ID); err == nil {
		return fmt.Errorf("AddSpin(%q): %w", s.ID, ErrSpinExists)
	}
	p.Spins = append(p.Spins, s)

	return nil
}

// Spin returns the spin with the given ID.
func (p *Pipe) Spin(id string) (*Spin, error) {
	for _, s := range p.Spins {
		if s.ID == id {
			return s, nil
		}
	}

	return nil, fmt.Errorf("Spin(%q): %w", id, ErrNoSpin)
}

// Selected returns the selected spins in sequence order.
func (p *Pipe) Selected() []*Spin {
	out := make([]*Spin, 0, len(p.Spins))
	for _, s := range p.Spins {
		if s.Select {
			out = append(out, s)
		}
	}

	return out
}

// AddRelaxation registers a relaxation data set. Re-registering the same ID
// with identical type and frequency is a no-op.
func (p *Pipe) AddRelaxation(id string, typ RiType, frq float64) error {
	if frq <= 0 {
		return fmt.Errorf("AddRelaxation(%q): %g: %w", id, frq, ErrBadFrequency)
	}
	if p.riIdx == nil {
		p.riIdx = make(map[string]int)
	}
	if i, ok := p.riIdx[id]; ok {
		if p.ri[i].Type != typ || p.ri[i].Frq != frq {
			return fmt.Errorf("AddRelaxation(%q): %w", id, ErrRiExists)
		}
		return nil
	}
	p.riIdx[id] = len(p.ri)
	p.ri = append(p.ri, RiInfo{ID: id, Type: typ, Frq: frq})

	return nil
}

// Relaxation returns the metadata of the relaxation ID.
func (p *Pipe) Relaxation(id string) (RiInfo, error) {
	i, ok := p.riIdx[id]
	if !ok {
		return RiInfo{}, fmt.Errorf("Relaxation(%q): %w", id, ErrUnknownRi)
	}

	return p.ri[i], nil
}

// RiIDs returns the registered relaxation IDs in registration order.
func (p *Pipe) RiIDs() []string {
	out := make([]string, len(p.ri))
	for i, r := range p.ri {
		out[i] = r.ID
	}

	return out
}

// SpinRi returns the relaxation metadata for which the spin has data, in
// registration order.
func (p *Pipe) SpinRi(s *Spin) []RiInfo {
	out := make([]RiInfo, 0, len(s.Data))
	for _, r := range p.ri {
		if _, ok := s.Data[r.ID]; ok {
			out = append(out, r)
		}
	}

	return out
}

// SetData stores an observation on a spin for a registered relaxation ID.
func (p *Pipe) SetData(spinID, ri string, value, err float64) error {
	if _, ok := p.riIdx[ri]; !ok {
		return fmt.Errorf("SetData(%q, %q): %w", spinID, ri, ErrUnknownRi)
	}
	s, e := p.Spin(spinID)
	if e != nil {
		return e
	}
	s.SetData(ri, value, err)

	return nil
}

// Frequencies returns the distinct spectrometer frequencies of the given
// relaxation sets in first-seen order.
func Frequencies(ri []RiInfo) []float64 {
	var out []float64
	for _, r := range ri {
		if !slices.Contains(out, r.Frq) {
			out = append(out, r.Frq)
		}
	}

	return out
}

// StatsAt returns the global statistics slot for sim (point statistics when
// sim < 0).
func (p *Pipe) StatsAt(sim int) *Stats {
	if sim < 0 {
		return &p.Stats
	}
	for len(p.SimStats) <= sim {
		p.SimStats = append(p.SimStats, Stats{})
	}

	return &p.SimStats[sim]
}

// SimSelected reports whether the global simulation sim is still selected.
func (p *Pipe) SimSelected(sim int) bool {
	if sim < 0 || sim >= len(p.SimSelect) {
		return true
	}

	return p.SimSelect[sim]
}

// DeselectSim removes the global simulation sim from further analysis.
func (p *Pipe) DeselectSim(sim int, warning string) {
	for len(p.SimSelect) <= sim {
		p.SimSelect = append(p.SimSelect, true)
	}
	p.SimSelect[sim] = false
	p.StatsAt(sim).Warning = warning
}

// CheckSim validates a simulation index against the Monte Carlo setup.
// Negative indices (no simulation) are always valid.
func (p *Pipe) CheckSim(sim int) error {
	if sim < 0 {
		return nil
	}
	if p.SimNumber == 0 {
		return ErrNoSims
	}
	if sim >= p.SimNumber {
		return fmt.Errorf("sim %d of %d: %w", sim, p.SimNumber, ErrSimIndex)
	}

	return nil
}

// Clone returns a deep copy of the pipe under a new name.
func (p *Pipe) Clone(name string) *Pipe {
	cp := &Pipe{
		Name:      name,
		Tensor:    p.Tensor.Clone(),
		Spins:     make([]*Spin, len(p.Spins)),
		ri:        slices.Clone(p.ri),
		riIdx:     make(map[string]int, len(p.riIdx)),
		Stats:     p.Stats,
		SimStats:  slices.Clone(p.SimStats),
		SimNumber: p.SimNumber,
		SimState:  p.SimState,
		SimSelect: slices.Clone(p.SimSelect),
	}
	for i, s := range p.Spins {
		cp.Spins[i] = s.Clone()
	}
	for k, v := range p.riIdx {
		cp.riIdx[k] = v
	}

	return cp
}
