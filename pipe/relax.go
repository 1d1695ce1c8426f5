package pipe

import (
	"fmt"
	"strings"
)

// RiType is a relaxation data type.
type RiType int

const (
	// R1 is the longitudinal relaxation rate.
	R1 RiType = iota
	// R2 is the transverse relaxation rate.
	R2
	// NOE is the steady-state heteronuclear NOE.
	NOE
)

// String implements fmt.Stringer.
func (t RiType) String() string {
	switch t {
	case R1:
		return "R1"
	case R2:
		return "R2"
	case NOE:
		return "NOE"
	default:
		return fmt.Sprintf("RiType(%d)", int(t))
	}
}

// ParseRiType accepts R1, R2 or NOE (case-insensitive).
func ParseRiType(s string) (RiType, error) {
	switch strings.ToUpper(s) {
	case "R1":
		return R1, nil
	case "R2":
		return R2, nil
	case "NOE":
		return NOE, nil
	}

	return 0, fmt.Errorf("ParseRiType(%q): %w", s, ErrUnknownRiType)
}

// RiInfo describes one relaxation data set: its type and the proton
// frequency of the spectrometer in Hz.
type RiInfo struct {
	ID   string
	Type RiType
	Frq  float64
}

// Observation is one measured relaxation value for a spin.
type Observation struct {
	Value float64
	Error float64
	Sim   []float64 // simulated data sets, one per Monte Carlo simulation
}

// Get returns the simulated value at sim, or the measured value when sim < 0.
func (o *Observation) Get(sim int) float64 {
	if sim < 0 || sim >= len(o.Sim) {
		return o.Value
	}

	return o.Sim[sim]
}
