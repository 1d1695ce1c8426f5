package config

import (
	"fmt"

	"github.com/katalvlaran/modelfree/diffusion"
	"github.com/katalvlaran/modelfree/models"
	"github.com/katalvlaran/modelfree/physics"
	"github.com/katalvlaran/modelfree/pipe"
)

// Default nuclei of a spin.
const (
	DefaultHeteronucleus = "15N"
	DefaultProton        = "1H"
)

// Analysis is one analysis file.
type Analysis struct {
	Pipe       string       `yaml:"pipe"`
	Tensor     *Tensor      `yaml:"tensor,omitempty"`
	Relaxation []Relaxation `yaml:"relaxation"`
	Spins      []Spin       `yaml:"spins"`

	Optimiser  Optimiser  `yaml:"optimiser"`
	MonteCarlo MonteCarlo `yaml:"montecarlo"`
	Eliminate  Eliminate  `yaml:"eliminate"`
}

// Tensor describes the diffusion tensor. Params are ordered as the shape's
// parameter list (tm first).
type Tensor struct {
	Shape    string  `yaml:"shape"`
	Spheroid string  `yaml:"spheroid,omitempty"`
	Fixed    bool    `yaml:"fixed,omitempty"`
	Params   []Value `yaml:"params"`
}

// Relaxation is one relaxation data set. Frequency is the proton frequency
// of the spectrometer in Hz.
type Relaxation struct {
	ID        string  `yaml:"id"`
	Type      string  `yaml:"type"`
	Frequency float64 `yaml:"frequency"`
}

// Datum is one measured value of a spin.
type Datum struct {
	RI    string  `yaml:"ri"`
	Value float64 `yaml:"value"`
	Error float64 `yaml:"error"`
}

// Spin describes one spin. Model is a catalogue name unless Equation or
// Params are given, in which case the model is built with models.Create.
type Spin struct {
	ID            string           `yaml:"id"`
	Model         string           `yaml:"model"`
	Equation      string           `yaml:"equation,omitempty"`
	Params        []string         `yaml:"params,omitempty"`
	Heteronucleus string           `yaml:"heteronucleus,omitempty"`
	Proton        string           `yaml:"proton,omitempty"`
	Fixed         bool             `yaml:"fixed,omitempty"`
	Select        *bool            `yaml:"select,omitempty"`
	Vector        []Value          `yaml:"vector,omitempty"`
	Values        map[string]Value `yaml:"values,omitempty"`
	Data          []Datum          `yaml:"data"`
}

// Validate checks the whole analysis.
// Complexity: O(S·D) in spins and data points.
func (a *Analysis) Validate() error {
	if a.Pipe == "" {
		return fmt.Errorf("empty pipe name: %w", ErrInvalid)
	}
	if a.Tensor != nil {
		if err := a.Tensor.Validate(); err != nil {
			return err
		}
	}

	ri := make(map[string]bool, len(a.Relaxation))
	for _, r := range a.Relaxation {
		if err := r.Validate(); err != nil {
			return err
		}
		if ri[r.ID] {
			return fmt.Errorf("relaxation %q repeated: %w", r.ID, ErrInvalid)
		}
		ri[r.ID] = true
	}

	ids := make(map[string]bool, len(a.Spins))
	for i := range a.Spins {
		s := &a.Spins[i]
		if err := s.Validate(); err != nil {
			return err
		}
		if ids[s.ID] {
			return fmt.Errorf("spin %q repeated: %w", s.ID, ErrInvalid)
		}
		ids[s.ID] = true
		for _, d := range s.Data {
			if !ri[d.RI] {
				return fmt.Errorf("spin %q: unknown relaxation %q: %w", s.ID, d.RI, ErrInvalid)
			}
		}
	}

	if err := a.Optimiser.Validate(); err != nil {
		return err
	}
	if err := a.MonteCarlo.Validate(); err != nil {
		return err
	}

	return a.Eliminate.Validate()
}

// Validate checks the shape and the parameter count.
func (t *Tensor) Validate() error {
	shape, err := diffusion.ParseShape(t.Shape)
	if err != nil {
		return fmt.Errorf("tensor: %w", err)
	}
	if _, err = diffusion.ParseSpheroidType(t.Spheroid); err != nil {
		return fmt.Errorf("tensor: %w", err)
	}
	if n := len(shape.Params()); len(t.Params) != n {
		return fmt.Errorf("tensor %s: %d params, want %d: %w", shape, len(t.Params), n, ErrInvalid)
	}
	if _, err = Numbers(t.Params); err != nil {
		return fmt.Errorf("tensor: %w", err)
	}

	return nil
}

// Validate checks the type and the frequency.
func (r Relaxation) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("relaxation without id: %w", ErrInvalid)
	}
	if _, err := pipe.ParseRiType(r.Type); err != nil {
		return fmt.Errorf("relaxation %q: %w", r.ID, err)
	}
	if r.Frequency <= 0 {
		return fmt.Errorf("relaxation %q: frequency %g: %w", r.ID, r.Frequency, ErrInvalid)
	}

	return nil
}

// Validate checks the model, nuclei, vector and values of the spin.
func (s *Spin) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("spin without id: %w", ErrInvalid)
	}
	if _, err := s.model(); err != nil {
		return fmt.Errorf("spin %q: %w", s.ID, err)
	}
	for _, n := range []string{s.heteronucleus(), s.proton()} {
		if _, err := physics.Gyro(n); err != nil {
			return fmt.Errorf("spin %q: %w", s.ID, err)
		}
	}
	if s.Vector != nil {
		if len(s.Vector) != 3 {
			return fmt.Errorf("spin %q: vector of %d elements: %w", s.ID, len(s.Vector), ErrInvalid)
		}
		if _, err := Numbers(s.Vector); err != nil {
			return fmt.Errorf("spin %q vector: %w", s.ID, err)
		}
	}
	for k, v := range s.Values {
		q, err := models.ParseParam(k)
		if err != nil {
			return fmt.Errorf("spin %q: %w", s.ID, err)
		}
		if _, err = v.Resolve(q); err != nil {
			return fmt.Errorf("spin %q: %w", s.ID, err)
		}
	}

	return nil
}

func (s *Spin) model() (models.Model, error) {
	if s.Equation == "" && len(s.Params) == 0 {
		return models.Select(s.Model)
	}

	return models.Create(s.Model, s.Equation, s.Params)
}

func (s *Spin) heteronucleus() string {
	if s.Heteronucleus == "" {
		return DefaultHeteronucleus
	}

	return s.Heteronucleus
}

func (s *Spin) proton() string {
	if s.Proton == "" {
		return DefaultProton
	}

	return s.Proton
}
