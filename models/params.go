package models

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/modelfree/physics"
)

// ParamName is one of the model-free spin parameters.
type ParamName string

// The model-free spin parameters.
const (
	LocalTm ParamName = "local_tm"
	S2      ParamName = "s2"
	S2f     ParamName = "s2f"
	S2s     ParamName = "s2s"
	Te      ParamName = "te"
	Tf      ParamName = "tf"
	Ts      ParamName = "ts"
	Rex     ParamName = "rex"
	R       ParamName = "r"
	CSA     ParamName = "csa"
)

// AllParams lists every spin parameter in a stable order.
var AllParams = []ParamName{LocalTm, S2, S2f, S2s, Te, Tf, Ts, Rex, R, CSA}

// ParseParam maps a case-insensitive name ("S2", "Rex", "CSA", ...) onto a
// ParamName.
func ParseParam(s string) (ParamName, error) {
	p := ParamName(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllParams {
		if p == known {
			return p, nil
		}
	}

	return "", fmt.Errorf("ParseParam(%q): %w", s, ErrUnknownParameter)
}

// Default returns the conventional starting value of p: 10 ns local tm,
// 0.8 order parameters, te 100 ps, tf 10 ps, ts 1 ns, no exchange, the N-H
// bond length and the 15N CSA.
func Default(p ParamName) float64 {
	switch p {
	case LocalTm:
		return 10e-9
	case S2, S2f, S2s:
		return 0.8
	case Te:
		return 100e-12
	case Tf:
		return 10e-12
	case Ts:
		return 1000e-12
	case R:
		return physics.NHBondLength
	case CSA:
		return physics.NCSA
	}

	return 0
}

// IsOrderParam reports whether p is S2, S2f or S2s.
func (p ParamName) IsOrderParam() bool {
	return p == S2 || p == S2f || p == S2s
}

// IsTime reports whether p is a correlation time (local_tm, te, tf, ts).
func (p ParamName) IsTime() bool {
	return p == LocalTm || p == Te || p == Tf || p == Ts
}

// Equation is the model-free spectral density formula.
type Equation int

const (
	// Orig is the original Lipari–Szabo formula with {S2, te}.
	Orig Equation = iota
	// Ext is the extended formula with {S2f, tf, S2, ts}.
	Ext
	// Ext2 is the extended formula with {S2f, tf, S2s, ts}.
	Ext2
)

// String returns "mf_orig", "mf_ext" or "mf_ext2".
func (e Equation) String() string {
	switch e {
	case Orig:
		return "mf_orig"
	case Ext:
		return "mf_ext"
	case Ext2:
		return "mf_ext2"
	default:
		return fmt.Sprintf("Equation(%d)", int(e))
	}
}

// ParseEquation converts "mf_orig", "mf_ext" or "mf_ext2" into an Equation.
func ParseEquation(s string) (Equation, error) {
	switch s {
	case "mf_orig":
		return Orig, nil
	case "mf_ext":
		return Ext, nil
	case "mf_ext2":
		return Ext2, nil
	}

	return 0, fmt.Errorf("ParseEquation(%q): %w", s, ErrInvalidEquation)
}
