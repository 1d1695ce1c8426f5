package models

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Model is a named model-free model.
type Model struct {
	Name     string
	Equation Equation
	Params   []ParamName
}

// Has reports whether the model optimises p.
func (m Model) Has(p ParamName) bool { return slices.Contains(m.Params, p) }

// baseModels is block 1 (no CSA, no r), indexed by model number 0–9.
var baseModels = [10]Model{
	{Equation: Orig, Params: nil},
	{Equation: Orig, Params: []ParamName{S2}},
	{Equation: Orig, Params: []ParamName{S2, Te}},
	{Equation: Orig, Params: []ParamName{S2, Rex}},
	{Equation: Orig, Params: []ParamName{S2, Te, Rex}},
	{Equation: Ext, Params: []ParamName{S2f, S2, Ts}},
	{Equation: Ext, Params: []ParamName{S2f, Tf, S2, Ts}},
	{Equation: Ext, Params: []ParamName{S2f, S2, Ts, Rex}},
	{Equation: Ext, Params: []ParamName{S2f, Tf, S2, Ts, Rex}},
	{Equation: Orig, Params: []ParamName{Rex}},
}

// blockPrefix holds the parameters prefixed by each block of ten models.
var blockPrefix = [4][]ParamName{
	nil,
	{CSA},
	{R},
	{R, CSA},
}

// Select returns the catalogue model called name ("m0"–"m39", "tm0"–"tm39").
// Complexity: O(k) in the number of parameters.
func Select(name string) (Model, error) {
	var (
		local bool
		num   string
	)
	switch {
	case strings.HasPrefix(name, "tm"):
		local, num = true, name[2:]
	case strings.HasPrefix(name, "m"):
		num = name[1:]
	default:
		return Model{}, fmt.Errorf("Select(%q): %w", name, ErrUnknownModel)
	}

	n, err := strconv.Atoi(num)
	if err != nil || n < 0 || n > 39 || strconv.Itoa(n) != num {
		return Model{}, fmt.Errorf("Select(%q): %w", name, ErrUnknownModel)
	}

	base := baseModels[n%10]
	params := make([]ParamName, 0, len(base.Params)+3)
	if local {
		params = append(params, LocalTm)
	}
	params = append(params, blockPrefix[n/10]...)
	params = append(params, base.Params...)

	return Model{Name: name, Equation: base.Equation, Params: params}, nil
}

// Names returns every catalogue model name: m0–m39 then tm0–tm39.
func Names() []string {
	out := make([]string, 0, 80)
	for _, prefix := range []string{"m", "tm"} {
		for i := 0; i < 40; i++ {
			out = append(out, prefix+strconv.Itoa(i))
		}
	}

	return out
}
