package models

import (
	"fmt"
	"slices"
)

// Create validates a hand-built model and returns it.
//
// Rules:
//   - equation is one of mf_orig, mf_ext, mf_ext2;
//   - no parameter may repeat;
//   - te needs S2 and the mf_orig equation;
//   - S2f, S2s and tf are invalid with mf_orig, and tf needs S2f;
//   - ts is invalid with mf_orig and needs S2 or S2f;
//   - S2 and S2s are never optimised together (one is derived from the other).
//
// Complexity: O(k²) in the number of parameters.
func Create(name, equation string, params []string) (Model, error) {
	eq, err := ParseEquation(equation)
	if err != nil {
		return Model{}, fmt.Errorf("Create(%q): %w", name, err)
	}

	list := make([]ParamName, 0, len(params))
	for _, s := range params {
		p, err := ParseParam(s)
		if err != nil {
			return Model{}, fmt.Errorf("Create(%q): %w", name, err)
		}
		if slices.Contains(list, p) {
			return Model{}, fmt.Errorf("Create(%q): %q: %w", name, s, ErrDuplicateParameter)
		}
		list = append(list, p)
	}

	m := Model{Name: name, Equation: eq, Params: list}
	if err = Validate(m); err != nil {
		return Model{}, fmt.Errorf("Create(%q): %w", name, err)
	}

	return m, nil
}

// Validate checks a model's parameter combination. It is side-effect free.
// Complexity: O(k²).
func Validate(m Model) error {
	var (
		orig = m.Equation == Orig
		seen = make(map[ParamName]bool, len(m.Params))
	)
	for _, p := range m.Params {
		if seen[p] {
			return fmt.Errorf("%q: %w", p, ErrDuplicateParameter)
		}
		seen[p] = true
	}

	for _, p := range m.Params {
		var bad bool
		switch p {
		case S2:
			bad = seen[S2s]
		case Te:
			bad = !orig || !seen[S2]
		case S2f, S2s:
			bad = orig
		case Tf:
			bad = orig || !seen[S2f]
		case Ts:
			bad = orig || !(seen[S2] || seen[S2f])
		case Rex, R, CSA, LocalTm:
		default:
			return fmt.Errorf("%q: %w", p, ErrUnknownParameter)
		}
		if bad {
			return fmt.Errorf("%v with %s: %w", m.Params, m.Equation, ErrInvalidCombination)
		}
	}

	return nil
}
