package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/modelfree/models"
)

// Kind discriminates a Value.
type Kind int

const (
	// Number is a numeric value.
	Number Kind = iota + 1
	// Text is a string value.
	Text
)

// DefaultText asks for the conventional value of a parameter.
const DefaultText = "default"

// Value is a number or a text, decided when the YAML is decoded.
type Value struct {
	Kind Kind
	Num  float64
	Text string
}

// Num returns a Number.
func Num(v float64) Value { return Value{Kind: Number, Num: v} }

// Str returns a Text.
func Str(s string) Value { return Value{Kind: Text, Text: s} }

// UnmarshalYAML implements yaml.Unmarshaler. Integer and float scalars are
// numbers, strings are text and anything else is rejected.
func (v *Value) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: %w", n.Line, ErrBadValue)
	}
	switch n.ShortTag() {
	case "!!int", "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return err
		}
		*v = Num(f)
	case "!!str":
		*v = Str(n.Value)
	default:
		return fmt.Errorf("line %d: %s %q: %w", n.Line, n.ShortTag(), n.Value, ErrBadValue)
	}

	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (v Value) MarshalYAML() (any, error) {
	if v.Kind == Text {
		return v.Text, nil
	}

	return v.Num, nil
}

// Resolve returns the number, or the default of q for DefaultText.
func (v Value) Resolve(q models.ParamName) (float64, error) {
	switch {
	case v.Kind == Number:
		return v.Num, nil
	case v.Kind == Text && strings.EqualFold(v.Text, DefaultText):
		return models.Default(q), nil
	}

	return 0, fmt.Errorf("%s = %q: %w", q, v.Text, ErrBadValue)
}

// Numbers returns the elements of vs, each of which must be a Number.
func Numbers(vs []Value) ([]float64, error) {
	out := make([]float64, len(vs))
	for i, v := range vs {
		if v.Kind != Number {
			return nil, fmt.Errorf("element %d %q: %w", i, v.Text, ErrBadValue)
		}
		out[i] = v.Num
	}

	return out, nil
}
