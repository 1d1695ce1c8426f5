package export

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// WriteYAML encodes r as a YAML document with two-space indentation.
func WriteYAML(w io.Writer, r Results) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("WriteYAML: %w", err)
	}

	return enc.Close()
}

// ReadYAML decodes a document written by WriteYAML.
func ReadYAML(rd io.Reader) (Results, error) {
	var r Results
	if err := yaml.NewDecoder(rd).Decode(&r); err != nil {
		return Results{}, fmt.Errorf("ReadYAML: %w", err)
	}

	return r, nil
}
