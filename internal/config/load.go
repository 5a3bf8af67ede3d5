package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultDefinition []byte

// LoadFile reads, parses and validates a definition from a YAML file.
func LoadFile(path string) (*Definition, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition file: %w", err)
	}
	return Parse(data)
}

// Default returns the built-in three step definition.
func Default() *Definition {
	def, err := Parse(defaultDefinition)
	if err != nil {
		panic(fmt.Sprintf("built-in definition is invalid: %v", err))
	}
	return def
}

// DefaultYAML returns the raw built-in definition.
func DefaultYAML() []byte {
	return append([]byte(nil), defaultDefinition...)
}

// Parse decodes a definition strictly: unknown keys are errors.
func Parse(data []byte) (*Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var def Definition
	if err := dec.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("definition validation failed: %w", errNoSteps)
		}
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	def.applyDefaults()

	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("definition validation failed: %w", err)
	}
	return &def, nil
}

// applyDefaults fills in values the YAML may leave out.
func (d *Definition) applyDefaults() {
	for i := range d.Steps {
		for j := range d.Steps[i].Fields {
			f := &d.Steps[i].Fields[j]
			if f.Kind == "" {
				f.Kind = "text"
			}
			if f.Label == "" {
				f.Label = f.Name
			}
		}
	}
}

// LoadAnswers reads a YAML mapping of field names to values.
func LoadAnswers(path string) (map[string]any, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read answers file: %w", err)
	}

	var answers map[string]any
	if err := yaml.Unmarshal(data, &answers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal answers: %w", err)
	}
	if answers == nil {
		answers = map[string]any{}
	}
	return answers, nil
}
