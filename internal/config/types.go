package config

import (
	"gopkg.in/yaml.v3"

	"github.com/imamik/stepform/internal/schema"
)

// Definition describes a complete wizard.
type Definition struct {
	Title string           `yaml:"title,omitempty"`
	Steps []StepDefinition `yaml:"steps"`
}

// StepDefinition describes one step.
type StepDefinition struct {
	Label  string            `yaml:"label"`
	Fields []FieldDefinition `yaml:"fields"`

	// Schema is a JSON Schema written in YAML. It is validated against
	// the values of the whole form, so it may refer to fields of earlier
	// steps.
	Schema yaml.Node `yaml:"schema,omitempty"`

	// Messages replaces failure text per field and JSON Schema keyword.
	Messages schema.Messages `yaml:"messages,omitempty"`
}

// FieldDefinition describes one input.
type FieldDefinition struct {
	Name        string             `yaml:"name"`
	Label       string             `yaml:"label,omitempty"`
	Description string             `yaml:"description,omitempty"`
	Placeholder string             `yaml:"placeholder,omitempty"`
	Kind        string             `yaml:"kind,omitempty"`
	Options     []OptionDefinition `yaml:"options,omitempty"`
	Initial     any                `yaml:"initial,omitempty"`
}

// OptionDefinition is one choice of a select field.
type OptionDefinition struct {
	Label string `yaml:"label,omitempty"`
	Value string `yaml:"value"`
}

// hasSchema reports whether the step declares a schema.
func (s StepDefinition) hasSchema() bool {
	return s.Schema.Kind != 0
}
