package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/imamik/stepform/internal/form"
)

// Validate checks the definition for structural errors. Schemas are only
// compiled by Build.
func (d *Definition) Validate() error {
	if len(d.Steps) == 0 {
		return errNoSteps
	}

	labels := make(map[string]bool, len(d.Steps))
	fields := make(map[string]string)

	for i, step := range d.Steps {
		if step.Label == "" {
			return fmt.Errorf("step %d: %w", i+1, errStepLabelRequired)
		}
		if labels[step.Label] {
			return fmt.Errorf("%w: %q", errDuplicateLabel, step.Label)
		}
		labels[step.Label] = true

		for _, f := range step.Fields {
			if err := f.toField().Validate(); err != nil {
				return fmt.Errorf("step %q: %w", step.Label, err)
			}
			if prev, ok := fields[f.Name]; ok {
				return fmt.Errorf("step %q: %w: %q (first declared in step %q)", step.Label, errDuplicateField, f.Name, prev)
			}
			fields[f.Name] = step.Label
		}

		if step.hasSchema() && step.Schema.Kind != yaml.MappingNode {
			return fmt.Errorf("step %q: %w", step.Label, errSchemaNotMapping)
		}
	}

	// Overrides are checked after all fields are known, since a schema may
	// reference fields of any step.
	for _, step := range d.Steps {
		for name := range step.Messages {
			if _, ok := fields[name]; !ok {
				return fmt.Errorf("step %q: %w: %q", step.Label, errUnknownMessage, name)
			}
		}
	}

	return nil
}

// toField converts the YAML field to the form package's type.
func (f FieldDefinition) toField() form.Field {
	opts := make([]form.Option, len(f.Options))
	for i, o := range f.Options {
		opts[i] = form.Option{Label: o.Label, Value: o.Value}
	}
	return form.Field{
		Name:        f.Name,
		Label:       f.Label,
		Description: f.Description,
		Placeholder: f.Placeholder,
		Kind:        form.Kind(f.Kind),
		Options:     opts,
		Initial:     f.Initial,
	}
}
