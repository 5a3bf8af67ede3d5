package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
	sigsyaml "sigs.k8s.io/yaml"

	"github.com/imamik/stepform/internal/form"
	"github.com/imamik/stepform/internal/schema"
	"github.com/imamik/stepform/internal/stepper"
)

// Build compiles the definition into sequencer steps and returns the
// fields of all steps in order, ready for form.NewState.
func (d *Definition) Build() ([]stepper.Step, []form.Field, error) {
	steps := make([]stepper.Step, 0, len(d.Steps))
	var fields []form.Field

	for _, sd := range d.Steps {
		step := stepper.Step{Label: sd.Label}
		for _, fd := range sd.Fields {
			f := fd.toField()
			step.Fields = append(step.Fields, f)
			fields = append(fields, f)
		}

		if sd.hasSchema() {
			compiled, err := sd.compileSchema()
			if err != nil {
				return nil, nil, err
			}
			step.Schema = compiled
		}

		steps = append(steps, step)
	}

	return steps, fields, nil
}

// compileSchema converts the YAML schema node to JSON and compiles it.
func (s StepDefinition) compileSchema() (*schema.Schema, error) {
	raw, err := yaml.Marshal(&s.Schema)
	if err != nil {
		return nil, fmt.Errorf("step %q: failed to encode schema: %w", s.Label, err)
	}

	data, err := sigsyaml.YAMLToJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("step %q: failed to convert schema to JSON: %w", s.Label, err)
	}

	compiled, err := schema.CompileJSON(s.Label, data, s.Messages)
	if err != nil {
		return nil, fmt.Errorf("step %q: %w", s.Label, err)
	}
	return compiled, nil
}
