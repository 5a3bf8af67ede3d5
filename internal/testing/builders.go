package testing

import (
	"github.com/imamik/stepform/internal/form"
	"github.com/imamik/stepform/internal/stepper"
)

// StepBuilder provides a fluent interface for constructing wizard steps.
// Each method returns a new builder (immutable) for chaining.
type StepBuilder struct {
	steps []stepper.Step
}

// NewStepBuilder creates an empty StepBuilder.
func NewStepBuilder() *StepBuilder {
	return &StepBuilder{}
}

// Step appends a step with the given fields and no schema.
func (b *StepBuilder) Step(label string, fields ...form.Field) *StepBuilder {
	return b.ValidatedStep(label, nil, fields...)
}

// ValidatedStep appends a step checked by v.
func (b *StepBuilder) ValidatedStep(label string, v stepper.Validator, fields ...form.Field) *StepBuilder {
	newBuilder := b.clone()
	newBuilder.steps = append(newBuilder.steps, stepper.Step{
		Label:  label,
		Fields: append([]form.Field(nil), fields...),
		Schema: v,
	})
	return newBuilder
}

// Build returns the steps.
func (b *StepBuilder) Build() []stepper.Step {
	return append([]stepper.Step(nil), b.steps...)
}

// Fields returns the fields of all steps in order.
func (b *StepBuilder) Fields() []form.Field {
	var fields []form.Field
	for _, s := range b.steps {
		fields = append(fields, s.Fields...)
	}
	return fields
}

func (b *StepBuilder) clone() *StepBuilder {
	return &StepBuilder{steps: append([]stepper.Step(nil), b.steps...)}
}

// Text returns a text field with an empty initial value.
func Text(name string) form.Field {
	return form.Field{Name: name, Label: name, Kind: form.KindText, Initial: ""}
}

// Number returns a number field starting at zero.
func Number(name string) form.Field {
	return form.Field{Name: name, Label: name, Kind: form.KindNumber, Initial: 0}
}

// Checkbox returns an unchecked checkbox field.
func Checkbox(name string) form.Field {
	return form.Field{Name: name, Label: name, Kind: form.KindCheckbox, Initial: false}
}
