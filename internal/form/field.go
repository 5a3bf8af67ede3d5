package form

import "fmt"

// Kind selects the widget used for a field and the Go type of its value.
type Kind string

// Supported field kinds.
const (
	KindText     Kind = "text"
	KindTextArea Kind = "textarea"
	KindNumber   Kind = "number"
	KindCheckbox Kind = "checkbox"
	KindSelect   Kind = "select"
)

// Option is one choice of a select field.
type Option struct {
	Label string
	Value string
}

// Field describes a single input.
type Field struct {
	Name        string
	Label       string
	Description string
	Placeholder string
	Kind        Kind
	Options     []Option
	Initial     any
}

// Values maps field names to their current typed values.
//
// text, textarea and select fields hold a string, checkbox fields a bool.
// Number fields hold a float64; a blank number is absent and a value that
// does not parse is kept as the raw string.
type Values map[string]any

// Validate checks that the field is well formed.
func (f Field) Validate() error {
	if f.Name == "" {
		return errFieldNameRequired
	}
	switch f.Kind {
	case KindText, KindTextArea, KindNumber, KindCheckbox:
	case KindSelect:
		if len(f.Options) == 0 {
			return fmt.Errorf("%s: %w", f.Name, errOptionsRequired)
		}
	default:
		return fmt.Errorf("%s: %w %q", f.Name, errUnknownKind, f.Kind)
	}
	return nil
}

// title returns the label shown for the field, falling back to its name.
func (f Field) title() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

func (f Field) hasOption(value string) bool {
	for _, o := range f.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}
