package form

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// binding is the storage a widget writes into.
type binding struct {
	field   Field
	text    string
	checked bool
}

// State tracks the values of every field of a form.
// It is not safe for concurrent use; the wizard mutates it from its event loop only.
type State struct {
	bindings map[string]*binding
	order    []string
}

// NewState creates state for the given fields and applies their initial values.
func NewState(fields []Field) (*State, error) {
	s := &State{
		bindings: make(map[string]*binding, len(fields)),
		order:    make([]string, 0, len(fields)),
	}

	for _, f := range fields {
		if err := f.Validate(); err != nil {
			return nil, err
		}
		if _, ok := s.bindings[f.Name]; ok {
			return nil, fmt.Errorf("%w: %s", errDuplicateField, f.Name)
		}

		b := &binding{field: f}
		if err := b.assign(f.Initial); err != nil {
			return nil, fmt.Errorf("initial value: %w", err)
		}
		// An unset select shows its first option, so store that as the value.
		if f.Kind == KindSelect && b.text == "" {
			b.text = f.Options[0].Value
		}

		s.bindings[f.Name] = b
		s.order = append(s.order, f.Name)
	}

	return s, nil
}

// Names returns the field names in declaration order.
func (s *State) Names() []string {
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

// Field returns the definition of the named field.
func (s *State) Field(name string) (Field, bool) {
	b, ok := s.bindings[name]
	if !ok {
		return Field{}, false
	}
	return b.field, true
}

// Set stores v in the named field.
func (s *State) Set(name string, v any) error {
	b, ok := s.bindings[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	return b.assign(v)
}

// SetAll stores every entry of values, stopping at the first error.
func (s *State) SetAll(values map[string]any) error {
	for _, name := range s.order {
		v, ok := values[name]
		if !ok {
			continue
		}
		if err := s.Set(name, v); err != nil {
			return err
		}
	}
	for name := range values {
		if _, ok := s.bindings[name]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownField, name)
		}
	}
	return nil
}

// Values returns a snapshot of the current values.
func (s *State) Values() Values {
	values := make(Values, len(s.order))
	for _, name := range s.order {
		b := s.bindings[name]
		switch b.field.Kind {
		case KindCheckbox:
			values[name] = b.checked
		case KindNumber:
			raw := strings.TrimSpace(b.text)
			if raw == "" {
				continue
			}
			if n, ok := parseNumber(raw); ok {
				values[name] = n
			} else {
				values[name] = raw
			}
		default:
			values[name] = b.text
		}
	}
	return values
}

// Subset returns the current values of the named fields only.
func (s *State) Subset(names []string) Values {
	all := s.Values()
	out := make(Values, len(names))
	for _, name := range names {
		if v, ok := all[name]; ok {
			out[name] = v
		}
	}
	return out
}

func (b *binding) assign(v any) error {
	if v == nil {
		b.text = ""
		b.checked = false
		return nil
	}

	switch b.field.Kind {
	case KindCheckbox:
		switch val := v.(type) {
		case bool:
			b.checked = val
		case string:
			parsed, err := strconv.ParseBool(strings.TrimSpace(val))
			if err != nil {
				return fmt.Errorf("%w %s: %q is not a boolean", ErrInvalidValue, b.field.Name, val)
			}
			b.checked = parsed
		default:
			return fmt.Errorf("%w %s: %T", ErrInvalidValue, b.field.Name, v)
		}

	case KindNumber:
		text, ok := numberText(v)
		if !ok {
			return fmt.Errorf("%w %s: %T", ErrInvalidValue, b.field.Name, v)
		}
		b.text = text

	case KindSelect:
		text := scalarText(v)
		if !b.field.hasOption(text) {
			return fmt.Errorf("%w %s: %q is not an option", ErrInvalidValue, b.field.Name, text)
		}
		b.text = text

	default:
		b.text = scalarText(v)
	}

	return nil
}

// parseNumber accepts finite numbers only; NaN and infinities have no JSON
// form and stay raw so the schema reports them against the field.
func parseNumber(raw string) (float64, bool) {
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func numberText(v any) (string, bool) {
	switch n := v.(type) {
	case string:
		return n, true
	case int:
		return strconv.Itoa(n), true
	case int64:
		return strconv.FormatInt(n, 10), true
	case int32:
		return strconv.FormatInt(int64(n), 10), true
	case uint64:
		return strconv.FormatUint(n, 10), true
	case float32:
		return strconv.FormatFloat(float64(n), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64), true
	}
	return "", false
}

func scalarText(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if s, ok := numberText(v); ok {
		return s
	}
	return fmt.Sprint(v)
}
