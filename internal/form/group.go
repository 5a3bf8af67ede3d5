package form

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// Group builds a huh group for the named fields. Every widget writes into
// the state's bindings, so values entered on one step are still there when
// the user comes back to it.
func (s *State) Group(title string, names []string) (*huh.Group, error) {
	fields := make([]huh.Field, 0, len(names))
	for _, name := range names {
		b, ok := s.bindings[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownField, name)
		}
		fields = append(fields, b.widget())
	}
	if len(fields) == 0 {
		fields = append(fields, huh.NewNote().Title("Nothing to fill in on this step.").Next(true))
	}
	return huh.NewGroup(fields...).Title(title), nil
}

func (b *binding) widget() huh.Field {
	f := b.field

	switch f.Kind {
	case KindCheckbox:
		return huh.NewConfirm().
			Key(f.Name).
			Title(f.title()).
			Description(f.Description).
			Affirmative("Yes").
			Negative("No").
			Value(&b.checked)

	case KindSelect:
		opts := make([]huh.Option[string], len(f.Options))
		for i, o := range f.Options {
			label := o.Label
			if label == "" {
				label = o.Value
			}
			opts[i] = huh.NewOption(label, o.Value)
		}
		return huh.NewSelect[string]().
			Key(f.Name).
			Title(f.title()).
			Description(f.Description).
			Options(opts...).
			Value(&b.text)

	case KindTextArea:
		return huh.NewText().
			Key(f.Name).
			Title(f.title()).
			Description(f.Description).
			Placeholder(f.Placeholder).
			Value(&b.text)

	default:
		return huh.NewInput().
			Key(f.Name).
			Title(f.title()).
			Description(f.Description).
			Placeholder(f.Placeholder).
			Value(&b.text)
	}
}
