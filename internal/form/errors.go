package form

import "errors"

// Errors returned while building or updating form state.
var (
	errFieldNameRequired = errors.New("field name is required")
	errDuplicateField    = errors.New("duplicate field name")
	errUnknownKind       = errors.New("unknown field kind")
	errOptionsRequired   = errors.New("select field requires at least one option")

	// ErrUnknownField is returned when a value is set for a field the state does not own.
	ErrUnknownField = errors.New("unknown field")
	// ErrInvalidValue is returned when a value cannot be stored in a field of its kind.
	ErrInvalidValue = errors.New("invalid value for field")
)
