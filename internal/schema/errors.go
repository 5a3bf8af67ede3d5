package schema

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var errSchemaRequired = errors.New("schema document is required")

// ValidationError reports the fields that failed validation.
// Failures that are not tied to a single field are keyed by "".
type ValidationError struct {
	Schema string
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, name := range e.FieldNames() {
		if name == "" {
			parts = append(parts, e.Fields[name])
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return fmt.Sprintf("%s: validation failed: %s", e.Schema, strings.Join(parts, "; "))
}

// FieldNames returns the failing field names in sorted order.
func (e *ValidationError) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AsValidationError unwraps err into a *ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
