package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"net/url"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Messages overrides failure text per field and keyword, e.g.
// Messages{"money": {"minimum": "you need at least 1 million"}}.
type Messages map[string]map[string]string

// printer renders the library's failure messages.
var printer = message.NewPrinter(language.English)

// Schema is a compiled JSON Schema plus its message overrides.
type Schema struct {
	name     string
	compiled *jsonschema.Schema
	messages Messages
}

// Compile compiles doc, a decoded JSON document, under the given name.
func Compile(name string, doc any, messages Messages) (*Schema, error) {
	if doc == nil {
		return nil, fmt.Errorf("%s: %w", name, errSchemaRequired)
	}

	loc := "https://stepform.local/schemas/" + url.PathEscape(name) + ".json"

	c := jsonschema.NewCompiler()
	c.DefaultDraft(jsonschema.Draft2020)
	if err := c.AddResource(loc, doc); err != nil {
		return nil, fmt.Errorf("failed to add schema %s: %w", name, err)
	}

	compiled, err := c.Compile(loc)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
	}

	return &Schema{name: name, compiled: compiled, messages: messages}, nil
}

// CompileJSON decodes data as JSON and compiles it.
func CompileJSON(name string, data []byte, messages Messages) (*Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode schema %s: %w", name, err)
	}
	return Compile(name, doc, messages)
}

// Name returns the name the schema was compiled under.
func (s *Schema) Name() string {
	return s.name
}

// Validate checks values against the schema. It returns a *ValidationError
// when the values do not conform.
func (s *Schema) Validate(values map[string]any) error {
	if values == nil {
		values = map[string]any{}
	}

	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to encode values: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to decode values: %w", err)
	}

	err = s.compiled.Validate(inst)
	if err == nil {
		return nil
	}

	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return fmt.Errorf("failed to validate %s: %w", s.name, err)
	}

	fields := make(map[string]string)
	s.collect(ve, fields)
	return &ValidationError{Schema: s.name, Fields: fields}
}

// collect records the leaf failures of ve. The first message per field wins.
func (s *Schema) collect(ve *jsonschema.ValidationError, out map[string]string) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			s.collect(cause, out)
		}
		return
	}

	if req, ok := ve.ErrorKind.(*kind.Required); ok {
		for _, missing := range req.Missing {
			field := fieldName(append(append([]string{}, ve.InstanceLocation...), missing))
			s.record(out, field, "required", fmt.Sprintf("%s is required", missing))
		}
		return
	}

	keyword := ""
	if path := ve.ErrorKind.KeywordPath(); len(path) > 0 {
		keyword = path[len(path)-1]
	}
	s.record(out, fieldName(ve.InstanceLocation), keyword, kindMessage(ve.ErrorKind))
}

// kindMessage renders the library's text for k. Numeric bounds are formatted
// here: the printer would render 1000000 as 1×10⁰⁶.
func kindMessage(k jsonschema.ErrorKind) string {
	switch k := k.(type) {
	case *kind.Minimum:
		return bound("minimum", k.Got, k.Want)
	case *kind.Maximum:
		return bound("maximum", k.Got, k.Want)
	case *kind.ExclusiveMinimum:
		return bound("exclusiveMinimum", k.Got, k.Want)
	case *kind.ExclusiveMaximum:
		return bound("exclusiveMaximum", k.Got, k.Want)
	case *kind.MultipleOf:
		return fmt.Sprintf("multipleOf: %s is not a multiple of %s", ratText(k.Got), ratText(k.Want))
	}
	return k.LocalizedString(printer)
}

func bound(keyword string, got, want *big.Rat) string {
	return fmt.Sprintf("%s: got %s, want %s", keyword, ratText(got), ratText(want))
}

func ratText(r *big.Rat) string {
	if r == nil {
		return "?"
	}
	f, _ := r.Float64()
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (s *Schema) record(out map[string]string, field, keyword, fallback string) {
	if _, seen := out[field]; seen {
		return
	}
	if msg, ok := s.messages[field][keyword]; ok {
		out[field] = msg
		return
	}
	out[field] = fallback
}

func fieldName(location []string) string {
	return strings.Join(location, ".")
}
