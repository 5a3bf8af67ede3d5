// Package schema validates form values against JSON Schema documents.
//
// Each wizard step may carry a Schema. Validation failures are reported as
// a ValidationError mapping field names to a single human readable
// message, optionally replaced per field and keyword by the step's
// message overrides.
package schema
