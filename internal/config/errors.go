package config

import "errors"

// Definition and settings validation errors.
var (
	errNoSteps           = errors.New("at least one step is required")
	errStepLabelRequired = errors.New("step label is required")
	errDuplicateLabel    = errors.New("duplicate step label")
	errDuplicateField    = errors.New("field is declared more than once")
	errSchemaNotMapping  = errors.New("schema must be a mapping")
	errUnknownMessage    = errors.New("message override for a field the form does not declare")

	errUnknownSubmitMode = errors.New("unknown submit mode")
	errOutputRequired    = errors.New("submit.output is required for the file submit mode")
	errBucketRequired    = errors.New("submit.s3.bucket is required for the s3 submit mode")
	errNegativeDelay     = errors.New("submit.delay must not be negative")
)
