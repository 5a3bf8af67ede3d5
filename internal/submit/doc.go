// Package submit provides the handlers that receive the final form values.
//
// Three handlers are available: [Log] waits for a delay and logs the
// values, [File] writes them as YAML to a local file, and [S3] uploads
// them as a YAML object to an S3-compatible bucket with retries. [New]
// selects one from the runtime settings.
package submit
