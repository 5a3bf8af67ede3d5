// Package config loads form definitions and runtime settings.
//
// A [Definition] is the YAML description of a wizard: its steps, their
// fields and initial values, and an optional JSON Schema per step. The
// definition is validated on load and turned into sequencer steps by
// [Definition.Build]. [Settings] holds the runtime options (submit handler,
// logging, metrics) resolved through viper from flags, STEPFORM_*
// environment variables and an optional config file.
package config
