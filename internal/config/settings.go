package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Submit modes.
const (
	SubmitLog  = "log"
	SubmitFile = "file"
	SubmitS3   = "s3"
)

// EnvPrefix is the prefix of environment variables read into Settings,
// e.g. STEPFORM_SUBMIT_MODE.
const EnvPrefix = "STEPFORM"

// Settings holds the runtime options of the CLI.
type Settings struct {
	// Definition is the path of the form definition; empty means built-in.
	Definition string `mapstructure:"definition"`
	// Answers is the path of a YAML answers file for headless runs.
	Answers     string         `mapstructure:"answers"`
	Verbosity   int            `mapstructure:"verbosity"`
	MetricsAddr string         `mapstructure:"metrics_addr"`
	Submit      SubmitSettings `mapstructure:"submit"`
}

// SubmitSettings selects and configures the submit handler.
type SubmitSettings struct {
	Mode string `mapstructure:"mode"`
	// Delay is how long the log handler waits before logging.
	Delay  time.Duration `mapstructure:"delay"`
	Output string        `mapstructure:"output"`
	S3     S3Settings    `mapstructure:"s3"`
}

// S3Settings configures the s3 submit handler.
type S3Settings struct {
	Bucket       string `mapstructure:"bucket"`
	Prefix       string `mapstructure:"prefix"`
	Endpoint     string `mapstructure:"endpoint"`
	Region       string `mapstructure:"region"`
	AccessKey    string `mapstructure:"access_key"`
	SecretKey    string `mapstructure:"secret_key"`
	PathStyle    bool   `mapstructure:"path_style"`
	CreateBucket bool   `mapstructure:"create_bucket"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Submit: SubmitSettings{
			Mode:   SubmitLog,
			Delay:  3 * time.Second,
			Output: "submission.yaml",
			S3: S3Settings{
				Prefix: "submissions",
				Region: "us-east-1",
			},
		},
	}
}

// NewViper returns a viper instance with defaults and environment lookup
// configured for Settings.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultSettings()
	v.SetDefault("definition", defaults.Definition)
	v.SetDefault("answers", defaults.Answers)
	v.SetDefault("verbosity", defaults.Verbosity)
	v.SetDefault("metrics_addr", defaults.MetricsAddr)
	v.SetDefault("submit.mode", defaults.Submit.Mode)
	v.SetDefault("submit.delay", defaults.Submit.Delay)
	v.SetDefault("submit.output", defaults.Submit.Output)
	v.SetDefault("submit.s3.bucket", defaults.Submit.S3.Bucket)
	v.SetDefault("submit.s3.prefix", defaults.Submit.S3.Prefix)
	v.SetDefault("submit.s3.endpoint", defaults.Submit.S3.Endpoint)
	v.SetDefault("submit.s3.region", defaults.Submit.S3.Region)
	v.SetDefault("submit.s3.access_key", defaults.Submit.S3.AccessKey)
	v.SetDefault("submit.s3.secret_key", defaults.Submit.S3.SecretKey)
	v.SetDefault("submit.s3.path_style", defaults.Submit.S3.PathStyle)
	v.SetDefault("submit.s3.create_bucket", defaults.Submit.S3.CreateBucket)

	return v
}

// LoadSettings resolves Settings from v, reading configFile first when set.
func LoadSettings(v *viper.Viper, configFile string) (*Settings, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("settings validation failed: %w", err)
	}
	return &s, nil
}

// Validate checks that the selected submit mode is fully configured.
func (s *Settings) Validate() error {
	if s.Submit.Delay < 0 {
		return errNegativeDelay
	}

	switch s.Submit.Mode {
	case SubmitLog:
	case SubmitFile:
		if s.Submit.Output == "" {
			return errOutputRequired
		}
	case SubmitS3:
		if s.Submit.S3.Bucket == "" {
			return errBucketRequired
		}
	default:
		return fmt.Errorf("%w %q: must be one of %s, %s, %s", errUnknownSubmitMode, s.Submit.Mode, SubmitLog, SubmitFile, SubmitS3)
	}
	return nil
}
