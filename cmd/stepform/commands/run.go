package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/imamik/stepform/cmd/stepform/handlers"
	"github.com/imamik/stepform/internal/config"
)

// Run returns the command that fills in and submits a form.
//
// Optional flags:
//
//	--definition, -d: Form definition YAML (default: built-in)
//	--answers, -a:    Answers YAML; runs without the terminal UI
//	--submit:         Submit handler: log, file or s3
//
// Environment variables:
//
//	STEPFORM_SUBMIT_S3_ACCESS_KEY, STEPFORM_SUBMIT_S3_SECRET_KEY: S3 credentials
func Run(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fill in and submit a form",
		Long: `Fill in a multi-step form and submit the collected values.

Each step is validated against its schema before the next one is shown.
On the last step the values are passed to the submit handler.

When stdout is not a terminal, or --answers is given, the form is filled
from the answers file (or the initial values) without the terminal UI.

Examples:
  # Run the built-in form and log the values
  stepform run

  # Run a custom form and write the result to a file
  stepform run -d signup.yaml --submit file --output signup.yaml

  # Fill a form from answers and upload it to S3
  stepform run -a answers.yaml --submit s3 --bucket forms`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configFile, _ := cmd.Flags().GetString("config")
			settings, err := config.LoadSettings(v, configFile)
			if err != nil {
				return err
			}
			return handlers.Run(cmd.Context(), settings)
		},
	}

	defaults := config.DefaultSettings()
	flags := cmd.Flags()
	flags.StringP("definition", "d", "", "Path to the form definition (default: built-in)")
	flags.StringP("answers", "a", "", "Path to an answers file; runs without the terminal UI")
	flags.String("submit", config.SubmitLog, "Submit handler: log, file or s3")
	flags.String("output", defaults.Submit.Output, "Output file for the file handler")
	flags.Duration("delay", defaults.Submit.Delay, "Delay before the log handler reports the values")
	flags.String("bucket", "", "Bucket for the s3 handler")
	flags.String("metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")

	_ = v.BindPFlag("definition", flags.Lookup("definition"))
	_ = v.BindPFlag("answers", flags.Lookup("answers"))
	_ = v.BindPFlag("submit.mode", flags.Lookup("submit"))
	_ = v.BindPFlag("submit.output", flags.Lookup("output"))
	_ = v.BindPFlag("submit.delay", flags.Lookup("delay"))
	_ = v.BindPFlag("submit.s3.bucket", flags.Lookup("bucket"))
	_ = v.BindPFlag("metrics_addr", flags.Lookup("metrics-addr"))

	return cmd
}
