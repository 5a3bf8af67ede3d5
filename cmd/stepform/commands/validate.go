package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/stepform/cmd/stepform/handlers"
)

// Validate returns the command that checks a form definition.
func Validate() *cobra.Command {
	var definitionPath, answersPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a form definition",
		Long: `Load a form definition, compile its schemas and print a summary.

With --answers, every step is also validated against the answers and all
failing steps are reported.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Validate(definitionPath, answersPath)
		},
	}

	cmd.Flags().StringVarP(&definitionPath, "definition", "d", "", "Path to the form definition (default: built-in)")
	cmd.Flags().StringVarP(&answersPath, "answers", "a", "", "Answers file to check against every step")

	return cmd
}
