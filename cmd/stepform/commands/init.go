package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/stepform/cmd/stepform/handlers"
)

// Init returns the command that writes the built-in definition to a file.
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write an example form definition",
		Long: `Write the built-in three step form definition to a file so it can be
edited and passed to 'stepform run --definition'.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Init(outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "stepform.yaml", "Output file path")

	return cmd
}
