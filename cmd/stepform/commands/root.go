// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/stepform/internal/config"
)

// Root returns the root command for the stepform CLI.
//
// Runtime settings are resolved by one viper instance shared by all
// subcommands: flags override STEPFORM_* environment variables, which
// override the --config file and the defaults.
func Root() *cobra.Command {
	v := config.NewViper()

	cmd := &cobra.Command{
		Use:           "stepform",
		Short:         "Fill in multi-step forms in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", "", "Path to a settings file (YAML)")
	cmd.PersistentFlags().CountP("verbose", "v", "Increase log verbosity (repeatable)")
	_ = v.BindPFlag("verbosity", cmd.PersistentFlags().Lookup("verbose"))

	cmd.AddCommand(Init())
	cmd.AddCommand(Run(v))
	cmd.AddCommand(Validate())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
