// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the msdeploy CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "msdeploy",
		Short: "Deploy the model-serving service to a cloud instance",
	}

	cmd.AddCommand(Init())
	cmd.AddCommand(Deploy())
	cmd.AddCommand(Verify())
	cmd.AddCommand(Destroy())
	cmd.AddCommand(Doctor())
	cmd.AddCommand(Version())

	return cmd
}
