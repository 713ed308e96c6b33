package commands

import (
	"github.com/spf13/cobra"

	"github.com/msdeploy/msdeploy/cmd/msdeploy/handlers"
)

// Doctor returns the command for checking local prerequisites.
func Doctor() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check local tools required for deployment",
		Long: `Check that the local tools msdeploy depends on are installed.

The container strategy needs a working docker binary; ssh is useful for
inspecting the instance manually but not required.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Doctor()
		},
	}
}
