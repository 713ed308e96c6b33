package commands

import (
	"github.com/spf13/cobra"

	"github.com/msdeploy/msdeploy/cmd/msdeploy/handlers"
	"github.com/msdeploy/msdeploy/internal/config"
)

// Init returns the command for interactively creating a configuration file.
//
// Optional flags:
//
//	--output, -o: Output file path (default: msdeploy.yaml)
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a deployment configuration",
		Long: `Interactively create a deployment configuration file.

The wizard asks for the registry project, the target zone, the instance name
and type, and the deployment strategy, then writes the answers to a YAML
file that msdeploy deploy picks up.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", config.DefaultConfigFile, "Output file path")

	return cmd
}
