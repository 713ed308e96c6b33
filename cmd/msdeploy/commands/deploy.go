package commands

import (
	"github.com/spf13/cobra"

	"github.com/msdeploy/msdeploy/cmd/msdeploy/handlers"
)

// Deploy returns the command for the full deployment workflow.
//
// Optional flags:
//
//	--config, -c: Path to deployment configuration YAML file (default: msdeploy.yaml, wizard as fallback)
//
// Environment variables:
//
//	HCLOUD_TOKEN: Hetzner Cloud API token (required)
//	REGISTRY_USERNAME, REGISTRY_PASSWORD: registry credentials (container strategy)
func Deploy() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Provision the host and deploy the service",
		Long: `Provision the target instance and deploy the model-serving service.

The workflow creates the instance and firewall if they do not exist, deploys
the service with the configured strategy (container or interpreter), then
probes the health endpoints and prints a final report.

If no config file is specified, msdeploy.yaml in the current directory is
offered, and the interactive wizard runs as the fallback.

Examples:
  # Deploy using msdeploy.yaml or the wizard
  msdeploy deploy

  # Deploy using a specific config file
  msdeploy deploy -c production.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Deploy(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: msdeploy.yaml)")

	return cmd
}
