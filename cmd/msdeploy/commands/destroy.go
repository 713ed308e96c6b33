package commands

import (
	"github.com/spf13/cobra"

	"github.com/msdeploy/msdeploy/cmd/msdeploy/handlers"
)

// Destroy returns the command for deleting the deployment's cloud resources.
//
// Optional flags:
//
//	--config, -c: Path to deployment configuration YAML file (default: msdeploy.yaml)
//
// Environment variables:
//
//	HCLOUD_TOKEN: Hetzner Cloud API token (required)
func Destroy() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Delete the instance, firewall and SSH key",
		Long: `Delete the cloud resources created for the deployment.

Removes the instance, the firewall and the registered SSH key after a
confirmation prompt. The pushed image and the local state directory are
left in place.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Destroy(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: msdeploy.yaml)")

	return cmd
}
