package commands

import (
	"github.com/spf13/cobra"

	"github.com/msdeploy/msdeploy/cmd/msdeploy/handlers"
)

// Verify returns the command for probing the deployed service.
//
// Optional flags:
//
//	--config, -c: Path to deployment configuration YAML file (default: msdeploy.yaml)
//	--ip: Probe this address directly instead of resolving the instance
func Verify() *cobra.Command {
	var configPath string
	var ip string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Probe the deployed service endpoints",
		Long: `Probe the health and root endpoints of the deployed service.

Without --ip, the instance named in the configuration is resolved through
the cloud API. Probe failures are reported but do not fail the command.

Examples:
  # Verify the instance from msdeploy.yaml
  msdeploy verify

  # Verify a known address directly
  msdeploy verify --ip 203.0.113.5`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Verify(cmd.Context(), configPath, ip)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: msdeploy.yaml)")
	cmd.Flags().StringVar(&ip, "ip", "", "Probe this address directly")

	return cmd
}
