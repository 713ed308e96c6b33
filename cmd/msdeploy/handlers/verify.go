package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/msdeploy/msdeploy/internal/ui"
)

// Verify probes the deployed service endpoints and prints the result.
//
// With an explicit ip, no cloud access is needed. Otherwise the instance
// named in the configuration is resolved through the control plane.
// Probe failures are reported, never returned as errors.
func Verify(ctx context.Context, configPath, ip string) error {
	strategy := ""

	if ip == "" {
		cfg, err := loadConfigFile(resolveConfigPath(configPath))
		if err != nil {
			return err
		}
		strategy = string(cfg.Strategy)

		token := os.Getenv("HCLOUD_TOKEN")
		if token == "" {
			return fmt.Errorf("HCLOUD_TOKEN must be set")
		}

		ip, err = newResourceClient(token).GetServerIP(ctx, cfg.InstanceName)
		if err != nil {
			return fmt.Errorf("failed to resolve external IP: %w", err)
		}
	}

	result := newVerifier().Verify(ctx, ip)

	fmt.Println(ui.RenderReport(ui.DeploymentReport{
		ExternalIP:   ip,
		Strategy:     strategy,
		Verification: result,
	}))
	return nil
}
