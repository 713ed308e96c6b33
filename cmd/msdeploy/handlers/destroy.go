package handlers

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/msdeploy/msdeploy/internal/config"
)

// resolveConfigPath falls back to the default config file.
func resolveConfigPath(configPath string) string {
	if configPath == "" {
		return config.DefaultConfigFile
	}
	return configPath
}

// Destroy deletes the cloud resources created for the deployment: the
// instance, the firewall and the registered SSH key. Absent resources are
// skipped, so destroy converges on repeated runs. The local state directory
// and the pushed image are left in place.
func Destroy(ctx context.Context, configPath string) error {
	cfg, err := loadConfigFile(resolveConfigPath(configPath))
	if err != nil {
		return err
	}

	ok, err := confirmPrompt(ctx,
		fmt.Sprintf("Delete instance %q, firewall %q and SSH key %q?", cfg.InstanceName, config.FirewallName, config.SSHKeyName),
		"This cannot be undone. The pushed image stays in the registry.")
	if err != nil {
		return fmt.Errorf("destroy confirmation: %w", err)
	}
	if !ok {
		fmt.Println("Destroy aborted.")
		return nil
	}

	token := os.Getenv("HCLOUD_TOKEN")
	if token == "" {
		return fmt.Errorf("HCLOUD_TOKEN must be set")
	}
	client := newResourceClient(token)

	log.WithField("instance", cfg.InstanceName).Info("Deleting instance")
	if err := client.DeleteServer(ctx, cfg.InstanceName); err != nil {
		return fmt.Errorf("failed to delete instance %s: %w", cfg.InstanceName, err)
	}

	log.WithField("firewall", config.FirewallName).Info("Deleting firewall")
	if err := client.DeleteFirewall(ctx, config.FirewallName); err != nil {
		return fmt.Errorf("failed to delete firewall %s: %w", config.FirewallName, err)
	}

	log.WithField("key", config.SSHKeyName).Info("Deleting SSH key")
	if err := client.DeleteSSHKey(ctx, config.SSHKeyName); err != nil {
		return fmt.Errorf("failed to delete SSH key %s: %w", config.SSHKeyName, err)
	}

	fmt.Printf("All resources for %s deleted.\n", cfg.InstanceName)
	return nil
}
