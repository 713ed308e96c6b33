// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command
// definitions in the commands package. Handlers are framework-agnostic and
// can be tested independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	log "github.com/sirupsen/logrus"

	"github.com/msdeploy/msdeploy/internal/config"
	"github.com/msdeploy/msdeploy/internal/config/wizard"
	"github.com/msdeploy/msdeploy/internal/deploy"
	"github.com/msdeploy/msdeploy/internal/image"
	"github.com/msdeploy/msdeploy/internal/platform/hcloud"
	"github.com/msdeploy/msdeploy/internal/platform/ssh"
	"github.com/msdeploy/msdeploy/internal/provision"
	"github.com/msdeploy/msdeploy/internal/ui"
	"github.com/msdeploy/msdeploy/internal/util/prerequisites"
	"github.com/msdeploy/msdeploy/internal/verify"
)

// HostProvisioner interface for testing - matches provision.Provisioner.
type HostProvisioner interface {
	EnsureReadyHost(ctx context.Context, cfg *config.Config) (string, error)
	PrivateKey() ([]byte, error)
}

// ServiceVerifier interface for testing - matches verify.Verifier.
type ServiceVerifier interface {
	Verify(ctx context.Context, ip string) verify.Result
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// newResourceClient creates a new cloud resource client.
	newResourceClient = func(token string) hcloud.ResourceClient {
		return hcloud.NewRealClient(token)
	}

	// newProvisioner creates the host provisioner.
	newProvisioner = func(client hcloud.ResourceClient, confirm provision.ConfirmFunc) HostProvisioner {
		return provision.New(client, confirm)
	}

	// newImagePusher creates the image build-and-push pipeline.
	newImagePusher = func(contextDir string) (deploy.ImagePusher, error) {
		return image.NewPipeline(contextDir)
	}

	// newRunner creates the remote command channel to the host.
	newRunner = func(ip string, privateKey []byte) (ssh.Runner, error) {
		return ssh.NewClient(&ssh.Config{Host: ip, PrivateKey: privateKey})
	}

	// newStrategy selects the deployment strategy for the config.
	newStrategy = deploy.ForConfig

	// newVerifier creates the endpoint verifier.
	newVerifier = func() ServiceVerifier {
		return verify.New()
	}

	// loadConfigFile loads config from file (for testing injection).
	loadConfigFile = config.Load

	// runWizard runs the interactive configuration wizard.
	runWizard = wizard.Run

	// confirmPrompt asks a single yes/no question.
	confirmPrompt = wizard.Confirm

	// checkContainerPrereqs verifies the local container toolchain.
	checkContainerPrereqs = func() *prerequisites.CheckResults {
		return prerequisites.Check(prerequisites.ContainerTools())
	}

	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// stdinIsTerminal reports whether stdin is attached to a terminal.
	stdinIsTerminal = func() bool {
		fd := os.Stdin.Fd()
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
)

// Deploy runs the full deployment workflow: configuration, provisioning,
// service rollout and verification.
//
// The workflow, in order:
//  1. Acquires configuration from the given file, the default config file,
//     or the interactive wizard.
//  2. Verifies local prerequisites for the selected strategy.
//  3. Ensures the target host exists and is reachable (instance, firewall,
//     external IP).
//  4. Deploys the service with the configured strategy.
//  5. Probes the service endpoints and prints the final report.
//
// Verification failures are reported but never fail the run; the report is
// always printed once deployment completed.
func Deploy(ctx context.Context, configPath string) error {
	cfg, err := acquireConfig(ctx, configPath)
	if err != nil {
		return err
	}

	if err := checkPrerequisites(cfg); err != nil {
		return err
	}

	token := os.Getenv("HCLOUD_TOKEN")
	if token == "" {
		return fmt.Errorf("HCLOUD_TOKEN must be set")
	}

	provisioner := newProvisioner(newResourceClient(token), confirmPrompt)

	ip, err := provisioner.EnsureReadyHost(ctx, cfg)
	if err != nil {
		return err
	}

	if err := runStrategy(ctx, cfg, provisioner, ip); err != nil {
		return err
	}

	result := newVerifier().Verify(ctx, ip)

	fmt.Println(ui.RenderReport(ui.DeploymentReport{
		ExternalIP:   ip,
		Strategy:     string(cfg.Strategy),
		Verification: result,
	}))
	return nil
}

// acquireConfig resolves the deployment configuration. An explicit path is
// loaded as-is. Otherwise the default config file is offered for reuse, and
// the wizard runs as the fallback when stdin is a terminal.
func acquireConfig(ctx context.Context, configPath string) (*config.Config, error) {
	if configPath != "" {
		cfg, err := loadConfigFile(configPath)
		if err != nil {
			return nil, err
		}
		log.WithField("config", configPath).Info("Using configuration file")
		return cfg, nil
	}

	if fileExists(config.DefaultConfigFile) {
		ok, err := confirmPrompt(ctx,
			fmt.Sprintf("Found %s. Use it?", config.DefaultConfigFile),
			"Declining starts the configuration wizard instead.")
		if err != nil {
			return nil, fmt.Errorf("config reuse confirmation: %w", err)
		}
		if ok {
			return loadConfigFile(config.DefaultConfigFile)
		}
	}

	if !stdinIsTerminal() {
		return nil, fmt.Errorf("no config file found and stdin is not a terminal; run `msdeploy init` or pass --config")
	}

	cfg, err := runWizard(ctx)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// checkPrerequisites verifies the local toolchain for the selected strategy.
// Only the container strategy drives a local Docker daemon.
func checkPrerequisites(cfg *config.Config) error {
	if cfg.Strategy != config.StrategyContainer {
		return nil
	}

	results := checkContainerPrereqs()
	for _, r := range results.Results {
		if r.Found {
			log.WithFields(log.Fields{"tool": r.Tool.Name, "version": r.Version}).Debug("Found tool")
		}
	}
	if err := results.Error(); err != nil {
		return fmt.Errorf("prerequisites check failed: %w", err)
	}
	return nil
}

// runStrategy connects the remote channel and executes the selected strategy.
func runStrategy(ctx context.Context, cfg *config.Config, provisioner HostProvisioner, ip string) error {
	privateKey, err := provisioner.PrivateKey()
	if err != nil {
		return fmt.Errorf("failed to load deployer key: %w", err)
	}

	runner, err := newRunner(ip, privateKey)
	if err != nil {
		return fmt.Errorf("failed to create remote channel: %w", err)
	}

	var pusher deploy.ImagePusher
	if cfg.Strategy == config.StrategyContainer {
		pusher, err = newImagePusher(".")
		if err != nil {
			return err
		}
	}

	strategy, err := newStrategy(cfg, runner, pusher)
	if err != nil {
		return err
	}

	log.WithField("strategy", strategy.Name()).Info("Deploying service")
	if err := strategy.Deploy(ctx, cfg, ip); err != nil {
		return fmt.Errorf("deployment failed: %w", err)
	}
	return nil
}
