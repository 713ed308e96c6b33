// Package provision sequences resource checks and creates until the target
// host is ready: instance present, firewall in place, external IP known.
//
// Every resource follows the describe-then-create pattern, so running the
// workflow twice against the same config converges without creating
// duplicates. There is no rollback: a control-plane failure aborts the
// workflow and leaves whatever was already created in place.
package provision

import (
	"context"
	"errors"
	"fmt"
	"time"

	hcloudsdk "github.com/hetznercloud/hcloud-go/v2/hcloud"
	log "github.com/sirupsen/logrus"

	"github.com/msdeploy/msdeploy/internal/config"
	"github.com/msdeploy/msdeploy/internal/platform/hcloud"
)

// ErrReuseDeclined is returned when the operator declines to reuse an
// existing instance. The workflow never renames or deletes on its own.
var ErrReuseDeclined = errors.New("existing instance reuse declined")

// ConfirmFunc asks the operator a yes/no question.
type ConfirmFunc func(ctx context.Context, title, description string) (bool, error)

// cloudInit installs and enables the container runtime on first boot.
const cloudInit = `#cloud-config
package_update: true
packages:
  - docker.io
runcmd:
  - systemctl enable --now docker
`

// Provisioner drives the ensure-ready-host workflow.
type Provisioner struct {
	client  hcloud.ResourceClient
	confirm ConfirmFunc
	settle  time.Duration
	keys    KeyStore
}

// Option configures a Provisioner.
type Option func(*Provisioner)

// WithSettleDelay overrides the post-create settle delay.
func WithSettleDelay(d time.Duration) Option {
	return func(p *Provisioner) {
		p.settle = d
	}
}

// WithKeyStore overrides where the deployer SSH key pair lives.
func WithKeyStore(ks KeyStore) Option {
	return func(p *Provisioner) {
		p.keys = ks
	}
}

// New creates a Provisioner. confirm is consulted before reusing an
// instance that already exists.
func New(client hcloud.ResourceClient, confirm ConfirmFunc, opts ...Option) *Provisioner {
	p := &Provisioner{
		client:  client,
		confirm: confirm,
		settle:  config.CreateSettleDelay,
		keys:    NewFileKeyStore(config.StateDir),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// EnsureReadyHost brings the target to a ready state and returns its
// external IP. Steps, in order: instance (create or confirm reuse),
// firewall (create if absent), external IP lookup. Any control-plane
// failure is fatal to the run.
func (p *Provisioner) EnsureReadyHost(ctx context.Context, cfg *config.Config) (string, error) {
	if err := p.ensureInstance(ctx, cfg); err != nil {
		return "", err
	}

	if err := p.ensureFirewall(ctx, cfg); err != nil {
		return "", err
	}

	ip, err := p.client.GetServerIP(ctx, cfg.InstanceName)
	if err != nil {
		return "", fmt.Errorf("failed to resolve external IP: %w", err)
	}

	log.WithFields(log.Fields{"instance": cfg.InstanceName, "ip": ip}).Info("Host is ready")
	return ip, nil
}

// ensureInstance creates the instance if absent, or asks to reuse it.
func (p *Provisioner) ensureInstance(ctx context.Context, cfg *config.Config) error {
	server, err := p.client.GetServer(ctx, cfg.InstanceName)
	if err != nil {
		return fmt.Errorf("failed to query instance %s: %w", cfg.InstanceName, err)
	}

	if server != nil {
		log.WithField("instance", cfg.InstanceName).Info("Instance already exists")
		ok, err := p.confirm(ctx,
			fmt.Sprintf("Instance %q already exists. Reuse it?", cfg.InstanceName),
			"Declining aborts the deployment; nothing is renamed or deleted.")
		if err != nil {
			return fmt.Errorf("reuse confirmation: %w", err)
		}
		if !ok {
			return ErrReuseDeclined
		}
		return nil
	}

	sshKey, err := p.ensureSSHKey(ctx, cfg)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"instance": cfg.InstanceName,
		"zone":     cfg.Zone,
		"type":     cfg.MachineType,
	}).Info("Creating instance")

	_, err = p.client.CreateServer(ctx, hcloud.ServerCreateOpts{
		Name:        cfg.InstanceName,
		MachineType: cfg.MachineType,
		Zone:        cfg.Zone,
		Image:       config.ServerImage,
		UserData:    cloudInit,
		Labels:      resourceLabels(cfg),
		SSHKeys:     []*hcloudsdk.SSHKey{sshKey},
	})
	if err != nil {
		return fmt.Errorf("failed to create instance %s: %w", cfg.InstanceName, err)
	}

	// Flat settle sleep in place of readiness polling: cloud-init needs
	// time to install the container runtime before anything connects.
	log.WithField("delay", p.settle).Info("Waiting for instance to settle")
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(p.settle):
	}

	return nil
}

// ensureFirewall creates the fixed firewall rule if absent. Existence alone
// is sufficient; attributes of a pre-existing rule are not reconciled.
func (p *Provisioner) ensureFirewall(ctx context.Context, cfg *config.Config) error {
	firewall, err := p.client.GetFirewall(ctx, config.FirewallName)
	if err != nil {
		return fmt.Errorf("failed to query firewall %s: %w", config.FirewallName, err)
	}
	if firewall != nil {
		return nil
	}

	log.WithFields(log.Fields{
		"firewall": config.FirewallName,
		"port":     config.ServicePort,
	}).Info("Creating firewall")

	selector := config.RoleLabel + "=" + config.RoleHTTPServer
	if _, err := p.client.CreateFirewall(ctx, config.FirewallName, config.ServicePort, selector, resourceLabels(cfg)); err != nil {
		return fmt.Errorf("failed to create firewall %s: %w", config.FirewallName, err)
	}
	return nil
}

// ensureSSHKey loads or generates the deployer key pair and registers the
// public half with the control plane.
func (p *Provisioner) ensureSSHKey(ctx context.Context, cfg *config.Config) (*hcloudsdk.SSHKey, error) {
	keyPair, err := p.keys.LoadOrGenerate()
	if err != nil {
		return nil, err
	}

	key, err := p.client.EnsureSSHKey(ctx, config.SSHKeyName, string(keyPair.PublicKey), resourceLabels(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to register SSH key: %w", err)
	}
	return key, nil
}

// PrivateKey returns the deployer's SSH private key for the remote channel.
func (p *Provisioner) PrivateKey() ([]byte, error) {
	keyPair, err := p.keys.LoadOrGenerate()
	if err != nil {
		return nil, err
	}
	return keyPair.PrivateKey, nil
}

// resourceLabels labels every created resource with the project and the
// role the firewall selects on.
func resourceLabels(cfg *config.Config) map[string]string {
	return map[string]string{
		config.RoleLabel: config.RoleHTTPServer,
		"project":        cfg.Project,
		"managed-by":     "msdeploy",
	}
}
