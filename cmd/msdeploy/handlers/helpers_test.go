package handlers

import (
	"context"

	hcloudsdk "github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/msdeploy/msdeploy/internal/config"
	"github.com/msdeploy/msdeploy/internal/platform/hcloud"
	"github.com/msdeploy/msdeploy/internal/verify"
)

// stubResourceClient implements hcloud.ResourceClient with canned answers
// and records the delete calls.
type stubResourceClient struct {
	ip    string
	ipErr error

	deletedServers   []string
	deletedFirewalls []string
	deletedKeys      []string
}

var _ hcloud.ResourceClient = (*stubResourceClient)(nil)

func (c *stubResourceClient) GetServer(context.Context, string) (*hcloudsdk.Server, error) {
	return nil, nil
}

func (c *stubResourceClient) CreateServer(context.Context, hcloud.ServerCreateOpts) (*hcloudsdk.Server, error) {
	return &hcloudsdk.Server{}, nil
}

func (c *stubResourceClient) GetServerIP(context.Context, string) (string, error) {
	return c.ip, c.ipErr
}

func (c *stubResourceClient) GetFirewall(context.Context, string) (*hcloudsdk.Firewall, error) {
	return nil, nil
}

func (c *stubResourceClient) CreateFirewall(context.Context, string, int, string, map[string]string) (*hcloudsdk.Firewall, error) {
	return &hcloudsdk.Firewall{}, nil
}

func (c *stubResourceClient) EnsureSSHKey(context.Context, string, string, map[string]string) (*hcloudsdk.SSHKey, error) {
	return &hcloudsdk.SSHKey{}, nil
}

func (c *stubResourceClient) DeleteServer(_ context.Context, name string) error {
	c.deletedServers = append(c.deletedServers, name)
	return nil
}

func (c *stubResourceClient) DeleteFirewall(_ context.Context, name string) error {
	c.deletedFirewalls = append(c.deletedFirewalls, name)
	return nil
}

func (c *stubResourceClient) DeleteSSHKey(_ context.Context, name string) error {
	c.deletedKeys = append(c.deletedKeys, name)
	return nil
}

// stubProvisioner implements HostProvisioner.
type stubProvisioner struct {
	ip  string
	err error
}

func (p *stubProvisioner) EnsureReadyHost(context.Context, *config.Config) (string, error) {
	return p.ip, p.err
}

func (p *stubProvisioner) PrivateKey() ([]byte, error) {
	return []byte("fake-key"), nil
}

// stubVerifier implements ServiceVerifier.
type stubVerifier struct {
	result verify.Result
	probed []string
}

func (v *stubVerifier) Verify(_ context.Context, ip string) verify.Result {
	v.probed = append(v.probed, ip)
	return v.result
}

// stubRunner satisfies ssh.Runner without touching the network.
type stubRunner struct{}

func (stubRunner) Run(context.Context, string) (string, error) { return "", nil }

func (stubRunner) CopyTree(context.Context, string, string) error { return nil }

// stubStrategy records deploy invocations.
type stubStrategy struct {
	name     string
	deployed bool
	err      error
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) Deploy(context.Context, *config.Config, string) error {
	s.deployed = true
	return s.err
}

func confirmAnswer(answer bool) func(context.Context, string, string) (bool, error) {
	return func(context.Context, string, string) (bool, error) {
		return answer, nil
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Project:      "acme",
		Zone:         "fsn1",
		InstanceName: "model-serving-vm",
		MachineType:  "cx22",
		Strategy:     config.StrategyInterpreter,
	}
}
