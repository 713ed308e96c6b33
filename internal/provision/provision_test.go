package provision

import (
	"context"
	"errors"
	"testing"

	hcloudsdk "github.com/hetznercloud/hcloud-go/v2/hcloud"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msdeploy/msdeploy/internal/config"
	"github.com/msdeploy/msdeploy/internal/platform/hcloud"
	"github.com/msdeploy/msdeploy/internal/util/keygen"
)

// mockResourceClient implements hcloud.ResourceClient against in-memory
// state, recording every mutation.
type mockResourceClient struct {
	servers   map[string]*hcloudsdk.Server
	firewalls map[string]*hcloudsdk.Firewall
	ip        string

	createServerCalls   int
	createFirewallCalls int
	ensureSSHKeyCalls   int

	getServerErr      error
	createServerErr   error
	getFirewallErr    error
	createFirewallErr error
}

func newMockResourceClient() *mockResourceClient {
	return &mockResourceClient{
		servers:   map[string]*hcloudsdk.Server{},
		firewalls: map[string]*hcloudsdk.Firewall{},
		ip:        "203.0.113.5",
	}
}

func (m *mockResourceClient) GetServer(_ context.Context, name string) (*hcloudsdk.Server, error) {
	if m.getServerErr != nil {
		return nil, m.getServerErr
	}
	return m.servers[name], nil
}

func (m *mockResourceClient) CreateServer(_ context.Context, opts hcloud.ServerCreateOpts) (*hcloudsdk.Server, error) {
	m.createServerCalls++
	if m.createServerErr != nil {
		return nil, m.createServerErr
	}
	server := &hcloudsdk.Server{Name: opts.Name}
	m.servers[opts.Name] = server
	return server, nil
}

func (m *mockResourceClient) GetServerIP(_ context.Context, name string) (string, error) {
	if m.servers[name] == nil {
		return "", errors.New("server not found: " + name)
	}
	return m.ip, nil
}

func (m *mockResourceClient) GetFirewall(_ context.Context, name string) (*hcloudsdk.Firewall, error) {
	if m.getFirewallErr != nil {
		return nil, m.getFirewallErr
	}
	return m.firewalls[name], nil
}

func (m *mockResourceClient) CreateFirewall(_ context.Context, name string, _ int, _ string, _ map[string]string) (*hcloudsdk.Firewall, error) {
	m.createFirewallCalls++
	if m.createFirewallErr != nil {
		return nil, m.createFirewallErr
	}
	firewall := &hcloudsdk.Firewall{Name: name}
	m.firewalls[name] = firewall
	return firewall, nil
}

func (m *mockResourceClient) EnsureSSHKey(_ context.Context, name, _ string, _ map[string]string) (*hcloudsdk.SSHKey, error) {
	m.ensureSSHKeyCalls++
	return &hcloudsdk.SSHKey{Name: name}, nil
}

func (m *mockResourceClient) DeleteServer(_ context.Context, name string) error {
	delete(m.servers, name)
	return nil
}

func (m *mockResourceClient) DeleteFirewall(_ context.Context, name string) error {
	delete(m.firewalls, name)
	return nil
}

func (m *mockResourceClient) DeleteSSHKey(_ context.Context, _ string) error {
	return nil
}

// stubKeyStore hands out a pre-generated key pair without touching disk.
type stubKeyStore struct {
	keyPair *keygen.KeyPair
}

func (s *stubKeyStore) LoadOrGenerate() (*keygen.KeyPair, error) {
	return s.keyPair, nil
}

var testKeyPair *keygen.KeyPair

func testKeys(t *testing.T) KeyStore {
	t.Helper()
	if testKeyPair == nil {
		keyPair, err := keygen.GenerateRSAKeyPair(2048)
		require.NoError(t, err)
		testKeyPair = keyPair
	}
	return &stubKeyStore{keyPair: testKeyPair}
}

func confirmAnswer(answer bool) ConfirmFunc {
	return func(context.Context, string, string) (bool, error) {
		return answer, nil
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Project:      "p1",
		Zone:         "nbg1",
		InstanceName: "vm1",
		MachineType:  "cx22",
		Strategy:     config.StrategyContainer,
	}
}

func newTestProvisioner(client hcloud.ResourceClient, confirm ConfirmFunc, t *testing.T) *Provisioner {
	return New(client, confirm, WithSettleDelay(0), WithKeyStore(testKeys(t)))
}

func TestEnsureReadyHost_CreatesEverythingWhenAbsent(t *testing.T) {
	client := newMockResourceClient()
	p := newTestProvisioner(client, confirmAnswer(true), t)

	ip, err := p.EnsureReadyHost(context.Background(), testConfig())
	require.NoError(t, err)

	assert.Equal(t, "203.0.113.5", ip)
	assert.Equal(t, 1, client.createServerCalls)
	assert.Equal(t, 1, client.createFirewallCalls)
	assert.Equal(t, 1, client.ensureSSHKeyCalls)
	assert.NotNil(t, client.servers["vm1"])
	assert.NotNil(t, client.firewalls[config.FirewallName])
}

func TestEnsureReadyHost_IdempotentOnRerun(t *testing.T) {
	client := newMockResourceClient()
	p := newTestProvisioner(client, confirmAnswer(true), t)

	_, err := p.EnsureReadyHost(context.Background(), testConfig())
	require.NoError(t, err)

	ip, err := p.EnsureReadyHost(context.Background(), testConfig())
	require.NoError(t, err)

	// Second run converges to the same IP without creating duplicates.
	assert.Equal(t, "203.0.113.5", ip)
	assert.Equal(t, 1, client.createServerCalls)
	assert.Equal(t, 1, client.createFirewallCalls)
}

func TestEnsureReadyHost_ReuseDeclinedIsFatal(t *testing.T) {
	client := newMockResourceClient()
	client.servers["vm1"] = &hcloudsdk.Server{Name: "vm1"}
	p := newTestProvisioner(client, confirmAnswer(false), t)

	_, err := p.EnsureReadyHost(context.Background(), testConfig())
	require.ErrorIs(t, err, ErrReuseDeclined)

	// Zero mutations on abort.
	assert.Equal(t, 0, client.createServerCalls)
	assert.Equal(t, 0, client.createFirewallCalls)
}

func TestEnsureReadyHost_CreateFailureStopsWorkflow(t *testing.T) {
	client := newMockResourceClient()
	client.createServerErr = errors.New("quota exceeded")
	p := newTestProvisioner(client, confirmAnswer(true), t)

	_, err := p.EnsureReadyHost(context.Background(), testConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")

	// Fail-fast ordering: no firewall creation after a failed create.
	assert.Equal(t, 0, client.createFirewallCalls)
}

func TestEnsureReadyHost_ExistingFirewallSkipped(t *testing.T) {
	client := newMockResourceClient()
	client.firewalls[config.FirewallName] = &hcloudsdk.Firewall{Name: config.FirewallName}
	p := newTestProvisioner(client, confirmAnswer(true), t)

	_, err := p.EnsureReadyHost(context.Background(), testConfig())
	require.NoError(t, err)

	// Existence alone is sufficient; no reconciliation.
	assert.Equal(t, 0, client.createFirewallCalls)
}

func TestEnsureReadyHost_QueryFailureIsFatal(t *testing.T) {
	client := newMockResourceClient()
	client.getServerErr = errors.New("control plane unavailable")
	p := newTestProvisioner(client, confirmAnswer(true), t)

	_, err := p.EnsureReadyHost(context.Background(), testConfig())
	require.Error(t, err)
	assert.Equal(t, 0, client.createServerCalls)
}

func TestEnsureReadyHost_ReusedInstanceKeepsFirewallCheck(t *testing.T) {
	client := newMockResourceClient()
	client.servers["vm1"] = &hcloudsdk.Server{Name: "vm1"}
	p := newTestProvisioner(client, confirmAnswer(true), t)

	ip, err := p.EnsureReadyHost(context.Background(), testConfig())
	require.NoError(t, err)

	assert.Equal(t, "203.0.113.5", ip)
	assert.Equal(t, 0, client.createServerCalls)
	assert.Equal(t, 1, client.createFirewallCalls)
}
