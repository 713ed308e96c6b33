package hcloud

import (
	"context"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// ServerCreateOpts holds all parameters for creating a compute instance.
type ServerCreateOpts struct {
	Name        string
	MachineType string
	Zone        string
	Image       string
	UserData    string
	Labels      map[string]string
	SSHKeys     []*hcloud.SSHKey
}

// ResourceClient is the deployer's view of the cloud control plane.
type ResourceClient interface {
	// GetServer returns the server with the given name, or nil if it does
	// not exist.
	GetServer(ctx context.Context, name string) (*hcloud.Server, error)

	// CreateServer creates a new server and waits for the create action to
	// complete. The returned server carries its assigned public network.
	CreateServer(ctx context.Context, opts ServerCreateOpts) (*hcloud.Server, error)

	// GetServerIP returns the public IPv4 address of the named server.
	GetServerIP(ctx context.Context, name string) (string, error)

	// GetFirewall returns the firewall with the given name, or nil if it
	// does not exist.
	GetFirewall(ctx context.Context, name string) (*hcloud.Firewall, error)

	// CreateFirewall creates a firewall allowing inbound TCP on port,
	// applied to all servers matching selector.
	CreateFirewall(ctx context.Context, name string, port int, selector string, labels map[string]string) (*hcloud.Firewall, error)

	// EnsureSSHKey registers the public key under the given name, reusing
	// an existing key with that name if present.
	EnsureSSHKey(ctx context.Context, name, publicKey string, labels map[string]string) (*hcloud.SSHKey, error)

	// DeleteServer deletes the named server. Deleting a server that does
	// not exist is not an error.
	DeleteServer(ctx context.Context, name string) error

	// DeleteFirewall deletes the named firewall. Deleting a firewall that
	// does not exist is not an error.
	DeleteFirewall(ctx context.Context, name string) error

	// DeleteSSHKey deletes the named SSH key. Deleting a key that does not
	// exist is not an error.
	DeleteSSHKey(ctx context.Context, name string) error
}
