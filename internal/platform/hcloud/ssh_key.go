package hcloud

import (
	"context"
	"fmt"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// EnsureSSHKey registers the public key under the given name, reusing an
// existing key with that name if present.
func (c *RealClient) EnsureSSHKey(ctx context.Context, name, publicKey string, labels map[string]string) (*hcloud.SSHKey, error) {
	key, _, err := c.client.SSHKey.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get SSH key %s: %w", name, err)
	}
	if key != nil {
		return key, nil
	}

	key, _, err = c.client.SSHKey.Create(ctx, hcloud.SSHKeyCreateOpts{
		Name:      name,
		PublicKey: publicKey,
		Labels:    labels,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create SSH key %s: %w", name, err)
	}
	return key, nil
}

// DeleteSSHKey deletes the named SSH key. Absence is treated as success.
func (c *RealClient) DeleteSSHKey(ctx context.Context, name string) error {
	key, _, err := c.client.SSHKey.GetByName(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to get SSH key %s: %w", name, err)
	}
	if key == nil {
		return nil
	}

	if _, err := c.client.SSHKey.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete SSH key %s: %w", name, err)
	}
	return nil
}
