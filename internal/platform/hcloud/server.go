package hcloud

import (
	"context"
	"fmt"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// GetServer returns the server with the given name, or nil if absent.
func (c *RealClient) GetServer(ctx context.Context, name string) (*hcloud.Server, error) {
	server, _, err := c.client.Server.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get server %s: %w", name, err)
	}
	return server, nil
}

// CreateServer creates a new server and waits for the create action to
// complete. Boot-level readiness (cloud-init finishing) is the caller's
// concern.
func (c *RealClient) CreateServer(ctx context.Context, opts ServerCreateOpts) (*hcloud.Server, error) {
	createOpts, err := c.buildServerCreateOpts(ctx, opts)
	if err != nil {
		return nil, err
	}

	result, _, err := c.client.Server.Create(ctx, createOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create server %s: %w", opts.Name, err)
	}

	actions := append([]*hcloud.Action{result.Action}, result.NextActions...)
	if err := c.client.Action.WaitFor(ctx, actions...); err != nil {
		return nil, fmt.Errorf("failed to wait for server creation: %w", err)
	}

	return result.Server, nil
}

// buildServerCreateOpts resolves machine type, image and location into the
// API objects the create call needs.
func (c *RealClient) buildServerCreateOpts(ctx context.Context, opts ServerCreateOpts) (hcloud.ServerCreateOpts, error) {
	serverType, _, err := c.client.ServerType.Get(ctx, opts.MachineType)
	if err != nil {
		return hcloud.ServerCreateOpts{}, fmt.Errorf("failed to get server type: %w", err)
	}
	if serverType == nil {
		return hcloud.ServerCreateOpts{}, fmt.Errorf("server type not found: %s", opts.MachineType)
	}

	image, _, err := c.client.Image.GetByNameAndArchitecture(ctx, opts.Image, serverType.Architecture)
	if err != nil {
		return hcloud.ServerCreateOpts{}, fmt.Errorf("failed to get image: %w", err)
	}
	if image == nil {
		return hcloud.ServerCreateOpts{}, fmt.Errorf("image not found: %s (%s)", opts.Image, serverType.Architecture)
	}

	location, _, err := c.client.Location.Get(ctx, opts.Zone)
	if err != nil {
		return hcloud.ServerCreateOpts{}, fmt.Errorf("failed to get location: %w", err)
	}
	if location == nil {
		return hcloud.ServerCreateOpts{}, fmt.Errorf("location not found: %s", opts.Zone)
	}

	return hcloud.ServerCreateOpts{
		Name:       opts.Name,
		ServerType: serverType,
		Image:      image,
		Location:   location,
		UserData:   opts.UserData,
		Labels:     opts.Labels,
		SSHKeys:    opts.SSHKeys,
	}, nil
}

// GetServerIP returns the public IPv4 address of the named server.
func (c *RealClient) GetServerIP(ctx context.Context, name string) (string, error) {
	server, err := c.GetServer(ctx, name)
	if err != nil {
		return "", err
	}
	if server == nil {
		return "", fmt.Errorf("server not found: %s", name)
	}
	if server.PublicNet.IPv4.IsUnspecified() {
		return "", fmt.Errorf("server %s has no public IPv4 address", name)
	}
	return server.PublicNet.IPv4.IP.String(), nil
}

// DeleteServer deletes the named server. Absence is treated as success.
func (c *RealClient) DeleteServer(ctx context.Context, name string) error {
	server, err := c.GetServer(ctx, name)
	if err != nil {
		return err
	}
	if server == nil {
		return nil
	}

	result, _, err := c.client.Server.DeleteWithResult(ctx, server)
	if err != nil {
		return fmt.Errorf("failed to delete server %s: %w", name, err)
	}
	if err := c.client.Action.WaitFor(ctx, result.Action); err != nil {
		return fmt.Errorf("failed to wait for server deletion: %w", err)
	}
	return nil
}
