package hcloud

import (
	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// RealClient implements ResourceClient using the Hetzner Cloud API.
type RealClient struct {
	client *hcloud.Client
}

// ClientOption configures a RealClient.
type ClientOption func(*RealClient)

// WithHCloudClient sets a custom hcloud client (useful for testing).
func WithHCloudClient(hc *hcloud.Client) ClientOption {
	return func(c *RealClient) {
		c.client = hc
	}
}

// NewRealClient creates a new RealClient with optional configuration.
func NewRealClient(token string, opts ...ClientOption) *RealClient {
	c := &RealClient{
		client: hcloud.NewClient(hcloud.WithToken(token)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HCloudClient returns the underlying hcloud.Client for operations not
// exposed through ResourceClient.
func (c *RealClient) HCloudClient() *hcloud.Client {
	return c.client
}
