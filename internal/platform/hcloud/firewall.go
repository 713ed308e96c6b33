package hcloud

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// GetFirewall returns the firewall with the given name, or nil if absent.
func (c *RealClient) GetFirewall(ctx context.Context, name string) (*hcloud.Firewall, error) {
	firewall, _, err := c.client.Firewall.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get firewall %s: %w", name, err)
	}
	return firewall, nil
}

// CreateFirewall creates a firewall allowing inbound TCP on port from
// anywhere, applied to all servers matching selector.
func (c *RealClient) CreateFirewall(ctx context.Context, name string, port int, selector string, labels map[string]string) (*hcloud.Firewall, error) {
	rules := []hcloud.FirewallRule{
		{
			Direction:   hcloud.FirewallRuleDirectionIn,
			Protocol:    hcloud.FirewallRuleProtocolTCP,
			Port:        hcloud.Ptr(strconv.Itoa(port)),
			Description: hcloud.Ptr("model-serving HTTP"),
			SourceIPs: []net.IPNet{
				{IP: net.IPv4zero, Mask: net.CIDRMask(0, 32)},
				{IP: net.IPv6zero, Mask: net.CIDRMask(0, 128)},
			},
		},
		{
			Direction:   hcloud.FirewallRuleDirectionIn,
			Protocol:    hcloud.FirewallRuleProtocolTCP,
			Port:        hcloud.Ptr("22"),
			Description: hcloud.Ptr("deployer SSH access"),
			SourceIPs: []net.IPNet{
				{IP: net.IPv4zero, Mask: net.CIDRMask(0, 32)},
				{IP: net.IPv6zero, Mask: net.CIDRMask(0, 128)},
			},
		},
	}

	result, _, err := c.client.Firewall.Create(ctx, hcloud.FirewallCreateOpts{
		Name:   name,
		Rules:  rules,
		Labels: labels,
		ApplyTo: []hcloud.FirewallResource{
			{
				Type: hcloud.FirewallResourceTypeLabelSelector,
				LabelSelector: &hcloud.FirewallResourceLabelSelector{
					Selector: selector,
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create firewall %s: %w", name, err)
	}

	if err := c.client.Action.WaitFor(ctx, result.Actions...); err != nil {
		return nil, fmt.Errorf("failed to wait for firewall creation: %w", err)
	}

	return result.Firewall, nil
}

// DeleteFirewall deletes the named firewall. Absence is treated as success.
func (c *RealClient) DeleteFirewall(ctx context.Context, name string) error {
	firewall, err := c.GetFirewall(ctx, name)
	if err != nil {
		return err
	}
	if firewall == nil {
		return nil
	}

	if _, err := c.client.Firewall.Delete(ctx, firewall); err != nil {
		return fmt.Errorf("failed to delete firewall %s: %w", name, err)
	}
	return nil
}
