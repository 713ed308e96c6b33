// Package config defines the deployment configuration and its validation.
//
// A Config describes exactly one target: one named instance in one zone,
// deployed with one of two strategies. It is assembled interactively by the
// wizard (or loaded from msdeploy.yaml) and treated as read-only by every
// downstream component.
package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Strategy selects how the service is started on the provisioned host.
type Strategy string

const (
	// StrategyContainer builds and pushes an image, then runs it under the
	// remote Docker daemon with a restart policy.
	StrategyContainer Strategy = "container"

	// StrategyInterpreter copies the working tree to the host and runs the
	// service under a Python virtualenv, unsupervised.
	StrategyInterpreter Strategy = "interpreter"
)

// instanceNameRegex validates instance name format: 1-63 lowercase
// alphanumeric characters or hyphens, starting and ending alphanumeric.
var instanceNameRegex = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?$`)

// Config holds everything needed to drive one deployment run.
// Immutable once confirmed by the operator.
type Config struct {
	// Project is the registry namespace the image is pushed under. It also
	// labels every cloud resource the deployer creates.
	Project string `yaml:"project"`

	// Zone is the Hetzner Cloud location the instance lives in.
	Zone string `yaml:"zone"`

	// InstanceName identifies the target server within the zone.
	InstanceName string `yaml:"instance_name"`

	// MachineType is the Hetzner Cloud server type.
	MachineType string `yaml:"machine_type"`

	// Strategy is the deployment procedure to use.
	Strategy Strategy `yaml:"strategy"`
}

// Validate checks that all required fields are populated and consistent.
// Invalid configuration is fatal before any remote interaction.
func (c *Config) Validate() error {
	if c.Project == "" {
		return fmt.Errorf("project must not be empty")
	}
	if c.Zone == "" {
		return fmt.Errorf("zone must not be empty")
	}
	if c.InstanceName == "" {
		return fmt.Errorf("instance name must not be empty")
	}
	if !instanceNameRegex.MatchString(c.InstanceName) {
		return fmt.Errorf("instance name %q must be 1-63 lowercase alphanumeric characters or hyphens", c.InstanceName)
	}
	if c.MachineType == "" {
		return fmt.Errorf("machine type must not be empty")
	}
	switch c.Strategy {
	case StrategyContainer, StrategyInterpreter:
	default:
		return fmt.Errorf("unknown strategy %q (want %q or %q)", c.Strategy, StrategyContainer, StrategyInterpreter)
	}
	return nil
}

// ImageRef returns the registry-qualified image reference for this project.
// Pushing always overwrites the latest tag.
func (c *Config) ImageRef() string {
	return fmt.Sprintf("%s/%s/%s:latest", RegistryHost, c.Project, ServiceName)
}

// Load reads and validates a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return &cfg, nil
}

// Save writes the config to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}
