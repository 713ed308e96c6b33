package config

import "time"

// Service contract. The listening port belongs to the model-serving service
// itself and is not negotiated by the deployer.
const (
	// ServiceName is the well-known name used for the image, the remote
	// container and the firewall rule.
	ServiceName = "model-serving"

	// ServicePort is the fixed TCP port the service listens on.
	ServicePort = 8001

	// RegistryHost is the container registry the image is pushed to.
	RegistryHost = "docker.io"
)

// Cloud resource parameters.
const (
	// FirewallName is the fixed name of the single firewall rule the
	// deployer maintains.
	FirewallName = "model-serving-allow-http"

	// ServerImage is the OS image new instances boot from.
	ServerImage = "ubuntu-24.04"

	// RoleLabel marks the instance so the firewall can target it by
	// label selector.
	RoleLabel = "role"

	// RoleHTTPServer is the label value the firewall selects on.
	RoleHTTPServer = "http-server"

	// SSHKeyName is the name of the uploaded deployer SSH key.
	SSHKeyName = "msdeploy"
)

// Settle delays. Flat sleeps stand in for readiness polling: the instance
// needs time for cloud-init to install Docker, and the service needs time
// to bind its port before probing.
const (
	// CreateSettleDelay is waited after creating a new instance.
	CreateSettleDelay = 60 * time.Second

	// DeploySettleDelay is waited after starting the service, before the
	// verification probes run.
	DeploySettleDelay = 10 * time.Second
)

// DefaultConfigFile is the config file name auto-detected in the working
// directory.
const DefaultConfigFile = "msdeploy.yaml"

// StateDir holds deployer-local state next to the config file, currently
// just the generated SSH key pair.
const StateDir = ".msdeploy"
