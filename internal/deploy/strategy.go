// Package deploy makes the service run on a provisioned, reachable host.
//
// Two mutually exclusive strategies implement the same contract: the
// container strategy pushes an image and runs it under the remote Docker
// daemon with a restart policy; the interpreter strategy copies the working
// tree and runs the service under a virtualenv without supervision. The
// variant set is closed and selected once from configuration, keeping the
// provisioning and verification phases strategy-agnostic.
package deploy

import (
	"context"
	"fmt"

	"github.com/msdeploy/msdeploy/internal/config"
	"github.com/msdeploy/msdeploy/internal/platform/ssh"
)

// Strategy makes the target service process run and stay running on a host.
type Strategy interface {
	// Name identifies the strategy in logs and the final report.
	Name() string

	// Deploy starts the service on the host at ip.
	Deploy(ctx context.Context, cfg *config.Config, ip string) error
}

// ImagePusher builds and pushes the service image, returning its reference.
// Implemented by the image pipeline.
type ImagePusher interface {
	BuildAndPush(ctx context.Context, cfg *config.Config) (string, error)
}

// ForConfig returns the strategy selected by the configuration.
func ForConfig(cfg *config.Config, runner ssh.Runner, pusher ImagePusher) (Strategy, error) {
	switch cfg.Strategy {
	case config.StrategyContainer:
		return &Container{runner: runner, pusher: pusher}, nil
	case config.StrategyInterpreter:
		return &Interpreter{runner: runner, sourceDir: "."}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", cfg.Strategy)
	}
}
