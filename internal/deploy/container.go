package deploy

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/msdeploy/msdeploy/internal/config"
	"github.com/msdeploy/msdeploy/internal/image"
	"github.com/msdeploy/msdeploy/internal/platform/ssh"
)

// Container deploys the service as a Docker container with an
// unless-stopped restart policy.
type Container struct {
	runner ssh.Runner
	pusher ImagePusher
}

// Name implements Strategy.
func (s *Container) Name() string {
	return string(config.StrategyContainer)
}

// Deploy builds and pushes the image, then replaces any previously running
// container on the host. The remote host is only touched after the push
// succeeded.
func (s *Container) Deploy(ctx context.Context, cfg *config.Config, ip string) error {
	ref, err := s.pusher.BuildAndPush(ctx, cfg)
	if err != nil {
		return err
	}

	username, password, err := image.RegistryCredentials()
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{"ip": ip, "image": ref}).Info("Deploying container")

	login := fmt.Sprintf("echo %q | docker login --username %q --password-stdin %s",
		password, username, config.RegistryHost)
	if _, err := s.runner.Run(ctx, login); err != nil {
		return fmt.Errorf("remote docker login failed: %w", err)
	}

	if _, err := s.runner.Run(ctx, "docker pull "+ref); err != nil {
		return fmt.Errorf("remote docker pull failed: %w", err)
	}

	// Best-effort cleanup of a previous container. "No such container" is
	// the common case on first deploy and must not abort the run.
	if output, err := s.runner.Run(ctx, "docker stop "+config.ServiceName); err != nil {
		log.WithField("output", output).Warn("docker stop failed, continuing")
	}
	if output, err := s.runner.Run(ctx, "docker rm "+config.ServiceName); err != nil {
		log.WithField("output", output).Warn("docker rm failed, continuing")
	}

	run := fmt.Sprintf("docker run -d --name %s --restart unless-stopped -p %d:%d %s",
		config.ServiceName, config.ServicePort, config.ServicePort, ref)
	if _, err := s.runner.Run(ctx, run); err != nil {
		return fmt.Errorf("remote docker run failed: %w", err)
	}

	// Liveness signal only: confirms the container started, not that it
	// serves requests.
	output, err := s.runner.Run(ctx, "docker ps --filter name="+config.ServiceName)
	if err != nil {
		return fmt.Errorf("remote docker ps failed: %w", err)
	}
	log.WithField("containers", output).Info("Container started")

	return nil
}
