package deploy

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/msdeploy/msdeploy/internal/config"
	"github.com/msdeploy/msdeploy/internal/platform/ssh"
)

// remoteAppDir is where the working tree lands on the host, relative to the
// SSH user's home directory.
const remoteAppDir = "model-serving"

// processPattern matches the service process for the pre-start kill.
const processPattern = "uvicorn main:app"

// Interpreter deploys the service from source under a Python virtualenv.
// Unlike the container strategy there is no supervision: if the process
// crashes, nothing restarts it.
type Interpreter struct {
	runner    ssh.Runner
	sourceDir string
}

// Name implements Strategy.
func (s *Interpreter) Name() string {
	return string(config.StrategyInterpreter)
}

// Deploy copies the working tree and starts the service as a detached
// background process with output redirected to a log file.
func (s *Interpreter) Deploy(ctx context.Context, cfg *config.Config, ip string) error {
	log.WithFields(log.Fields{"ip": ip, "dir": remoteAppDir}).Info("Copying working tree")

	if err := s.runner.CopyTree(ctx, s.sourceDir, remoteAppDir); err != nil {
		return fmt.Errorf("failed to copy working tree: %w", err)
	}

	install := "DEBIAN_FRONTEND=noninteractive apt-get update -y && " +
		"DEBIAN_FRONTEND=noninteractive apt-get install -y python3-venv python3-pip"
	if _, err := s.runner.Run(ctx, install); err != nil {
		return fmt.Errorf("failed to install interpreter tooling: %w", err)
	}

	venv := fmt.Sprintf("cd %s && python3 -m venv .venv", remoteAppDir)
	if _, err := s.runner.Run(ctx, venv); err != nil {
		return fmt.Errorf("failed to create virtualenv: %w", err)
	}

	deps := fmt.Sprintf("cd %s && .venv/bin/pip install -r requirements.txt", remoteAppDir)
	if _, err := s.runner.Run(ctx, deps); err != nil {
		return fmt.Errorf("failed to install dependencies: %w", err)
	}

	// Best-effort kill of a previous instance. pkill exits non-zero when
	// nothing matches, which is the normal first-deploy case.
	if output, err := s.runner.Run(ctx, fmt.Sprintf("pkill -f %q", processPattern)); err != nil {
		log.WithField("output", output).Warn("no previous service process to stop")
	}

	start := fmt.Sprintf(
		"cd %s && (nohup .venv/bin/uvicorn main:app --host 0.0.0.0 --port %d >> service.log 2>&1 &)",
		remoteAppDir, config.ServicePort)
	if _, err := s.runner.Run(ctx, start); err != nil {
		return fmt.Errorf("failed to start service: %w", err)
	}

	log.Info("Service started in background, logging to service.log")
	return nil
}
