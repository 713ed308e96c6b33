// Package wizard collects the deployment configuration interactively.
//
// The wizard is the only place that asks questions about the target; it
// returns a fully populated, validated config before any mutation begins.
// Downstream components never prompt for configuration themselves.
package wizard

import (
	"context"
	"fmt"

	"github.com/msdeploy/msdeploy/internal/config"
)

// Run walks the operator through the deployment questions and returns the
// confirmed configuration. Declining the final confirmation returns
// [ErrCancelled].
func Run(ctx context.Context) (*config.Config, error) {
	cfg := &config.Config{}

	if err := runTargetGroup(ctx, cfg); err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}

	if err := runStrategyGroup(ctx, cfg); err != nil {
		return nil, fmt.Errorf("strategy: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	confirmed, err := runConfirmGroup(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("confirmation: %w", err)
	}
	if !confirmed {
		return nil, ErrCancelled
	}

	return cfg, nil
}
