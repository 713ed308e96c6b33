package wizard

import (
	"context"
	"fmt"
	"regexp"

	"github.com/charmbracelet/huh"

	"github.com/msdeploy/msdeploy/internal/config"
)

// instanceNameRegex validates instance name format: 1-63 lowercase
// alphanumeric characters or hyphens.
var instanceNameRegex = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?$`)

// runTargetGroup prompts for project, zone, instance name and machine type.
func runTargetGroup(ctx context.Context, cfg *config.Config) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project").
				Description("Registry namespace the image is pushed under").
				Placeholder("my-project").
				Value(&cfg.Project).
				Validate(validateProject),
			huh.NewSelect[string]().
				Title("Zone").
				Description("Hetzner Cloud datacenter").
				Options(ZonesToOptions()...).
				Value(&cfg.Zone),
			huh.NewInput().
				Title("Instance Name").
				Description("1-63 lowercase alphanumeric characters or hyphens").
				Placeholder("model-serving-vm").
				Value(&cfg.InstanceName).
				Validate(validateInstanceName),
			huh.NewSelect[string]().
				Title("Machine Type").
				Description("Server type for the instance").
				Options(MachineTypesToOptions()...).
				Value(&cfg.MachineType),
		).Title("Deployment Target"),
	).RunWithContext(ctx)
}

// runStrategyGroup prompts for the deployment strategy.
func runStrategyGroup(ctx context.Context, cfg *config.Config) error {
	strategy := string(config.StrategyContainer) // default

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Deployment Strategy").
				Description("How the service is started on the host").
				Options(StrategyOptions...).
				Value(&strategy),
		).Title("Strategy"),
	).RunWithContext(ctx)

	if err != nil {
		return err
	}

	cfg.Strategy = config.Strategy(strategy)
	return nil
}

// runConfirmGroup shows the collected configuration and asks for the final
// go-ahead before anything is mutated.
func runConfirmGroup(ctx context.Context, cfg *config.Config) (bool, error) {
	confirmed := false

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Proceed with deployment?").
				Description(fmt.Sprintf("project=%s zone=%s instance=%s type=%s strategy=%s",
					cfg.Project, cfg.Zone, cfg.InstanceName, cfg.MachineType, cfg.Strategy)).
				Affirmative("Deploy").
				Negative("Cancel").
				Value(&confirmed),
		),
	).RunWithContext(ctx)

	return confirmed, err
}

// Confirm asks a single yes/no question. It backs the reuse-existing-instance
// and destroy prompts, so callers outside this package never touch huh
// directly.
func Confirm(ctx context.Context, title, description string) (bool, error) {
	confirmed := false

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Value(&confirmed),
		),
	).RunWithContext(ctx)

	return confirmed, err
}

func validateProject(s string) error {
	if s == "" {
		return errProjectRequired
	}
	return nil
}

func validateInstanceName(s string) error {
	if !instanceNameRegex.MatchString(s) {
		return errInstanceNameInvalid
	}
	return nil
}
