package wizard

import (
	"github.com/charmbracelet/huh"

	"github.com/msdeploy/msdeploy/internal/config"
)

// ZoneOption represents a Hetzner Cloud datacenter location.
type ZoneOption struct {
	Value       string
	Label       string
	Description string
}

// MachineTypeOption represents a Hetzner Cloud server type.
type MachineTypeOption struct {
	Value       string
	Label       string
	Description string
}

// Zones contains all valid Hetzner Cloud datacenter locations.
var Zones = []ZoneOption{
	{Value: "nbg1", Label: "nbg1", Description: "Nuremberg, Germany"},
	{Value: "fsn1", Label: "fsn1", Description: "Falkenstein, Germany"},
	{Value: "hel1", Label: "hel1", Description: "Helsinki, Finland"},
	{Value: "ash", Label: "ash", Description: "Ashburn, USA"},
	{Value: "hil", Label: "hil", Description: "Hillsboro, USA"},
	{Value: "sin", Label: "sin", Description: "Singapore"},
}

// MachineTypes contains recommended server types for a single-instance
// model-serving deployment.
var MachineTypes = []MachineTypeOption{
	{Value: "cx22", Label: "cx22", Description: "2 vCPU, 4GB RAM (Intel)"},
	{Value: "cpx21", Label: "cpx21", Description: "3 vCPU, 4GB RAM (AMD)"},
	{Value: "cpx31", Label: "cpx31", Description: "4 vCPU, 8GB RAM (AMD)"},
	{Value: "cpx41", Label: "cpx41", Description: "8 vCPU, 16GB RAM (AMD)"},
	{Value: "ccx13", Label: "ccx13", Description: "2 vCPU, 8GB RAM (Dedicated)"},
}

// StrategyOptions are the two mutually exclusive deployment procedures.
var StrategyOptions = []huh.Option[string]{
	huh.NewOption("Container (Docker image, restart policy)", string(config.StrategyContainer)),
	huh.NewOption("Interpreter (virtualenv, unsupervised)", string(config.StrategyInterpreter)),
}

// ZonesToOptions converts zones to huh select options.
func ZonesToOptions() []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(Zones))
	for _, z := range Zones {
		options = append(options, huh.NewOption(z.Label+" - "+z.Description, z.Value))
	}
	return options
}

// MachineTypesToOptions converts machine types to huh select options.
func MachineTypesToOptions() []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(MachineTypes))
	for _, mt := range MachineTypes {
		options = append(options, huh.NewOption(mt.Label+" - "+mt.Description, mt.Value))
	}
	return options
}
