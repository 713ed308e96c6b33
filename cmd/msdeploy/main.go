// Package main is the entry point for the msdeploy CLI.
//
// msdeploy deploys the model-serving HTTP service to a single cloud
// instance. It provisions the instance and firewall, rolls the service out
// with either a container image or a plain interpreter process, and probes
// the service endpoints afterwards.
//
// Commands: init, deploy, verify, destroy, doctor, version.
//
// For detailed usage information, run:
//
//	msdeploy --help
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/msdeploy/msdeploy/cmd/msdeploy/commands"
	"github.com/msdeploy/msdeploy/internal/config/wizard"
	"github.com/msdeploy/msdeploy/internal/provision"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		// Operator-chosen cancellation is a clean exit, not a failure.
		if errors.Is(err, wizard.ErrCancelled) || errors.Is(err, provision.ErrReuseDeclined) {
			fmt.Println(err)
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
