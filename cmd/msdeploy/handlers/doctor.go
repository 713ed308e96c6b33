package handlers

import (
	"fmt"

	"github.com/msdeploy/msdeploy/internal/ui"
	"github.com/msdeploy/msdeploy/internal/util/prerequisites"
)

// checkAllPrereqs checks every known tool (for testing injection).
var checkAllPrereqs = prerequisites.CheckAll

// Doctor checks the local toolchain and prints the results. It returns an
// error when a required tool is missing.
func Doctor() error {
	results := checkAllPrereqs()

	fmt.Println(ui.RenderPrerequisites(results))

	return results.Error()
}
