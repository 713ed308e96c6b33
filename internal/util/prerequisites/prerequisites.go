// Package prerequisites provides utilities for checking required client tools.
//
// The container strategy drives a local Docker daemon to build and push the
// service image, so the docker binary must be present before any remote
// interaction happens. Missing required tools abort the run up front.
package prerequisites

import (
	"fmt"
	"os/exec"
	"strings"
)

// Tool represents a client tool that may be required.
type Tool struct {
	// Name is the binary name to look for in PATH.
	Name string

	// Required indicates if this tool is mandatory.
	Required bool

	// Description explains what the tool is used for.
	Description string

	// InstallURL provides a URL for installation instructions.
	InstallURL string
}

// ContainerTools returns the tools required by the container strategy.
func ContainerTools() []Tool {
	return []Tool{
		{
			Name:        "docker",
			Required:    true,
			Description: "Required for building and pushing the service image",
			InstallURL:  "https://docs.docker.com/get-docker/",
		},
	}
}

// OptionalTools returns tools that are useful but not required.
func OptionalTools() []Tool {
	return []Tool{
		{
			Name:        "ssh",
			Required:    false,
			Description: "Useful for inspecting the instance manually",
			InstallURL:  "https://www.openssh.com/",
		},
	}
}

// CheckResult contains the result of checking a single tool.
type CheckResult struct {
	Tool    Tool
	Found   bool
	Path    string
	Version string
}

// CheckResults contains the results of checking multiple tools.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// HasErrors returns true if any required tools are missing.
func (r *CheckResults) HasErrors() bool {
	for _, tool := range r.Missing {
		if tool.Required {
			return true
		}
	}
	return false
}

// Error returns an error if any required tools are missing.
func (r *CheckResults) Error() error {
	var missing []string
	for _, tool := range r.Missing {
		if tool.Required {
			missing = append(missing, fmt.Sprintf("%s (%s)", tool.Name, tool.InstallURL))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
}

// Check verifies that the specified tools are available.
func Check(tools []Tool) *CheckResults {
	results := &CheckResults{}

	for _, tool := range tools {
		result := CheckResult{Tool: tool}

		path, err := exec.LookPath(tool.Name)
		if err == nil {
			result.Found = true
			result.Path = path
			result.Version = getToolVersion(tool.Name)
		} else {
			results.Missing = append(results.Missing, tool)
		}

		results.Results = append(results.Results, result)
	}

	return results
}

// CheckAll checks container tools plus optional tools.
func CheckAll() *CheckResults {
	container := ContainerTools()
	optional := OptionalTools()
	all := make([]Tool, 0, len(container)+len(optional))
	all = append(all, container...)
	all = append(all, optional...)
	return Check(all)
}

// getToolVersion attempts to get the version of a tool.
// Returns empty string if version cannot be determined.
func getToolVersion(name string) string {
	versionFlags := []string{"--version", "version", "-v"}

	for _, flag := range versionFlags {
		// #nosec G204 - name comes from trusted Tool definitions, not user input
		cmd := exec.Command(name, flag)
		output, err := cmd.Output()
		if err == nil {
			lines := strings.SplitN(string(output), "\n", 2)
			return strings.TrimSpace(lines[0])
		}
	}

	return ""
}
