package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/msdeploy/msdeploy/internal/util/prerequisites"
	"github.com/msdeploy/msdeploy/internal/verify"
)

func TestRenderReport_AllProbesOK(t *testing.T) {
	t.Parallel()

	out := RenderReport(DeploymentReport{
		ExternalIP:   "203.0.113.5",
		Strategy:     "container",
		Verification: verify.Result{HealthOK: true, RootOK: true},
	})

	assert.Contains(t, out, "203.0.113.5")
	assert.Contains(t, out, "container")
	assert.Contains(t, out, "http://203.0.113.5:8001")
	assert.Contains(t, out, "GET /health")
	assert.NotContains(t, out, "probes failed")
}

func TestRenderReport_FailedProbesStillRender(t *testing.T) {
	t.Parallel()

	out := RenderReport(DeploymentReport{
		ExternalIP:   "203.0.113.5",
		Strategy:     "interpreter",
		Verification: verify.Result{},
	})

	// Verification failure is a warning, not an omission.
	assert.Contains(t, out, "GET /health")
	assert.Contains(t, out, "GET /")
	assert.Contains(t, out, "probes failed")
}

func TestRenderPrerequisites(t *testing.T) {
	t.Parallel()

	results := &prerequisites.CheckResults{
		Results: []prerequisites.CheckResult{
			{Tool: prerequisites.Tool{Name: "docker", Required: true}, Found: true, Version: "Docker version 27.0"},
			{Tool: prerequisites.Tool{Name: "missing-required", Required: true, InstallURL: "https://example.com"}},
			{Tool: prerequisites.Tool{Name: "missing-optional", InstallURL: "https://example.com"}},
		},
	}

	out := RenderPrerequisites(results)

	assert.Contains(t, out, "docker")
	assert.Contains(t, out, "Docker version 27.0")
	assert.Contains(t, out, "missing-required")
	assert.Contains(t, out, "optional")
}
