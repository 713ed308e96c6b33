// Package ui renders operator-facing summaries for the deployment CLI.
package ui

import (
	"fmt"
	"strings"

	"github.com/msdeploy/msdeploy/internal/config"
	"github.com/msdeploy/msdeploy/internal/util/prerequisites"
	"github.com/msdeploy/msdeploy/internal/verify"
)

// DeploymentReport is the terminal state of one deployment run.
type DeploymentReport struct {
	ExternalIP   string
	Strategy     string
	Verification verify.Result
}

// RenderReport renders the final deployment summary. It is shown whatever
// the verification outcome was.
func RenderReport(report DeploymentReport) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Deployment Summary"))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("  External IP:  %s\n", report.ExternalIP))
	if report.Strategy != "" {
		b.WriteString(fmt.Sprintf("  Strategy:     %s\n", report.Strategy))
	}
	b.WriteString(fmt.Sprintf("  Service URL:  http://%s:%d\n\n", report.ExternalIP, config.ServicePort))

	b.WriteString(probeLine("GET /health", report.Verification.HealthOK))
	b.WriteString(probeLine("GET /", report.Verification.RootOK))

	if !report.Verification.HealthOK || !report.Verification.RootOK {
		b.WriteString("\n")
		b.WriteString(warningStyle.Render(warnMark + " Some probes failed. The service may still be starting; re-run `msdeploy verify` in a moment."))
		b.WriteString("\n")
	}

	return b.String()
}

func probeLine(label string, ok bool) string {
	if ok {
		return fmt.Sprintf("  %s %s\n", okStyle.Render(checkMark), label)
	}
	return fmt.Sprintf("  %s %s\n", failStyle.Render(crossMark), label)
}

// RenderPrerequisites renders tool check results for the doctor command.
func RenderPrerequisites(results *prerequisites.CheckResults) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Prerequisite Check"))
	b.WriteString("\n\n")

	for _, result := range results.Results {
		switch {
		case result.Found:
			b.WriteString(fmt.Sprintf("  %s %s", okStyle.Render(checkMark), result.Tool.Name))
			if result.Version != "" {
				b.WriteString(dimStyle.Render("  " + result.Version))
			}
		case result.Tool.Required:
			b.WriteString(fmt.Sprintf("  %s %s  %s", failStyle.Render(crossMark), result.Tool.Name,
				dimStyle.Render(result.Tool.InstallURL)))
		default:
			b.WriteString(fmt.Sprintf("  %s %s  %s", warningStyle.Render(warnMark), result.Tool.Name,
				dimStyle.Render("optional, "+result.Tool.InstallURL)))
		}
		b.WriteString("\n")
	}

	return b.String()
}
