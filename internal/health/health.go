// Package health provides preflight checks for draft-release. It validates
// that a token is configured, that the repository and branch can be
// resolved, and that the categories document loads, returning structured
// reports used by the 'draft-release doctor' command.
package health

import (
	"context"
	"fmt"
	"strings"

	"github.com/ariel-frischer/draft-release/internal/changelog"
	"github.com/ariel-frischer/draft-release/internal/git"
)

// Inputs are the resolved values the checks inspect.
type Inputs struct {
	Token      string
	Repository string
	Ref        string
	ConfigPath string
	// Dir is the working tree used when Repository or Ref are empty.
	Dir string
}

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
}

// HealthReport contains all health check results
type HealthReport struct {
	Checks []CheckResult
	Passed bool
}

// RunHealthChecks runs all health checks and returns a report.
func RunHealthChecks(ctx context.Context, in Inputs) *HealthReport {
	report := &HealthReport{Passed: true}
	for _, check := range []CheckResult{
		CheckToken(in.Token),
		CheckRepository(in.Repository, in.Dir),
		CheckRef(in.Ref, in.Dir),
		CheckCategories(ctx, in.ConfigPath),
	} {
		report.Checks = append(report.Checks, check)
		if !check.Passed {
			report.Passed = false
		}
	}
	return report
}

// FormatReport formats the health report for console output
func FormatReport(report *HealthReport) string {
	var sb strings.Builder
	for _, check := range report.Checks {
		mark := "✓"
		if !check.Passed {
			mark = "✗"
		}
		fmt.Fprintf(&sb, "%s %s: %s\n", mark, check.Name, check.Message)
	}
	return sb.String()
}

// CheckToken reports whether an API token is configured. The token itself
// is never echoed.
func CheckToken(token string) CheckResult {
	if token == "" {
		return CheckResult{
			Name:    "GitHub token",
			Passed:  false,
			Message: "not configured (set GITHUB_TOKEN or DRAFT_RELEASE_GITHUB_TOKEN)",
		}
	}
	return CheckResult{Name: "GitHub token", Passed: true, Message: "configured"}
}

// CheckRepository validates the owner/name slug, falling back to the origin
// remote of the repository at dir.
func CheckRepository(repository, dir string) CheckResult {
	if repository != "" {
		if _, _, ok := strings.Cut(repository, "/"); !ok {
			return CheckResult{
				Name:    "Repository",
				Passed:  false,
				Message: fmt.Sprintf("%q is not owner/name", repository),
			}
		}
		return CheckResult{Name: "Repository", Passed: true, Message: repository}
	}

	slug, err := git.RepositorySlug(dir)
	if err != nil {
		return CheckResult{Name: "Repository", Passed: false, Message: err.Error()}
	}
	return CheckResult{Name: "Repository", Passed: true, Message: slug + " (from origin remote)"}
}

// CheckRef validates the ref being released. Refs outside refs/heads/ pass
// but are flagged, since no previous release can be matched to them.
func CheckRef(ref, dir string) CheckResult {
	source := ""
	if ref == "" {
		var err error
		ref, err = git.CurrentRef(dir)
		if err != nil {
			return CheckResult{Name: "Ref", Passed: false, Message: err.Error()}
		}
		source = " (from HEAD)"
	}
	if !strings.HasPrefix(ref, "refs/heads/") {
		return CheckResult{Name: "Ref", Passed: true, Message: ref + source + "; not a branch, versions start from v0.0.0"}
	}
	return CheckResult{Name: "Ref", Passed: true, Message: ref + source}
}

// CheckCategories loads the categories document at location.
func CheckCategories(ctx context.Context, location string) CheckResult {
	doc, err := changelog.Load(ctx, location)
	if err != nil {
		return CheckResult{Name: "Categories", Passed: false, Message: err.Error()}
	}
	msg := fmt.Sprintf("%d categories in %s", len(doc.Changelog.Categories), location)
	if !doc.HasCatchAll() {
		msg += "; no catch-all (*) category"
	}
	return CheckResult{Name: "Categories", Passed: true, Message: msg}
}
