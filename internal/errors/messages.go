package errors

import "fmt"

// Common error messages for the draft-release CLI.

// MissingToken creates an error when no API token is configured.
func MissingToken() *CLIError {
	return NewPrerequisiteError(
		"no GitHub token configured",
		"In a workflow, pass github-token: ${{ secrets.GITHUB_TOKEN }}",
		"Locally, export GITHUB_TOKEN or DRAFT_RELEASE_GITHUB_TOKEN",
	)
}

// MissingRepository creates an error when the repository cannot be resolved.
func MissingRepository(cause error) *CLIError {
	return withCause(cause, Prerequisite,
		"could not determine the repository",
		"Pass --repository owner/name",
		"Or run inside a clone whose origin remote points at GitHub",
	)
}

// MissingRef creates an error when the ref being released cannot be resolved.
func MissingRef(cause error) *CLIError {
	return withCause(cause, Prerequisite,
		"could not determine the branch to release",
		"Pass --ref refs/heads/<branch>",
		"Or check out a branch instead of a detached HEAD",
	)
}

// ConfigInvalid creates an error for a configuration that failed to load.
func ConfigInvalid(cause error) *CLIError {
	return withCause(cause, Configuration,
		"invalid configuration",
		"Check .github/draft-release.yml and DRAFT_RELEASE_* variables",
		"Run 'draft-release config keys' to list the supported keys",
	)
}

// CategoriesInvalid creates an error for a release.yml that cannot be used.
func CategoriesInvalid(path string, cause error) *CLIError {
	return withCause(cause, Configuration,
		fmt.Sprintf("failed to load categories from %s", path),
		"Check that changelog.categories lists at least one category with a title and labels",
		"Print a working example with: draft-release categories --example",
	)
}

// GitHubRequestFailed creates an error for a failed API call.
func GitHubRequestFailed(cause error) *CLIError {
	return withCause(cause, Runtime,
		"GitHub request failed",
		"Check that the token has contents: write permission",
		"Verify the repository and --api-url are correct",
	)
}

// InputFileNotFound creates an error for a missing markdown input.
func InputFileNotFound(path string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("input file not found: %s", path),
		"Pass a markdown file generated by GitHub, or '-' to read stdin",
	)
}

// withCause is WrapWithMessage that still returns an error when cause is nil.
func withCause(cause error, category ErrorCategory, message string, remediation ...string) *CLIError {
	if cause == nil {
		return newError(category, message, remediation)
	}
	return WrapWithMessage(cause, category, message, remediation...)
}
