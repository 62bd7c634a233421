// Package version holds the draft-release build information. It has no
// dependencies and can be imported from any package.
package version

import "fmt"

var (
	// Version information - set via ldflags during build
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// IsDevBuild returns true if running a development build (not a release).
func IsDevBuild() bool {
	return Version == "dev"
}

// UserAgent is sent with every GitHub API request.
func UserAgent() string {
	return "draft-release/" + Version
}

// String returns a one-line description of the build.
func String() string {
	return fmt.Sprintf("draft-release %s (commit %s, built %s)", Version, Commit, BuildDate)
}
