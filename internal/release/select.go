package release

import (
	"sort"
	"strings"

	"github.com/ariel-frischer/draft-release/internal/github"
	"github.com/ariel-frischer/draft-release/internal/notes"
)

// NoRelease is the latest tag reported when there is no prior release.
const NoRelease = "v0.0.0"

const branchRefPrefix = "refs/heads/"

// Selection is the release context resolved for a ref.
type Selection struct {
	// LatestTag is the tag of the latest published release on the branch,
	// or NoRelease.
	LatestTag string
	// ReleaseID is the id of that release, or 0.
	ReleaseID int64
	// Branch is the branch name, empty when the ref is not a branch.
	Branch string
	// Draft is the existing draft release for the branch, if any.
	Draft *github.Release
}

// Select picks the latest release for ref from releases.
//
// Releases are ordered newest first by creation time. The first
// non-draft release targeting the branch wins; when the branch has none the
// newest release overall is used. Refs that are not branches, and
// repositories without releases, yield NoRelease.
func Select(releases []github.Release, ref string) Selection {
	sel := Selection{LatestTag: NoRelease}

	branch, ok := strings.CutPrefix(ref, branchRefPrefix)
	if !ok || branch == "" {
		return sel
	}
	sel.Branch = branch

	if len(releases) == 0 {
		return sel
	}

	sorted := make([]github.Release, len(releases))
	copy(sorted, releases)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	latest := &sorted[0]
	found := false
	for i := range sorted {
		r := &sorted[i]
		if r.TargetCommitish != branch {
			continue
		}
		if r.Draft {
			if sel.Draft == nil {
				sel.Draft = r
			}
			continue
		}
		if !found {
			latest = r
			found = true
		}
	}

	sel.LatestTag = latest.TagName
	sel.ReleaseID = latest.ID
	return sel
}

// HasPrevious reports whether tag names a real prior release.
func HasPrevious(tag string) bool {
	return notes.ReleaseContext{LatestTag: tag}.HasPrevious()
}
