package release

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/draft-release/internal/github"
)

func at(day int) time.Time {
	return time.Date(2024, time.March, day, 12, 0, 0, 0, time.UTC)
}

func TestSelect(t *testing.T) {
	t.Parallel()

	releases := []github.Release{
		{ID: 1, TagName: "v1.0.0", TargetCommitish: "main", CreatedAt: at(1)},
		{ID: 4, TagName: "v2.0.0", TargetCommitish: "next", CreatedAt: at(4)},
		{ID: 2, TagName: "v1.1.0", TargetCommitish: "main", CreatedAt: at(2)},
		{ID: 3, TagName: "v1.2.0", TargetCommitish: "main", Draft: true, CreatedAt: at(3)},
	}

	tests := map[string]struct {
		releases  []github.Release
		ref       string
		wantTag   string
		wantID    int64
		wantBr    string
		wantDraft int64
	}{
		"latest published on branch": {
			releases: releases, ref: "refs/heads/main",
			wantTag: "v1.1.0", wantID: 2, wantBr: "main", wantDraft: 3,
		},
		"branch without releases falls back to newest": {
			releases: releases, ref: "refs/heads/feature",
			wantTag: "v2.0.0", wantID: 4, wantBr: "feature",
		},
		"other branch": {
			releases: releases, ref: "refs/heads/next",
			wantTag: "v2.0.0", wantID: 4, wantBr: "next",
		},
		"tag ref": {
			releases: releases, ref: "refs/tags/v1.0.0",
			wantTag: NoRelease,
		},
		"pull request ref": {
			releases: releases, ref: "refs/pull/7/merge",
			wantTag: NoRelease,
		},
		"no releases": {
			ref: "refs/heads/main", wantTag: NoRelease, wantBr: "main",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			sel := Select(tt.releases, tt.ref)
			assert.Equal(t, tt.wantTag, sel.LatestTag)
			assert.Equal(t, tt.wantID, sel.ReleaseID)
			assert.Equal(t, tt.wantBr, sel.Branch)
			if tt.wantDraft == 0 {
				assert.Nil(t, sel.Draft)
			} else {
				require.NotNil(t, sel.Draft)
				assert.Equal(t, tt.wantDraft, sel.Draft.ID)
			}
		})
	}
}

func TestSelect_DoesNotReorderInput(t *testing.T) {
	t.Parallel()

	releases := []github.Release{
		{ID: 1, TagName: "v1.0.0", TargetCommitish: "main", CreatedAt: at(1)},
		{ID: 2, TagName: "v1.1.0", TargetCommitish: "main", CreatedAt: at(2)},
	}
	sel := Select(releases, "refs/heads/main")

	assert.Equal(t, "v1.1.0", sel.LatestTag)
	assert.Equal(t, int64(1), releases[0].ID)
}

func TestHasPrevious(t *testing.T) {
	t.Parallel()

	assert.False(t, HasPrevious(NoRelease))
	assert.True(t, HasPrevious("v0.0.1"))
	assert.True(t, HasPrevious("2.3.4"))
}
