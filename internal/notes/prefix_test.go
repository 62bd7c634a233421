package notes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripPrefix(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		entry    string
		expected string
	}{
		"scoped fix": {
			entry:    "* fix(deps): update dependency X to Y by @renovate in Z",
			expected: "* Update dependency X to Y by @renovate in Z",
		},
		"plain feat":        {entry: "* feat: add thing", expected: "* Add thing"},
		"breaking marker":   {entry: "* feat!: drop thing", expected: "* Drop thing"},
		"upper case type":   {entry: "* CHORE: tidy", expected: "* Tidy"},
		"scoped breaking":   {entry: "* refactor(api)!: rename", expected: "* Rename"},
		"stacked prefixes":  {entry: "* fix: chore(ci): bump", expected: "* Bump"},
		"already clean":     {entry: "* Add thing", expected: "* Add thing"},
		"word in text":      {entry: "* Add feat: support to parser", expected: "* Add feat: support to parser"},
		"type needs colon":  {entry: "* Fixes a typo", expected: "* Fixes a typo"},
		"unknown type kept": {entry: "* deps: bump x", expected: "* deps: bump x"},
		"non ascii first letter": {
			entry:    "* docs: écrire la doc",
			expected: "* Écrire la doc",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, StripPrefix(tt.entry))
		})
	}
}

func TestStripPrefixes(t *testing.T) {
	t.Parallel()

	sections := SectionData{
		"bug": {"* fix: crash on start", "* Handle nil config"},
		"enhancement": {
			"* feat(cli): add render command",
		},
		"empty": {},
	}

	once := StripPrefixes(sections)

	assert.Equal(t, SectionData{
		"bug":         {"* Crash on start", "* Handle nil config"},
		"enhancement": {"* Add render command"},
		"empty":       {},
	}, once)
	assert.Equal(t, once, StripPrefixes(once), "stripping twice changes nothing")
	assert.Equal(t, "* fix: crash on start", sections["bug"][0], "input is not modified")
}
