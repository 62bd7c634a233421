package notes

import (
	"encoding/json"
	"strings"
)

// BulletPrefix starts every section entry.
const BulletPrefix = "* "

// CatchAllLabel conventionally marks the default category.
const CatchAllLabel = "*"

// Category is a named bucket of changelog entries. Labels[0] is the key the
// section content is stored under; the remaining labels are aliases.
type Category struct {
	Title  string   `json:"title" yaml:"title"`
	Labels []string `json:"labels" yaml:"labels"`
}

// Key returns the label sections are stored under, or "" when the category
// has no labels.
func (c Category) Key() string {
	if len(c.Labels) == 0 {
		return ""
	}
	return c.Labels[0]
}

// HasLabel reports whether label is one of the category's labels.
func (c Category) HasLabel(label string) bool {
	for _, l := range c.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// SectionData maps a category key to its ordered bullet entries.
type SectionData map[string][]string

// NewSectionData returns SectionData with an empty section for every
// category key.
func NewSectionData(categories []Category) SectionData {
	sections := make(SectionData, len(categories))
	for _, c := range categories {
		if key := c.Key(); key != "" {
			sections[key] = []string{}
		}
	}
	return sections
}

// Clone returns a deep copy so stages can build their result without
// touching the caller's slices.
func (s SectionData) Clone() SectionData {
	out := make(SectionData, len(s))
	for k, v := range s {
		out[k] = append([]string{}, v...)
	}
	return out
}

// Count returns the number of entries across all sections.
func (s SectionData) Count() int {
	n := 0
	for _, v := range s {
		n += len(v)
	}
	return n
}

// JSON renders the sections as a JSON object. Keys are sorted by
// encoding/json so the output is stable.
func (s SectionData) JSON() (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReleaseContext identifies the releases the notes are generated between.
type ReleaseContext struct {
	LatestTag string
	NextTag   string
	Branch    string
}

// HasPrevious reports whether LatestTag names a real prior release. The
// placeholder "v0.0.0" used for repositories without releases does not.
func (rc ReleaseContext) HasPrevious() bool {
	v, ok := parseStrict(rc.LatestTag)
	if !ok {
		v, ok = coerce(rc.LatestTag)
	}
	return ok && v.GreaterThan(zeroVersion)
}

// Options toggles the optional pipeline stages.
type Options struct {
	// RemoveConventionalPrefixes strips "type(scope): " from entries.
	RemoveConventionalPrefixes bool
	// GroupDependencies merges repeated automated update entries.
	GroupDependencies bool
	// CollapseAfter wraps sections with more entries than this in a
	// <details> block. Zero disables collapsing.
	CollapseAfter int
	// Header and Footer are templates placed around the body.
	Header string
	Footer string
	// Variables are user supplied key=value pairs for the templates.
	Variables []string
}

// isBullet reports whether a trimmed line is a section entry.
func isBullet(trimmed string) bool {
	return strings.HasPrefix(trimmed, BulletPrefix)
}
