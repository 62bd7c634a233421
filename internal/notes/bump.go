package notes

import "strings"

// Version bump kinds returned by ClassifyBump.
const (
	BumpMajor = "major"
	BumpMinor = "minor"
	BumpPatch = "patch"
)

// ClassifyBump decides the semantic version increase for notes. A
// "### <majorTitle>" heading anywhere in the notes means major, otherwise a
// "### <minorTitle>" heading means minor, otherwise patch. Empty titles never
// match.
func ClassifyBump(notes, majorTitle, minorTitle string) string {
	if majorTitle != "" && strings.Contains(notes, "### "+majorTitle) {
		return BumpMajor
	}
	if minorTitle != "" && strings.Contains(notes, "### "+minorTitle) {
		return BumpMinor
	}
	return BumpPatch
}

// TitleForLabel returns the title of the first category carrying label, or
// "" when label is empty or no category has it.
func TitleForLabel(categories []Category, label string) string {
	if label == "" {
		return ""
	}
	for _, c := range categories {
		if c.HasLabel(label) {
			return c.Title
		}
	}
	return ""
}
