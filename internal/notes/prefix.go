package notes

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// conventionalPrefix matches "* type(scope): " at the start of an entry.
var conventionalPrefix = regexp.MustCompile(
	`(?i)^\* (?:fix|feat|chore|docs|style|refactor|perf|test|build|ci|revert)(?:\([^)]*\))?!?: `)

// StripPrefixes removes conventional-commit prefixes from every entry and
// capitalizes the first letter of what remains. Entries without a prefix are
// left as they are.
func StripPrefixes(sections SectionData) SectionData {
	out := make(SectionData, len(sections))
	for label, entries := range sections {
		stripped := make([]string, len(entries))
		for i, e := range entries {
			stripped[i] = StripPrefix(e)
		}
		out[label] = stripped
	}
	return out
}

// StripPrefix removes a conventional-commit prefix from a single entry.
// Stacked prefixes ("fix: chore: x") are all removed so the result is stable
// under repeated application.
func StripPrefix(entry string) string {
	loc := conventionalPrefix.FindStringIndex(entry)
	if loc == nil {
		return entry
	}
	for loc != nil {
		entry = BulletPrefix + entry[loc[1]:]
		loc = conventionalPrefix.FindStringIndex(entry)
	}
	return BulletPrefix + capitalizeFirst(strings.TrimPrefix(entry, BulletPrefix))
}

// capitalizeFirst upper-cases the first rune of s.
func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
