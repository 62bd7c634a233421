package notes

import (
	"regexp"
	"strings"
)

var (
	// categoryHeading matches a level-3 heading on a trimmed line.
	categoryHeading = regexp.MustCompile(`^###\s(.+)$`)
	// blockHeading matches level-2 and deeper headings.
	blockHeading = regexp.MustCompile(`^#{2,6}\s`)
)

// splitLines splits markdown on newlines, dropping the carriage return of
// CRLF line endings.
func splitLines(markdown string) []string {
	lines := strings.Split(markdown, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// findCategory returns the category whose title equals title.
func findCategory(categories []Category, title string) (Category, bool) {
	for _, c := range categories {
		if c.Title == title {
			return c, true
		}
	}
	return Category{}, false
}

// Split parses markdown into sections keyed by each category's first label.
//
// A "### <title>" heading selects the category with that exact title, or no
// category when none matches. Bullet lines are appended to the selected
// category. Blank lines are skipped. Any other line clears the selection,
// so bullets that follow prose or an unknown heading are dropped.
func Split(markdown string, categories []Category) SectionData {
	sections := NewSectionData(categories)
	current := ""

	for _, line := range splitLines(markdown) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if m := categoryHeading.FindStringSubmatch(trimmed); m != nil {
			current = ""
			if c, ok := findCategory(categories, m[1]); ok {
				current = c.Key()
			}
			continue
		}

		if current != "" && isBullet(trimmed) {
			sections[current] = append(sections[current], trimmed)
			continue
		}

		current = ""
	}

	return sections
}
