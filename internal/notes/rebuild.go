package notes

import "strings"

// Rebuild threads processed sections back into the original markdown.
//
// Lines are copied verbatim except under a "### <title>" heading that names a
// category: the heading is kept, the section's entries are written in place
// of the original bullets, and the original bullets and blank lines are
// skipped up to the next heading or prose line. A run of skipped blank lines
// before that point is written back as a single blank line so sections stay
// separated.
func Rebuild(markdown string, sections SectionData, categories []Category) string {
	lines := splitLines(markdown)
	out := make([]string, 0, len(lines))

	replacing := false
	pendingBlank := false

	flush := func() {
		if pendingBlank {
			out = append(out, "")
		}
		pendingBlank = false
		replacing = false
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if blockHeading.MatchString(trimmed) {
			if replacing {
				flush()
			}
			if m := categoryHeading.FindStringSubmatch(trimmed); m != nil {
				if c, ok := findCategory(categories, m[1]); ok {
					out = append(out, line)
					out = append(out, sections[c.Key()]...)
					replacing = true
					continue
				}
			}
			out = append(out, line)
			continue
		}

		if replacing {
			switch {
			case trimmed == "":
				pendingBlank = true
				continue
			case isBullet(trimmed):
				continue
			default:
				flush()
			}
		}

		out = append(out, line)
	}

	if replacing {
		flush()
	}

	return strings.Join(out, "\n")
}
