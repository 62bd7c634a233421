package notes

import "fmt"

const (
	detailsOpen  = "<details><summary>%d changes</summary>\n\n"
	detailsClose = "\n</details>"
)

// Collapse wraps every section holding more than threshold entries in a
// <details> block. The opening tag, which carries the entry count, is
// prepended to the first entry and the closing tag is appended to the last,
// so the section can still be written out as one line per entry. A threshold
// of zero or less returns sections unchanged.
func Collapse(sections SectionData, threshold int) SectionData {
	if threshold <= 0 {
		return sections
	}

	out := make(SectionData, len(sections))
	for label, entries := range sections {
		if len(entries) <= threshold {
			out[label] = entries
			continue
		}
		wrapped := append([]string{}, entries...)
		wrapped[0] = fmt.Sprintf(detailsOpen, len(entries)) + wrapped[0]
		wrapped[len(wrapped)-1] += detailsClose
		out[label] = wrapped
	}
	return out
}
