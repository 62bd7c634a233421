package changelog

import "github.com/ariel-frischer/draft-release/internal/notes"

// Document is the root of a release.yml file.
type Document struct {
	Changelog Changelog `yaml:"changelog"`
}

// Changelog is the "changelog" section of release.yml.
type Changelog struct {
	Exclude    Exclude    `yaml:"exclude,omitempty"`
	Categories []Category `yaml:"categories"`
}

// Exclude lists labels and authors whose pull requests are left out of the
// generated notes. GitHub applies the exclusion; it is kept here so the
// document round-trips and can be displayed.
type Exclude struct {
	Labels  []string `yaml:"labels,omitempty"`
	Authors []string `yaml:"authors,omitempty"`
}

// Category is one entry of changelog.categories.
type Category struct {
	Title   string   `yaml:"title"`
	Labels  []string `yaml:"labels"`
	Exclude Exclude  `yaml:"exclude,omitempty"`
}

// Categories returns the document's categories in document order, in the
// form the notes pipeline consumes.
func (d *Document) Categories() []notes.Category {
	out := make([]notes.Category, 0, len(d.Changelog.Categories))
	for _, c := range d.Changelog.Categories {
		out = append(out, notes.Category{
			Title:  c.Title,
			Labels: append([]string{}, c.Labels...),
		})
	}
	return out
}

// HasCatchAll reports whether a category collects every unmatched label.
func (d *Document) HasCatchAll() bool {
	for _, c := range d.Changelog.Categories {
		for _, l := range c.Labels {
			if l == notes.CatchAllLabel {
				return true
			}
		}
	}
	return false
}
