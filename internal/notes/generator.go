package notes

import (
	"context"
	"strings"

	"github.com/go-logr/logr"
)

// Output names set by the Generator.
const (
	OutputHeader   = "release-header"
	OutputFooter   = "release-footer"
	OutputSections = "release-sections"
)

// Fetcher produces the upstream markdown for the changes between
// rc.LatestTag and rc.NextTag.
type Fetcher interface {
	GenerateNotes(ctx context.Context, rc ReleaseContext) (string, error)
}

// OutputSetter publishes named values to whoever runs the pipeline.
type OutputSetter interface {
	SetOutput(name, value string) error
}

// Result is the output of one pipeline run.
type Result struct {
	Body   string
	Header string
	Footer string
	// Sections is the section content after prefix removal and grouping,
	// before collapsing.
	Sections     SectionData
	SectionsJSON string
}

// Transform runs the section stages over markdown and reassembles it. The
// returned sections are captured before collapsing so they carry no
// presentation markup.
func Transform(markdown string, categories []Category, opts Options, log logr.Logger) (string, SectionData) {
	sections := Split(markdown, categories)
	log.V(1).Info("split notes", "sections", len(sections), "entries", sections.Count())

	if opts.RemoveConventionalPrefixes {
		sections = StripPrefixes(sections)
	}
	if opts.GroupDependencies {
		sections = GroupWithLogger(sections, log)
		log.V(1).Info("grouped dependency updates", "entries", sections.Count())
	}

	body := Rebuild(markdown, Collapse(sections, opts.CollapseAfter), categories)
	return body, sections
}

// Render runs Transform and applies the header and footer templates.
func Render(markdown string, rc ReleaseContext, categories []Category, opts Options, log logr.Logger) (*Result, error) {
	body, sections := Transform(markdown, categories, opts, log)

	res := &Result{Sections: sections}
	data := TemplateData(rc, opts.Variables)

	if opts.Header != "" {
		header, err := RenderTemplate(opts.Header, data)
		if err != nil {
			return nil, err
		}
		res.Header = strings.TrimSpace(header)
		body = header + "\n\n" + body
	}
	if opts.Footer != "" {
		footer, err := RenderTemplate(opts.Footer, data)
		if err != nil {
			return nil, err
		}
		res.Footer = strings.TrimSpace(footer)
		body = body + "\n\n" + footer
	}

	js, err := sections.JSON()
	if err != nil {
		return nil, err
	}
	res.SectionsJSON = js
	res.Body = body
	return res, nil
}

// Generator fetches upstream notes and runs them through the pipeline.
type Generator struct {
	fetcher Fetcher
	outputs OutputSetter
	log     logr.Logger
}

// NewGenerator returns a Generator. outputs may be nil.
func NewGenerator(fetcher Fetcher, outputs OutputSetter, log logr.Logger) *Generator {
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	return &Generator{fetcher: fetcher, outputs: outputs, log: log}
}

// Generate returns the final release notes for rc. Failures to fetch the
// upstream notes or to render the templates are logged and produce an empty
// Result; callers treat an empty body as a soft failure.
func (g *Generator) Generate(ctx context.Context, rc ReleaseContext, categories []Category, opts Options) *Result {
	log := g.log.WithValues("tag", rc.NextTag, "previous", rc.LatestTag)

	markdown, err := g.fetcher.GenerateNotes(ctx, rc)
	if err != nil {
		log.Error(err, "generating release notes")
		return &Result{Sections: NewSectionData(categories)}
	}

	res, err := Render(markdown, rc, categories, opts, log)
	if err != nil {
		log.Error(err, "rendering release notes")
		return &Result{Sections: NewSectionData(categories)}
	}

	g.Publish(res, opts)
	return res
}

// Publish emits the header, footer and sections outputs for res. Header and
// footer are only emitted when the corresponding template is set.
func (g *Generator) Publish(res *Result, opts Options) {
	if g.outputs == nil {
		return
	}
	set := func(name, value string) {
		if err := g.outputs.SetOutput(name, value); err != nil {
			g.log.Error(err, "setting output", "name", name)
		}
	}
	if opts.Header != "" {
		set(OutputHeader, res.Header)
	}
	if opts.Footer != "" {
		set(OutputFooter, res.Footer)
	}
	set(OutputSections, res.SectionsJSON)
}
