package release

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-logr/logr"

	"github.com/ariel-frischer/draft-release/internal/github"
	"github.com/ariel-frischer/draft-release/internal/notes"
)

// Output names set by the Drafter in addition to the notes outputs.
const (
	OutputVersion         = "version"
	OutputPreviousVersion = "previous-version"
	OutputReleaseNotes    = "release-notes"
	OutputReleaseID       = "release-id"
	OutputReleaseURL      = "release-url"
)

// API is the subset of the hosting service the Drafter needs.
type API interface {
	ListReleases(ctx context.Context) ([]github.Release, error)
	CreateRelease(ctx context.Context, r github.ReleaseRequest) (*github.Release, error)
	UpdateRelease(ctx context.Context, id int64, r github.ReleaseRequest) (*github.Release, error)
}

// DraftOptions configures one Drafter run.
type DraftOptions struct {
	// Ref is the git ref being released, e.g. "refs/heads/main".
	Ref string
	// MajorLabel and MinorLabel name the labels whose categories force a
	// major or minor bump.
	MajorLabel string
	MinorLabel string
	// Publish creates a published release instead of a draft.
	Publish bool
	// DryRun computes everything but never writes a release.
	DryRun bool
	Notes  notes.Options
}

// Draft is the outcome of a Drafter run.
type Draft struct {
	Selection Selection
	NextTag   string
	Bump      string
	Notes     *notes.Result
	// Release is the created or updated release; nil on dry runs and when
	// the notes came back empty.
	Release *github.Release
	Updated bool
}

// Drafter generates release notes for a branch and keeps its draft release
// in sync with them.
type Drafter struct {
	api     API
	fetcher notes.Fetcher
	outputs notes.OutputSetter
	log     logr.Logger
}

// NewDrafter returns a Drafter. outputs may be nil.
func NewDrafter(api API, fetcher notes.Fetcher, outputs notes.OutputSetter, log logr.Logger) *Drafter {
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	return &Drafter{api: api, fetcher: fetcher, outputs: outputs, log: log}
}

// Run resolves the release context, generates the notes and creates or
// updates the branch's draft release.
//
// Notes are first generated for a tentative patch release. When the notes
// call for a larger bump they are generated again for the final tag, since
// templates and compare links depend on it.
func (d *Drafter) Run(ctx context.Context, categories []notes.Category, opts DraftOptions) (*Draft, error) {
	releases, err := d.api.ListReleases(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving latest release: %w", err)
	}

	sel := Select(releases, opts.Ref)
	log := d.log.WithValues("branch", sel.Branch, "latest", sel.LatestTag)
	log.Info("resolved latest release", "releases", len(releases), "releaseID", sel.ReleaseID)

	tentative, err := NextVersion(sel.LatestTag, notes.BumpPatch)
	if err != nil {
		return nil, err
	}

	rc := notes.ReleaseContext{LatestTag: sel.LatestTag, NextTag: tentative, Branch: sel.Branch}
	probe := notes.NewGenerator(d.fetcher, nil, log)
	res := probe.Generate(ctx, rc, categories, opts.Notes)

	bump := notes.ClassifyBump(res.Body,
		notes.TitleForLabel(categories, opts.MajorLabel),
		notes.TitleForLabel(categories, opts.MinorLabel))
	next, err := NextVersion(sel.LatestTag, bump)
	if err != nil {
		return nil, err
	}
	log.Info("computed next version", "bump", bump, "next", next)

	gen := notes.NewGenerator(d.fetcher, d.outputs, log)
	if next != tentative {
		rc.NextTag = next
		res = gen.Generate(ctx, rc, categories, opts.Notes)
	} else {
		gen.Publish(res, opts.Notes)
	}

	d.set(OutputVersion, next)
	d.set(OutputPreviousVersion, sel.LatestTag)
	d.set(OutputReleaseNotes, res.Body)

	draft := &Draft{Selection: sel, NextTag: next, Bump: bump, Notes: res}

	if strings.TrimSpace(res.Body) == "" {
		log.Info("release notes are empty, leaving releases untouched")
		return draft, nil
	}
	if opts.DryRun {
		log.Info("dry run, leaving releases untouched")
		return draft, nil
	}

	req := github.ReleaseRequest{
		TagName:         next,
		TargetCommitish: sel.Branch,
		Name:            next,
		Body:            res.Body,
		Draft:           !opts.Publish,
	}

	var rel *github.Release
	if sel.Draft != nil {
		rel, err = d.api.UpdateRelease(ctx, sel.Draft.ID, req)
		draft.Updated = true
	} else {
		rel, err = d.api.CreateRelease(ctx, req)
	}
	if err != nil {
		return nil, err
	}
	draft.Release = rel
	log.Info("saved release", "id", rel.ID, "url", rel.HTMLURL, "updated", draft.Updated, "draft", rel.Draft)

	d.set(OutputReleaseID, strconv.FormatInt(rel.ID, 10))
	d.set(OutputReleaseURL, rel.HTMLURL)
	return draft, nil
}

func (d *Drafter) set(name, value string) {
	if d.outputs == nil {
		return
	}
	if err := d.outputs.SetOutput(name, value); err != nil {
		d.log.Error(err, "setting output", "name", name)
	}
}
