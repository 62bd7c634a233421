// Package output prints human-readable summaries of draft-release runs to
// the terminal. It has no dependencies on the pipeline packages.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// Summary describes the outcome of a draft run.
type Summary struct {
	Repository string
	Branch     string
	Previous   string
	Next       string
	Bump       string
	URL        string
	Published  bool
	Updated    bool
	DryRun     bool
	// Empty is set when no notes were generated and nothing was saved.
	Empty bool
}

// PrintSummary prints s as aligned key/value lines.
func PrintSummary(out io.Writer, s Summary) {
	label := color.New(color.FgCyan).SprintFunc()
	value := color.New(color.Bold).SprintFunc()
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	row := func(k, v string) {
		if v == "" {
			return
		}
		fmt.Fprintf(out, "  %s %s\n", label(fmt.Sprintf("%-11s", k+":")), value(v))
	}

	row("repository", s.Repository)
	row("branch", s.Branch)
	row("previous", s.Previous)
	row("next", s.Next)
	row("bump", s.Bump)
	row("release", s.URL)

	switch {
	case s.Empty:
		fmt.Fprintf(out, "%s %s\n", yellow("!"), "no release notes generated; release left untouched")
	case s.DryRun:
		fmt.Fprintf(out, "%s %s\n", yellow("•"), "dry run; release left untouched")
	default:
		verb := "created"
		if s.Updated {
			verb = "updated"
		}
		kind := "draft"
		if s.Published {
			kind = "published release"
		}
		fmt.Fprintf(out, "%s %s %s %s\n", green("✓"), verb, kind, s.Next)
	}
}

// PrintRule prints a dim horizontal rule with an optional title.
func PrintRule(out io.Writer, title string) {
	dim := color.New(color.Faint).SprintFunc()
	width := GetTerminalWidth()
	if title == "" {
		fmt.Fprintln(out, dim(strings.Repeat("─", width)))
		return
	}
	label := " " + title + " "
	side := (width - len(label)) / 2
	if side < 3 {
		side = 3
	}
	line := strings.Repeat("─", side)
	fmt.Fprintln(out, dim(line+label+line))
}

// Category is one row of PrintCategories.
type Category struct {
	Title  string
	Labels []string
}

// PrintCategories lists categories and their labels.
func PrintCategories(out io.Writer, categories []Category) {
	title := color.New(color.Bold).SprintFunc()
	labels := color.New(color.FgMagenta).SprintFunc()
	for i, c := range categories {
		fmt.Fprintf(out, "%2d. %s  %s\n", i+1, title(c.Title), labels(strings.Join(c.Labels, ", ")))
	}
}
