package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/draft-release/internal/notes"
	"github.com/ariel-frischer/draft-release/internal/release"
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Run the notes pipeline over markdown generated by GitHub",
	Long: `Run the notes pipeline over release notes saved from GitHub.

Reads the markdown from file, or stdin when file is '-' or omitted, applies
the same stages as 'draft' and prints the result. No network access is
needed unless --config-path is a URL.`,
	Example: `  # Collapse long sections and strip "feat: " prefixes
  draft-release render notes.md --collapse-after 5 --remove-conventional-prefixes

  # Print the grouped sections as JSON
  gh api repos/octo/widgets/releases/generate-notes -f tag_name=v1.2.0 --jq .body | draft-release render --sections-json`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRender(cmd, args)
	},
}

var (
	renderTagFlag          string
	renderPreviousFlag     string
	renderSectionsJSONFlag bool
	renderShowBumpFlag     bool
)

func init() {
	renderCmd.GroupID = GroupNotes
	rootCmd.AddCommand(renderCmd)

	flags := renderCmd.Flags()
	flags.StringVar(&renderTagFlag, "tag", "", "Tag used for {{version}} in templates")
	flags.StringVar(&renderPreviousFlag, "previous-tag", release.NoRelease, "Tag used for {{previous-version}} in templates")
	flags.BoolVar(&renderSectionsJSONFlag, "sections-json", false, "Print the sections as JSON instead of markdown")
	flags.BoolVar(&renderShowBumpFlag, "show-bump", false, "Print the implied version bump to stderr")
	addBumpFlags(flags)
	addNotesFlags(flags)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	markdown, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	categories, err := loadCategories(cmd.Context(), cfg.ConfigPath)
	if err != nil {
		return err
	}

	rc := notes.ReleaseContext{LatestTag: renderPreviousFlag, NextTag: renderTagFlag}
	res, err := notes.Render(markdown, rc, categories, notesOptions(cfg), logger)
	if err != nil {
		return fmt.Errorf("rendering notes: %w", err)
	}

	if renderSectionsJSONFlag {
		fmt.Fprintln(cmd.OutOrStdout(), res.SectionsJSON)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), res.Body)
	}

	if renderShowBumpFlag {
		bump := notes.ClassifyBump(res.Body,
			notes.TitleForLabel(categories, cfg.MajorLabel),
			notes.TitleForLabel(categories, cfg.MinorLabel))
		fmt.Fprintf(cmd.ErrOrStderr(), "bump: %s\n", bump)
	}
	return nil
}
