package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	clierrors "github.com/ariel-frischer/draft-release/internal/errors"
	"github.com/ariel-frischer/draft-release/internal/notes"
	"github.com/ariel-frischer/draft-release/internal/release"
)

var bumpLatestFlag string

var bumpCmd = &cobra.Command{
	Use:   "bump [file]",
	Short: "Print the version bump implied by release notes",
	Long: `Print major, minor or patch for a set of release notes.

A section titled like the category of --major-label means major; otherwise
a section for --minor-label means minor; anything else is a patch. With
--latest the next version is printed instead.`,
	Example: `  draft-release bump notes.md --major-label breaking --minor-label enhancement
  draft-release bump notes.md --minor-label enhancement --latest v1.4.2`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBump(cmd, args)
	},
}

func init() {
	bumpCmd.GroupID = GroupNotes
	rootCmd.AddCommand(bumpCmd)

	bumpCmd.Flags().StringVar(&bumpLatestFlag, "latest", "", "Latest released version; prints the next version")
	bumpCmd.Flags().String("config-path", ".github/release.yml", "Path or URL of the release.yml categories document")
	addBumpFlags(bumpCmd.Flags())
}

func runBump(cmd *cobra.Command, args []string) error {
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

	bump := notes.ClassifyBump(markdown,
		notes.TitleForLabel(categories, cfg.MajorLabel),
		notes.TitleForLabel(categories, cfg.MinorLabel))

	if bumpLatestFlag == "" {
		fmt.Fprintln(cmd.OutOrStdout(), bump)
		return nil
	}

	next, err := release.NextVersion(bumpLatestFlag, bump)
	if err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Argument, "invalid --latest")
	}
	fmt.Fprintln(cmd.OutOrStdout(), next)
	return nil
}
