package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/draft-release/internal/actions"
	"github.com/ariel-frischer/draft-release/internal/changelog"
	"github.com/ariel-frischer/draft-release/internal/config"
	clierrors "github.com/ariel-frischer/draft-release/internal/errors"
	"github.com/ariel-frischer/draft-release/internal/git"
	"github.com/ariel-frischer/draft-release/internal/github"
	"github.com/ariel-frischer/draft-release/internal/output"
	"github.com/ariel-frischer/draft-release/internal/progress"
	"github.com/ariel-frischer/draft-release/internal/release"
	"github.com/ariel-frischer/draft-release/internal/version"
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Create or update the draft release for a branch",
	Long: `Create or update the draft release for a branch.

The latest published release on the branch is the starting point. Notes are
generated by GitHub for the changes since then, run through the notes
pipeline, and the next version is chosen from the categories present:
a section for --major-label means a major bump, --minor-label a minor bump,
anything else a patch.

An existing draft for the branch is updated in place; otherwise a new one
is created. Inside GitHub Actions the step outputs version, previous-version,
release-notes, release-id, release-url, release-header, release-footer and
release-sections are written to $GITHUB_OUTPUT.`,
	Example: `  # Use the current branch and origin remote
  draft-release draft

  # Explicit repository and branch, without writing anything
  draft-release draft --repository octo/widgets --ref refs/heads/main --dry-run`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDraft(cmd, args)
	},
}

func init() {
	draftCmd.GroupID = GroupRelease
	rootCmd.AddCommand(draftCmd)

	flags := draftCmd.Flags()
	flags.String("repository", "", "Repository as owner/name (default: GITHUB_REPOSITORY or origin remote)")
	flags.String("ref", "", "Ref to release (default: GITHUB_REF or the current branch)")
	flags.String("api-url", github.DefaultBaseURL, "GitHub REST API base URL")
	flags.String("github-token", "", "GitHub token (default: GITHUB_TOKEN)")
	flags.Bool("publish", false, "Publish the release instead of keeping it as a draft")
	flags.Bool("dry-run", false, "Compute everything but leave releases untouched")
	addBumpFlags(flags)
	addNotesFlags(flags)
}

func runDraft(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	repository, ref, err := resolveTarget(cfg)
	if err != nil {
		return err
	}
	if cfg.GitHubToken == "" {
		return clierrors.MissingToken()
	}

	categories, err := loadCategories(ctx, cfg.ConfigPath)
	if err != nil {
		return err
	}

	opts := []github.Option{
		github.WithBaseURL(cfg.APIURL),
		github.WithToken(cfg.GitHubToken),
		github.WithLogger(logger.WithName("github")),
		github.WithUserAgent(version.UserAgent()),
	}
	if !changelog.IsRemote(cfg.ConfigPath) {
		opts = append(opts, github.WithConfigPath(cfg.ConfigPath))
	}
	client, err := github.NewClient(repository, opts...)
	if err != nil {
		return clierrors.MissingRepository(err)
	}

	outputs := actions.NewOutputs(actions.FromEnv().OutputPath, logger.WithName("outputs"))
	drafter := release.NewDrafter(client, client, outputs, logger.WithName("release"))

	spin := progress.NewSpinner(cmd.ErrOrStderr(), progress.DetectTerminalCapabilities(os.Stderr))
	var draft *release.Draft
	err = spin.Run("drafting release for "+repository, func() error {
		var runErr error
		draft, runErr = drafter.Run(ctx, categories, release.DraftOptions{
			Ref:        ref,
			MajorLabel: cfg.MajorLabel,
			MinorLabel: cfg.MinorLabel,
			Publish:    cfg.Publish,
			DryRun:     cfg.DryRun,
			Notes:      notesOptions(cfg),
		})
		return runErr
	})
	if err != nil {
		var apiErr *github.APIError
		if errors.As(err, &apiErr) {
			return clierrors.GitHubRequestFailed(err)
		}
		if errors.Is(err, release.ErrInvalidVersion) {
			return clierrors.Wrap(err, clierrors.Runtime, "Tag releases with semantic versions such as v1.2.3")
		}
		return clierrors.Wrap(err, clierrors.Runtime)
	}

	summary := output.Summary{
		Repository: repository,
		Branch:     draft.Selection.Branch,
		Previous:   draft.Selection.LatestTag,
		Next:       draft.NextTag,
		Bump:       draft.Bump,
		Published:  cfg.Publish,
		Updated:    draft.Updated,
		DryRun:     cfg.DryRun,
		Empty:      draft.Notes.Body == "",
	}
	if draft.Release != nil {
		summary.URL = draft.Release.HTMLURL
	}
	output.PrintSummary(cmd.OutOrStdout(), summary)

	if cfg.DryRun && draft.Notes.Body != "" {
		output.PrintRule(cmd.OutOrStdout(), "release notes")
		fmt.Fprintln(cmd.OutOrStdout(), draft.Notes.Body)
	}
	return nil
}

// resolveTarget fills in the repository and ref from git when neither the
// configuration nor the runner provided them.
func resolveTarget(cfg *config.Configuration) (repository, ref string, err error) {
	repository = cfg.Repository
	if repository == "" {
		repository, err = git.RepositorySlug("")
		if err != nil {
			return "", "", clierrors.MissingRepository(err)
		}
		logger.V(1).Info("repository from origin remote", "repository", repository)
	}

	ref = cfg.Ref
	if ref == "" {
		ref, err = git.CurrentRef("")
		if err != nil {
			return "", "", clierrors.MissingRef(err)
		}
		logger.V(1).Info("ref from current branch", "ref", ref)
	}
	return repository, ref, nil
}
