// Package cli implements the draft-release command line.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	clierrors "github.com/ariel-frischer/draft-release/internal/errors"
	"github.com/ariel-frischer/draft-release/internal/git"
	"github.com/ariel-frischer/draft-release/internal/logging"
	"github.com/ariel-frischer/draft-release/internal/version"
)

// SourceURL is the project homepage.
const SourceURL = "https://github.com/ariel-frischer/draft-release"

// Command groups shown in help output.
const (
	GroupRelease       = "release"
	GroupNotes         = "notes"
	GroupConfiguration = "configuration"
)

var (
	configFlag  string
	debugFlag   bool
	logJSONFlag bool

	logger    = logr.Discard()
	zapLogger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "draft-release",
	Short: "Draft GitHub releases with categorized release notes",
	Long: `draft-release keeps a draft GitHub release up to date for a branch.

It asks GitHub to generate release notes since the latest release, groups
repeated dependency updates, optionally strips conventional commit prefixes
and collapses long sections, then creates or updates the draft release with
the next semantic version.

Runs as a GitHub Action (reading INPUT_* and GITHUB_* variables) or locally.

Source: ` + SourceURL,
	Example: `  # Update the draft release for the current branch
  draft-release draft

  # Preview without touching releases
  draft-release draft --dry-run

  # Render notes saved from GitHub offline
  draft-release render notes.md --collapse-after 5

  # Show which bump a set of notes implies
  draft-release bump notes.md --major-label breaking --minor-label enhancement`,
	Version:           version.Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
	PersistentPostRun: func(*cobra.Command, []string) {
		if zapLogger != nil {
			_ = zapLogger.Sync()
		}
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupRelease, Title: "Release Commands:"},
		&cobra.Group{ID: GroupNotes, Title: "Notes Commands:"},
		&cobra.Group{ID: GroupConfiguration, Title: "Configuration Commands:"},
	)

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Project config file (default: .github/draft-release.{yml,json,toml})")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&logJSONFlag, "log-json", false, "Log as JSON (default when GITHUB_ACTIONS=true)")
}

// setupLogging builds the shared logger from the persistent flags.
func setupLogging(cmd *cobra.Command, _ []string) error {
	jsonLogs := logJSONFlag
	if !cmd.Flags().Changed("log-json") && os.Getenv("GITHUB_ACTIONS") == "true" {
		jsonLogs = true
	}

	logger, zapLogger = logging.New(logging.Options{
		Debug:  debugFlag,
		JSON:   jsonLogs,
		Writer: cmd.ErrOrStderr(),
	})

	if debugFlag {
		gitLog := logger.WithName("git")
		git.SetDebugLogger(func(format string, args ...any) {
			gitLog.V(1).Info(fmt.Sprintf(format, args...))
		})
	}
	return nil
}

// Execute runs the root command and reports any error to stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		var exitErr *ExitError
		if !errors.As(err, &exitErr) {
			clierrors.FprintError(rootCmd.ErrOrStderr(), err)
		}
	}
	return err
}
