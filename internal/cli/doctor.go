package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/draft-release/internal/health"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that a release can be drafted here",
	Long: `Check the configuration a draft would run with: the token, the
repository and branch (from flags, the runner or the local clone), and the
categories document. No release is read or written.`,
	Example: `  draft-release doctor
  draft-release doctor --config-path https://example.com/release.yml`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDoctor(cmd, args)
	},
}

func init() {
	doctorCmd.GroupID = GroupConfiguration
	rootCmd.AddCommand(doctorCmd)

	doctorCmd.Flags().String("repository", "", "Repository as owner/name (default: origin remote)")
	doctorCmd.Flags().String("ref", "", "Ref being released, e.g. refs/heads/main (default: current branch)")
	doctorCmd.Flags().String("config-path", ".github/release.yml", "Path or URL of the release.yml categories document")
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	report := health.RunHealthChecks(cmd.Context(), health.Inputs{
		Token:      cfg.GitHubToken,
		Repository: cfg.Repository,
		Ref:        cfg.Ref,
		ConfigPath: cfg.ConfigPath,
	})
	fmt.Fprint(cmd.OutOrStdout(), health.FormatReport(report))

	if !report.Passed {
		return NewExitError(ExitMissingDependencies)
	}
	return nil
}
