package cli

import (
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/draft-release/internal/changelog"
	"github.com/ariel-frischer/draft-release/internal/output"
)

var categoriesExampleFlag bool

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the categories from release.yml",
	Long: `List the categories parsed from the release.yml document, in the order
used for the release notes. With --example a complete release.yml is printed
instead.`,
	Example: `  draft-release categories
  draft-release categories --config-path https://example.com/release.yml
  draft-release categories --example > .github/release.yml`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCategories(cmd, args)
	},
}

func init() {
	categoriesCmd.GroupID = GroupConfiguration
	rootCmd.AddCommand(categoriesCmd)

	categoriesCmd.Flags().BoolVar(&categoriesExampleFlag, "example", false, "Print an example release.yml")
	categoriesCmd.Flags().String("config-path", ".github/release.yml", "Path or URL of the release.yml categories document")
}

func runCategories(cmd *cobra.Command, _ []string) error {
	if categoriesExampleFlag {
		_, err := cmd.OutOrStdout().Write(changelog.Example())
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	categories, err := loadCategories(cmd.Context(), cfg.ConfigPath)
	if err != nil {
		return err
	}

	rows := make([]output.Category, len(categories))
	for i, c := range categories {
		rows[i] = output.Category{Title: c.Title, Labels: c.Labels}
	}
	output.PrintCategories(cmd.OutOrStdout(), rows)
	return nil
}
