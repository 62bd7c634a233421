package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ariel-frischer/draft-release/internal/config"
	clierrors "github.com/ariel-frischer/draft-release/internal/errors"
)

var configInitForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and initialize draft-release configuration",
	Long: `Inspect and initialize draft-release configuration.

Configuration precedence (highest to lowest):
  1. Command line flags
  2. Environment variables (DRAFT_RELEASE_*)
  3. Action inputs (INPUT_*)
  4. Runner variables (GITHUB_TOKEN, GITHUB_REPOSITORY, GITHUB_REF, GITHUB_API_URL)
  5. Project config (.github/draft-release.yml, .json or .toml)
  6. Built-in defaults`,
}

var configShowCmd = &cobra.Command{
	Use:          "show",
	Short:        "Print the resolved configuration as YAML",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow(cmd, args)
	},
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the supported configuration keys",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		key := color.New(color.Bold).SprintFunc()
		dim := color.New(color.Faint).SprintFunc()
		for _, s := range config.SortedKeys() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", key(s.Key), s.Description)
			if s.Input != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "    %s\n", dim("action input: "+s.Input))
			}
		}
	},
}

var configInitCmd = &cobra.Command{
	Use:          "init",
	Short:        "Write a commented .github/draft-release.yml",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigInit(cmd, args)
	},
}

func init() {
	configCmd.GroupID = GroupConfiguration
	configCmd.AddCommand(configShowCmd, configKeysCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)

	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "Overwrite an existing config file")
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	shown := *cfg
	if shown.GitHubToken != "" {
		shown.GitHubToken = "***"
	}

	out, err := yaml.Marshal(configView(shown))
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

// configView orders the configuration by key for display.
func configView(cfg config.Configuration) *yaml.Node {
	values := map[string]interface{}{
		"github_token":                 cfg.GitHubToken,
		"repository":                   cfg.Repository,
		"ref":                          cfg.Ref,
		"api_url":                      cfg.APIURL,
		"major_label":                  cfg.MajorLabel,
		"minor_label":                  cfg.MinorLabel,
		"notes_header":                 cfg.NotesHeader,
		"notes_footer":                 cfg.NotesFooter,
		"variables":                    cfg.Variables,
		"collapse_after":               cfg.CollapseAfter,
		"publish":                      cfg.Publish,
		"config_path":                  cfg.ConfigPath,
		"dry_run":                      cfg.DryRun,
		"group_dependencies":           cfg.GroupDependencies,
		"remove_conventional_prefixes": cfg.RemoveConventionalPrefixes,
	}

	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, s := range config.SortedKeys() {
		var v yaml.Node
		_ = v.Encode(values[s.Key])
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: s.Key}, &v)
	}
	return node
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path := configFlag
	if path == "" {
		path = config.ProjectConfigPath()
	}

	if _, err := os.Stat(path); err == nil && !configInitForce {
		return clierrors.NewArgumentError(
			fmt.Sprintf("config file already exists: %s", path),
			"Use --force to overwrite it",
		)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", color.GreenString("✓"), "created "+path)
	return nil
}
