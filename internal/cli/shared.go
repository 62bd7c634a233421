package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ariel-frischer/draft-release/internal/changelog"
	"github.com/ariel-frischer/draft-release/internal/config"
	clierrors "github.com/ariel-frischer/draft-release/internal/errors"
	"github.com/ariel-frischer/draft-release/internal/notes"
)

// addNotesFlags registers the flags that tune the notes pipeline.
func addNotesFlags(flags *pflag.FlagSet) {
	flags.String("config-path", ".github/release.yml", "Path or URL of the release.yml categories document")
	flags.String("notes-header", "", "Template placed above the notes, e.g. '## {{version}}'")
	flags.String("notes-footer", "", "Template placed below the notes")
	flags.StringArray("variables", nil, "Template variable as key=value (repeatable)")
	flags.Int("collapse-after", 0, "Collapse sections with more entries than this (0 = never)")
	flags.Bool("group-dependencies", true, "Merge repeated dependency update entries")
	flags.Bool("remove-conventional-prefixes", false, "Strip conventional commit prefixes from entries")
}

// addBumpFlags registers the labels that decide the version bump.
func addBumpFlags(flags *pflag.FlagSet) {
	flags.String("major-label", "", "Label whose category means a major release")
	flags.String("minor-label", "", "Label whose category means a minor release")
}

// loadConfig resolves the configuration, letting explicitly set flags win
// over every other source.
func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	overrides := make(map[string]interface{})
	var flagErr error
	cmd.Flags().Visit(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if _, ok := config.KnownKeys[key]; !ok {
			return
		}
		v, err := flagValue(cmd.Flags(), f)
		if err != nil && flagErr == nil {
			flagErr = err
			return
		}
		overrides[key] = v
	})
	if flagErr != nil {
		return nil, clierrors.Wrap(flagErr, clierrors.Argument)
	}

	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: configFlag,
		Overrides:         overrides,
	})
	if err != nil {
		return nil, clierrors.ConfigInvalid(err)
	}
	logger.V(1).Info("loaded configuration", "configPath", cfg.ConfigPath, "dryRun", cfg.DryRun)
	return cfg, nil
}

func flagValue(flags *pflag.FlagSet, f *pflag.Flag) (interface{}, error) {
	switch f.Value.Type() {
	case "bool":
		return flags.GetBool(f.Name)
	case "int":
		return flags.GetInt(f.Name)
	case "stringArray":
		return flags.GetStringArray(f.Name)
	default:
		return f.Value.String(), nil
	}
}

// loadCategories loads the release.yml categories document.
func loadCategories(ctx context.Context, location string) ([]notes.Category, error) {
	doc, err := changelog.Load(ctx, location)
	if err != nil {
		return nil, clierrors.CategoriesInvalid(location, err)
	}
	if !doc.HasCatchAll() {
		logger.V(1).Info("no catch-all category; entries matching no label are left out", "location", location)
	}
	return doc.Categories(), nil
}

// notesOptions maps the configuration onto the pipeline options.
func notesOptions(cfg *config.Configuration) notes.Options {
	return notes.Options{
		RemoveConventionalPrefixes: cfg.RemoveConventionalPrefixes,
		GroupDependencies:          cfg.GroupDependencies,
		CollapseAfter:              cfg.CollapseAfter,
		Header:                     cfg.NotesHeader,
		Footer:                     cfg.NotesFooter,
		Variables:                  cfg.Variables,
	}
}

// readInput reads the markdown named by args[0], or stdin when it is "-"
// or absent.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", clierrors.InputFileNotFound(args[0])
		}
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), nil
}
