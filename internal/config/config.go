// draft-release - Release notes drafting for GitHub
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/draft-release

// Package config provides layered configuration for draft-release using koanf.
// Values are loaded with priority: explicit overrides (CLI flags) >
// DRAFT_RELEASE_* environment variables > INPUT_* action inputs > runner
// variables (GITHUB_TOKEN, GITHUB_REPOSITORY, ...) > project config
// (.github/draft-release.yml, .json or .toml) > defaults.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	yamlcheck "github.com/ariel-frischer/draft-release/internal/yaml"
)

// Environment variable prefixes read by Load.
const (
	EnvPrefix    = "DRAFT_RELEASE_"
	InputPrefix  = "INPUT_"
	RunnerPrefix = "GITHUB_"
)

// runnerKeys maps runner variables (without RunnerPrefix) to keys.
var runnerKeys = map[string]string{
	"TOKEN":      "github_token",
	"REPOSITORY": "repository",
	"REF":        "ref",
	"API_URL":    "api_url",
}

// Configuration is the resolved draft-release configuration.
type Configuration struct {
	GitHubToken string `koanf:"github_token"`
	Repository  string `koanf:"repository"`
	Ref         string `koanf:"ref"`
	APIURL      string `koanf:"api_url" validate:"required,url"`

	MajorLabel string `koanf:"major_label"`
	MinorLabel string `koanf:"minor_label"`

	NotesHeader string   `koanf:"notes_header"`
	NotesFooter string   `koanf:"notes_footer"`
	Variables   []string `koanf:"variables"`

	// CollapseAfter wraps sections with more entries in <details>. 0 disables.
	CollapseAfter int `koanf:"collapse_after" validate:"min=0"`

	Publish bool `koanf:"publish"`
	// ConfigPath locates the release.yml categories document.
	ConfigPath string `koanf:"config_path" validate:"required"`
	DryRun     bool   `koanf:"dry_run"`

	GroupDependencies          bool `koanf:"group_dependencies"`
	RemoveConventionalPrefixes bool `koanf:"remove_conventional_prefixes"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path. When set the file
	// must exist.
	ProjectConfigPath string
	// Dir is searched for .github/draft-release.* when ProjectConfigPath is
	// empty. Defaults to the working directory.
	Dir string
	// Overrides are applied last, typically from changed CLI flags.
	Overrides map[string]interface{}
}

// Load loads configuration from the project file and the environment.
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")

	loadDefaults(k)

	if err := loadProjectConfig(k, opts); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	for key, value := range opts.Overrides {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("applying override %s: %w", key, err)
		}
	}

	return finalizeConfig(k)
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadProjectConfig loads the project config file, choosing the parser by
// extension. A missing default file is not an error.
func loadProjectConfig(k *koanf.Koanf, opts LoadOptions) error {
	path := opts.ProjectConfigPath
	if path == "" {
		dir := opts.Dir
		if dir == "" {
			dir = "."
		}
		path = FindProjectConfig(dir)
		if path == "" {
			return nil
		}
	} else if !fileExists(path) {
		return &ValidationError{FilePath: path, Message: "config file not found"}
	}

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		if err := yamlcheck.ValidateFile(path); err != nil {
			return fmt.Errorf("validating YAML syntax for project config: %w", err)
		}
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	case ".toml":
		parser = TOMLParser()
	default:
		return &ValidationError{FilePath: path, Message: "unsupported config format (want .yml, .yaml, .json or .toml)"}
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return fmt.Errorf("failed to load project config %s: %w", path, err)
	}
	return nil
}

// loadEnvironmentConfig loads runner variables, action inputs and
// DRAFT_RELEASE_* overrides, in increasing priority.
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.ProviderWithValue(RunnerPrefix, ".", runnerTransform), nil); err != nil {
		return fmt.Errorf("failed to load runner environment: %w", err)
	}
	if err := k.Load(env.ProviderWithValue(InputPrefix, ".", inputTransform), nil); err != nil {
		return fmt.Errorf("failed to load action inputs: %w", err)
	}
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals, validates, and applies final transformations
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Variables = SplitList(strings.Join(cfg.Variables, "\n"))

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// runnerTransform keeps only the runner variables draft-release reads.
func runnerTransform(name, value string) (string, interface{}) {
	key, ok := runnerKeys[strings.TrimPrefix(name, RunnerPrefix)]
	if !ok || value == "" {
		return "", nil
	}
	return key, value
}

// inputTransform maps INPUT_GITHUB-TOKEN style variables set by the runner
// to config keys. Empty inputs are ignored so defaults survive.
func inputTransform(name, value string) (string, interface{}) {
	input := strings.ToLower(strings.TrimPrefix(name, InputPrefix))
	key, ok := keyForInput(strings.ReplaceAll(input, "_", "-"))
	if !ok || value == "" {
		return "", nil
	}
	return key, typedValue(key, value)
}

// envTransform converts environment variable names to config keys
// Example: DRAFT_RELEASE_COLLAPSE_AFTER -> collapse_after
func envTransform(name, value string) (string, interface{}) {
	key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	if _, ok := KnownKeys[key]; !ok || value == "" {
		return "", nil
	}
	return key, typedValue(key, value)
}

// typedValue splits list values; scalars are left to koanf's weak typing.
func typedValue(key, value string) interface{} {
	if key == "variables" {
		return SplitList(value)
	}
	return value
}

// SplitList splits a newline or comma separated list, trimming blanks.
func SplitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == '\n' || r == ',' })
	return compactList(fields)
}

func compactList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
