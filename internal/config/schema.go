package config

import "sort"

// KeySchema describes a configuration key.
type KeySchema struct {
	// Key is the koanf key, also the suffix of DRAFT_RELEASE_<KEY>.
	Key string
	// Input is the action input name, read from INPUT_<NAME>. Empty when
	// the key has no action input.
	Input       string
	Description string
	Default     interface{}
}

// KnownKeys is the registry of all configuration keys.
var KnownKeys = map[string]KeySchema{
	"github_token": {
		Key: "github_token", Input: "github-token",
		Description: "Token used for the GitHub REST API (falls back to GITHUB_TOKEN)",
		Default:     "",
	},
	"repository": {
		Key:         "repository",
		Description: "owner/name of the repository (falls back to GITHUB_REPOSITORY, then the origin remote)",
		Default:     "",
	},
	"ref": {
		Key:         "ref",
		Description: "Git ref being released (falls back to GITHUB_REF, then the current branch)",
		Default:     "",
	},
	"api_url": {
		Key:         "api_url",
		Description: "GitHub REST API base URL (falls back to GITHUB_API_URL)",
		Default:     "https://api.github.com",
	},
	"major_label": {
		Key: "major_label", Input: "major-label",
		Description: "Label whose category triggers a major version bump",
		Default:     "",
	},
	"minor_label": {
		Key: "minor_label", Input: "minor-label",
		Description: "Label whose category triggers a minor version bump",
		Default:     "",
	},
	"notes_header": {
		Key: "notes_header", Input: "notes-header",
		Description: "Template placed above the release notes",
		Default:     "",
	},
	"notes_footer": {
		Key: "notes_footer", Input: "notes-footer",
		Description: "Template placed below the release notes",
		Default:     "",
	},
	"variables": {
		Key: "variables", Input: "variables",
		Description: "key=value pairs available to the header and footer templates",
		Default:     []string{},
	},
	"collapse_after": {
		Key: "collapse_after", Input: "collapse-after",
		Description: "Collapse sections with more entries than this (0 disables)",
		Default:     0,
	},
	"publish": {
		Key: "publish", Input: "publish",
		Description: "Publish the release instead of keeping it as a draft",
		Default:     false,
	},
	"config_path": {
		Key: "config_path", Input: "config-path",
		Description: "Path or URL of the release.yml categories document",
		Default:     ".github/release.yml",
	},
	"dry_run": {
		Key: "dry_run", Input: "dry-run",
		Description: "Compute the release without creating or updating it",
		Default:     false,
	},
	"group_dependencies": {
		Key: "group_dependencies", Input: "group-dependencies",
		Description: "Merge repeated dependency update entries",
		Default:     true,
	},
	"remove_conventional_prefixes": {
		Key: "remove_conventional_prefixes", Input: "remove-conventional-prefixes",
		Description: "Strip conventional commit prefixes from entries",
		Default:     false,
	},
}

// SortedKeys returns the schemas ordered by key.
func SortedKeys() []KeySchema {
	keys := make([]KeySchema, 0, len(KnownKeys))
	for _, s := range KnownKeys {
		keys = append(keys, s)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Key < keys[j].Key })
	return keys
}

// keyForInput maps an action input name to its key.
func keyForInput(input string) (string, bool) {
	for _, s := range KnownKeys {
		if s.Input != "" && s.Input == input {
			return s.Key, true
		}
	}
	return "", false
}
