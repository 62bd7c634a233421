package config

// GetDefaultConfigTemplate returns a commented project config template.
func GetDefaultConfigTemplate() string {
	return `# draft-release configuration
# Values here are overridden by action inputs, DRAFT_RELEASE_* variables and flags.

# Version bumps
major_label: ""                        # Label whose category means a major release
minor_label: ""                        # Label whose category means a minor release

# Notes
config_path: .github/release.yml       # Categories document (path or URL)
notes_header: ""                       # Template above the notes, e.g. "## {{version}}"
notes_footer: ""                       # Template below the notes
variables: []                          # key=value pairs for the templates
collapse_after: 0                      # Collapse sections with more entries (0 = never)
group_dependencies: true               # Merge repeated dependency updates
remove_conventional_prefixes: false    # Strip "feat: " style prefixes

# Release
publish: false                         # Publish instead of drafting
dry_run: false                         # Never create or update releases
`
}

// GetDefaults returns the default value of every known key.
func GetDefaults() map[string]interface{} {
	defaults := make(map[string]interface{}, len(KnownKeys))
	for key, s := range KnownKeys {
		defaults[key] = s.Default
	}
	return defaults
}
