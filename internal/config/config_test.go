package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateEnv blanks every variable Load reads so the host environment does
// not leak into the test.
func isolateEnv(t *testing.T) {
	t.Helper()
	for name := range runnerKeys {
		t.Setenv(RunnerPrefix+name, "")
	}
	for key, s := range KnownKeys {
		t.Setenv(EnvPrefix+toUpper(key), "")
		if s.Input != "" {
			t.Setenv(InputPrefix+toUpper(s.Input), "")
		}
	}
}

func toUpper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}

func writeProjectConfig(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ProjectConfigDir), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectConfigDir, name), []byte(content), 0o644))
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolateEnv(t)

	cfg, err := LoadWithOptions(LoadOptions{Dir: t.TempDir()})
	require.NoError(t, err)

	assert.Equal(t, "https://api.github.com", cfg.APIURL)
	assert.Equal(t, ".github/release.yml", cfg.ConfigPath)
	assert.True(t, cfg.GroupDependencies)
	assert.False(t, cfg.RemoveConventionalPrefixes)
	assert.False(t, cfg.Publish)
	assert.False(t, cfg.DryRun)
	assert.Equal(t, 0, cfg.CollapseAfter)
	assert.Empty(t, cfg.Variables)
}

func TestLoad_ProjectConfigFormats(t *testing.T) {
	tests := map[string]struct {
		name    string
		content string
	}{
		"yaml": {
			name: "draft-release.yml",
			content: `major_label: breaking
collapse_after: 3
variables:
  - project=widgets
`,
		},
		"json": {
			name:    "draft-release.json",
			content: `{"major_label": "breaking", "collapse_after": 3, "variables": ["project=widgets"]}`,
		},
		"toml": {
			name: "draft-release.toml",
			content: `major_label = "breaking"
collapse_after = 3
variables = ["project=widgets"]
`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			isolateEnv(t)
			dir := writeProjectConfig(t, tt.name, tt.content)

			cfg, err := LoadWithOptions(LoadOptions{Dir: dir})
			require.NoError(t, err)
			assert.Equal(t, "breaking", cfg.MajorLabel)
			assert.Equal(t, 3, cfg.CollapseAfter)
			assert.Equal(t, []string{"project=widgets"}, cfg.Variables)
			assert.True(t, cfg.GroupDependencies, "unset keys keep defaults")
		})
	}
}

func TestLoad_Precedence(t *testing.T) {
	isolateEnv(t)
	dir := writeProjectConfig(t, "draft-release.yml", "collapse_after: 1\nminor_label: feature\npublish: false\n")

	t.Setenv("GITHUB_TOKEN", "runner-token")
	t.Setenv("GITHUB_REPOSITORY", "octo/widgets")
	t.Setenv("INPUT_COLLAPSE-AFTER", "2")
	t.Setenv("INPUT_GITHUB-TOKEN", "input-token")
	t.Setenv("INPUT_PUBLISH", "true")
	t.Setenv("INPUT_MINOR-LABEL", "")
	t.Setenv("DRAFT_RELEASE_COLLAPSE_AFTER", "4")

	cfg, err := LoadWithOptions(LoadOptions{
		Dir:       dir,
		Overrides: map[string]interface{}{"dry_run": true},
	})
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.CollapseAfter, "env beats inputs and file")
	assert.Equal(t, "input-token", cfg.GitHubToken, "inputs beat runner variables")
	assert.Equal(t, "octo/widgets", cfg.Repository)
	assert.True(t, cfg.Publish)
	assert.Equal(t, "feature", cfg.MinorLabel, "empty inputs are ignored")
	assert.True(t, cfg.DryRun)
}

func TestLoad_OverridesWin(t *testing.T) {
	isolateEnv(t)
	t.Setenv("DRAFT_RELEASE_MAJOR_LABEL", "from-env")

	cfg, err := LoadWithOptions(LoadOptions{
		Dir:       t.TempDir(),
		Overrides: map[string]interface{}{"major_label": "from-flag"},
	})
	require.NoError(t, err)
	assert.Equal(t, "from-flag", cfg.MajorLabel)
}

func TestLoad_VariablesInput(t *testing.T) {
	isolateEnv(t)
	t.Setenv("INPUT_VARIABLES", "project=widgets\nowner=octo, extra=1\n\n")

	cfg, err := LoadWithOptions(LoadOptions{Dir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, []string{"project=widgets", "owner=octo", "extra=1"}, cfg.Variables)
}

func TestLoad_Errors(t *testing.T) {
	tests := map[string]struct {
		file      string
		content   string
		env       map[string]string
		wantField string
	}{
		"negative collapse": {
			env:       map[string]string{"DRAFT_RELEASE_COLLAPSE_AFTER": "-1"},
			wantField: "collapse_after",
		},
		"invalid api url": {
			env:       map[string]string{"DRAFT_RELEASE_API_URL": "not a url"},
			wantField: "api_url",
		},
		"unterminated header": {
			env:       map[string]string{"INPUT_NOTES-HEADER": "## {{version"},
			wantField: "notes_header",
		},
		"unclosed footer block": {
			env:       map[string]string{"DRAFT_RELEASE_NOTES_FOOTER": "{{#if previous-version}}since {{previous-version}}"},
			wantField: "notes_footer",
		},
		"bad variable": {
			env:       map[string]string{"DRAFT_RELEASE_VARIABLES": "novalue"},
			wantField: "variables",
		},
		"broken yaml": {
			file:    "draft-release.yml",
			content: "major_label: [unclosed\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			isolateEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			dir := t.TempDir()
			if tt.file != "" {
				dir = writeProjectConfig(t, tt.file, tt.content)
			}

			_, err := LoadWithOptions(LoadOptions{Dir: dir})
			require.Error(t, err)
			if tt.wantField != "" {
				assert.True(t, IsValidationError(err))
				assert.Contains(t, err.Error(), tt.wantField)
			}
		})
	}
}

func TestLoad_ExplicitPathMustExist(t *testing.T) {
	isolateEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "draft-release.ini")
	require.NoError(t, os.WriteFile(path, []byte("x=1"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config format")
}

func TestFindProjectConfig(t *testing.T) {
	t.Parallel()

	assert.Empty(t, FindProjectConfig(t.TempDir()))

	dir := writeProjectConfig(t, "draft-release.json", "{}")
	assert.Equal(t, filepath.Join(dir, ".github", "draft-release.json"), FindProjectConfig(dir))
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input    string
		expected []string
	}{
		"empty":    {input: "", expected: []string{}},
		"newlines": {input: "a=1\nb=2", expected: []string{"a=1", "b=2"}},
		"commas":   {input: "a=1, b=2", expected: []string{"a=1", "b=2"}},
		"blanks":   {input: "\n a=1 ,,\n", expected: []string{"a=1"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, SplitList(tt.input))
		})
	}
}

func TestSortedKeys(t *testing.T) {
	t.Parallel()

	keys := SortedKeys()
	require.Len(t, keys, len(KnownKeys))
	for i := 1; i < len(keys); i++ {
		assert.Less(t, keys[i-1].Key, keys[i].Key)
	}
	for _, k := range keys {
		assert.NotEmpty(t, k.Description, k.Key)
	}
}

func TestGetDefaultConfigTemplate_Loads(t *testing.T) {
	isolateEnv(t)
	dir := writeProjectConfig(t, "draft-release.yml", GetDefaultConfigTemplate())

	cfg, err := LoadWithOptions(LoadOptions{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, ".github/release.yml", cfg.ConfigPath)
}
