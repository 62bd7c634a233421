package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/draft-release/internal/changelog"
	"github.com/ariel-frischer/draft-release/internal/config"
	clierrors "github.com/ariel-frischer/draft-release/internal/errors"
	"github.com/ariel-frischer/draft-release/internal/github"
)

const fixtureNotes = `## What's Changed
### 🚀 Features
* feat: add widgets by @octo in https://github.com/octo/widgets/pull/1
### ⬆️ Dependencies
* Update dependency eslint to ^9.1.0 by @renovate in https://github.com/octo/widgets/pull/2
* Update dependency eslint to ^9.2.0 by @renovate in https://github.com/octo/widgets/pull/3

**Full Changelog**: https://github.com/octo/widgets/compare/v1.0.0...v1.1.0`

func init() {
	color.NoColor = true
}

// resetFlags restores every flag to its default so state does not leak
// between executions of the shared command tree.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// isolateEnv blanks the variables configuration is read from.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"GITHUB_TOKEN", "GITHUB_REPOSITORY", "GITHUB_REF", "GITHUB_API_URL", "GITHUB_OUTPUT", "GITHUB_ACTIONS"} {
		t.Setenv(name, "")
	}
	for key, s := range config.KnownKeys {
		t.Setenv(config.EnvPrefix+strings.ToUpper(key), "")
		if s.Input != "" {
			t.Setenv(config.InputPrefix+strings.ToUpper(s.Input), "")
		}
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err := Execute()
	return stdout.String(), stderr.String(), err
}

func writeFixtures(t *testing.T) (notesPath, categoriesPath string) {
	t.Helper()
	dir := t.TempDir()
	notesPath = filepath.Join(dir, "notes.md")
	categoriesPath = filepath.Join(dir, "release.yml")
	require.NoError(t, os.WriteFile(notesPath, []byte(fixtureNotes), 0o644))
	require.NoError(t, os.WriteFile(categoriesPath, changelog.Example(), 0o644))
	return notesPath, categoriesPath
}

func TestRootCmd_Structure(t *testing.T) {
	assert.Equal(t, "draft-release", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.Contains(t, rootCmd.Long, SourceURL)

	for _, name := range []string{"config", "debug", "log-json"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}

	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range []string{"draft", "render", "bump", "categories", "config", "doctor", "version"} {
		assert.True(t, names[name], "missing command %s", name)
	}

	groups := make(map[string]bool)
	for _, g := range rootCmd.Groups() {
		groups[g.ID] = true
	}
	assert.True(t, groups[GroupRelease])
	assert.True(t, groups[GroupNotes])
	assert.True(t, groups[GroupConfiguration])
}

func TestExitCode(t *testing.T) {
	tests := map[string]struct {
		err      error
		expected int
	}{
		"nil":           {err: nil, expected: ExitSuccess},
		"exit error":    {err: NewExitError(ExitInvalidArguments), expected: ExitInvalidArguments},
		"argument":      {err: clierrors.NewArgumentError("x"), expected: ExitInvalidArguments},
		"prerequisite":  {err: clierrors.MissingToken(), expected: ExitMissingDependencies},
		"configuration": {err: clierrors.NewConfigError("x"), expected: ExitFailure},
		"plain":         {err: assert.AnError, expected: ExitFailure},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExitCode(tt.err))
		})
	}
}

func TestRenderCmd(t *testing.T) {
	isolateEnv(t)
	notesPath, categoriesPath := writeFixtures(t)

	stdout, _, err := execute(t, "", "render", notesPath,
		"--config-path", categoriesPath,
		"--remove-conventional-prefixes",
		"--notes-header", "# {{version}} since {{previous-version}}",
		"--tag", "v1.1.0", "--previous-tag", "v1.0.0")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout, "# v1.1.0 since v1.0.0\n\n## What's Changed"))
	assert.Contains(t, stdout, "* Add widgets by @octo")
	assert.NotContains(t, stdout, "^9.1.0")
	assert.Equal(t, 1, strings.Count(stdout, "Update dependency eslint to ^9.2.0"))
	assert.Contains(t, stdout, "**Full Changelog**")
}

func TestRenderCmd_StdinAndSectionsJSON(t *testing.T) {
	isolateEnv(t)
	_, categoriesPath := writeFixtures(t)

	stdout, stderr, err := execute(t, fixtureNotes, "render", "-",
		"--config-path", categoriesPath,
		"--group-dependencies=false",
		"--sections-json", "--show-bump", "--minor-label", "enhancement")
	require.NoError(t, err)

	var sections map[string][]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &sections))
	assert.Len(t, sections["dependencies"], 2)
	assert.Len(t, sections["enhancement"], 1)
	assert.Contains(t, stderr, "bump: minor")
}

func TestRenderCmd_MissingFile(t *testing.T) {
	isolateEnv(t)
	_, categoriesPath := writeFixtures(t)

	_, stderr, err := execute(t, "", "render", filepath.Join(t.TempDir(), "missing.md"), "--config-path", categoriesPath)
	require.Error(t, err)
	assert.Equal(t, ExitInvalidArguments, ExitCode(err))
	assert.Contains(t, stderr, "input file not found")
}

func TestBumpCmd(t *testing.T) {
	isolateEnv(t)
	notesPath, categoriesPath := writeFixtures(t)

	tests := map[string]struct {
		args     []string
		expected string
	}{
		"patch without labels": {args: nil, expected: "patch\n"},
		"minor":                {args: []string{"--minor-label", "enhancement"}, expected: "minor\n"},
		"major wins":           {args: []string{"--major-label", "dependencies", "--minor-label", "enhancement"}, expected: "major\n"},
		"next version":         {args: []string{"--minor-label", "enhancement", "--latest", "v1.0.0"}, expected: "v1.1.0\n"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			args := append([]string{"bump", notesPath, "--config-path", categoriesPath}, tt.args...)
			stdout, _, err := execute(t, "", args...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, stdout)
		})
	}
}

func TestCategoriesCmd(t *testing.T) {
	isolateEnv(t)
	_, categoriesPath := writeFixtures(t)

	stdout, _, err := execute(t, "", "categories", "--config-path", categoriesPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, " 1. 💣 Breaking Changes  change\n")
	assert.Contains(t, stdout, " 8. Other Changes  *\n")

	stdout, _, err = execute(t, "", "categories", "--example")
	require.NoError(t, err)
	assert.Equal(t, string(changelog.Example()), stdout)
}

func TestCategoriesCmd_Invalid(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "release.yml")
	require.NoError(t, os.WriteFile(path, []byte("changelog:\n  categories: []\n"), 0o644))

	_, stderr, err := execute(t, "", "categories", "--config-path", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, ExitCode(err))
	assert.Contains(t, stderr, "Configuration Error")
}

func TestConfigCmds(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), ".github", "draft-release.yml")

	stdout, _, err := execute(t, "", "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "created "+path)
	assert.FileExists(t, path)

	_, _, err = execute(t, "", "config", "init", "--config", path)
	require.Error(t, err)
	assert.Equal(t, ExitInvalidArguments, ExitCode(err))

	t.Setenv("DRAFT_RELEASE_GITHUB_TOKEN", "secret")
	stdout, _, err = execute(t, "", "config", "show", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "github_token:")
	assert.Contains(t, stdout, "***")
	assert.Contains(t, stdout, "group_dependencies: true")
	assert.NotContains(t, stdout, "secret")

	stdout, _, err = execute(t, "", "config", "keys")
	require.NoError(t, err)
	assert.Contains(t, stdout, "collapse_after")
	assert.Contains(t, stdout, "action input: collapse-after")
}

func TestVersionCmd(t *testing.T) {
	stdout, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "draft-release dev")
	assert.Contains(t, stdout, SourceURL)
}

func newFakeGitHub(t *testing.T) (*httptest.Server, *[]github.ReleaseRequest) {
	t.Helper()
	var created []github.ReleaseRequest

	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/octo/widgets/releases", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode([]github.Release{{ID: 1, TagName: "v1.0.0", TargetCommitish: "main"}})
	})
	mux.HandleFunc("POST /repos/octo/widgets/releases/generate-notes", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"name": "x", "body": fixtureNotes})
	})
	mux.HandleFunc("POST /repos/octo/widgets/releases", func(w http.ResponseWriter, r *http.Request) {
		var req github.ReleaseRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		created = append(created, req)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(github.Release{ID: 7, TagName: req.TagName, Draft: req.Draft, HTMLURL: "https://example.test/releases/7"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &created
}

func TestDraftCmd(t *testing.T) {
	isolateEnv(t)
	_, categoriesPath := writeFixtures(t)
	srv, created := newFakeGitHub(t)

	outputPath := filepath.Join(t.TempDir(), "github_output")
	t.Setenv("GITHUB_OUTPUT", outputPath)
	t.Setenv("GITHUB_TOKEN", "secret")

	stdout, _, err := execute(t, "", "draft",
		"--api-url", srv.URL,
		"--repository", "octo/widgets",
		"--ref", "refs/heads/main",
		"--config-path", categoriesPath,
		"--minor-label", "enhancement")
	require.NoError(t, err)

	require.Len(t, *created, 1)
	req := (*created)[0]
	assert.Equal(t, "v1.1.0", req.TagName)
	assert.Equal(t, "main", req.TargetCommitish)
	assert.True(t, req.Draft)
	assert.Contains(t, req.Body, "### 🚀 Features")

	assert.Contains(t, stdout, "created draft v1.1.0")
	assert.Contains(t, stdout, "https://example.test/releases/7")

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version<<ghadelimiter_")
	assert.Contains(t, string(data), "release-id<<ghadelimiter_")
	assert.Contains(t, string(data), "release-sections<<ghadelimiter_")
}

func TestDraftCmd_DryRun(t *testing.T) {
	isolateEnv(t)
	_, categoriesPath := writeFixtures(t)
	srv, created := newFakeGitHub(t)

	stdout, _, err := execute(t, "", "draft",
		"--api-url", srv.URL,
		"--github-token", "secret",
		"--repository", "octo/widgets",
		"--ref", "refs/heads/main",
		"--config-path", categoriesPath,
		"--dry-run")
	require.NoError(t, err)

	assert.Empty(t, *created)
	assert.Contains(t, stdout, "dry run")
	assert.Contains(t, stdout, "## What's Changed")
}

func TestDraftCmd_MissingToken(t *testing.T) {
	isolateEnv(t)

	_, stderr, err := execute(t, "", "draft", "--repository", "octo/widgets", "--ref", "refs/heads/main")
	require.Error(t, err)
	assert.Equal(t, ExitMissingDependencies, ExitCode(err))
	assert.Contains(t, stderr, "no GitHub token configured")
}

func TestDoctorCmd(t *testing.T) {
	isolateEnv(t)
	_, categoriesPath := writeFixtures(t)
	args := []string{"doctor", "--repository", "octo/widgets", "--ref", "refs/heads/main", "--config-path", categoriesPath}

	stdout, _, err := execute(t, "", args...)
	require.Error(t, err)
	assert.Equal(t, ExitMissingDependencies, ExitCode(err))
	assert.Contains(t, stdout, "✗ GitHub token")
	assert.Contains(t, stdout, "✓ Categories: 8 categories")

	t.Setenv("GITHUB_TOKEN", "secret")
	stdout, _, err = execute(t, "", args...)
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ GitHub token: configured")
	assert.Contains(t, stdout, "✓ Repository: octo/widgets")
}
