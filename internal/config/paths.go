package config

import (
	"os"
	"path/filepath"
)

// ProjectConfigDir is the directory holding the project config file.
const ProjectConfigDir = ".github"

// projectConfigNames are tried in order inside ProjectConfigDir.
var projectConfigNames = []string{
	"draft-release.yml",
	"draft-release.yaml",
	"draft-release.json",
	"draft-release.toml",
}

// ProjectConfigPath returns the default project config path.
func ProjectConfigPath() string {
	return filepath.Join(ProjectConfigDir, projectConfigNames[0])
}

// FindProjectConfig returns the first project config file present under
// dir, or "" when there is none.
func FindProjectConfig(dir string) string {
	for _, name := range projectConfigNames {
		path := filepath.Join(dir, ProjectConfigDir, name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
