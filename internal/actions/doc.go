// Package actions connects draft-release to the GitHub Actions runner: it
// reads the workflow context from the environment and writes step outputs
// to the file named by GITHUB_OUTPUT.
package actions
