// Package release resolves the release context for a branch and maintains
// the draft release that accumulates its notes.
package release
