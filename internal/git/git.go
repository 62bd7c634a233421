// Package git reads repository facts from the local checkout: the current
// branch and the GitHub repository the origin remote points at. It is the
// fallback when the workflow environment does not provide them.
package git

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// DefaultRemote is the remote used to derive the repository slug.
const DefaultRemote = "origin"

// ErrDetachedHead is returned when HEAD does not point at a branch.
var ErrDetachedHead = errors.New("HEAD is detached")

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// openRepo opens the repository containing path, walking up to find .git.
// If path is empty, the current working directory is used.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	return repo, nil
}

// IsRepository reports whether path is inside a git repository.
func IsRepository(path string) bool {
	_, err := openRepo(path)
	return err == nil
}

// CurrentBranch returns the branch HEAD points at. It works on repositories
// without commits since only the symbolic reference is read.
func CurrentBranch(path string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	head, err := repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return "", fmt.Errorf("reading HEAD: %w", err)
	}

	target := head.Target()
	if head.Type() != plumbing.SymbolicReference || !target.IsBranch() {
		return "", ErrDetachedHead
	}

	branch := target.Short()
	logDebug("[git] CurrentBranch: %s", branch)
	return branch, nil
}

// CurrentRef returns the fully qualified ref of the current branch, e.g.
// "refs/heads/main".
func CurrentRef(path string) (string, error) {
	branch, err := CurrentBranch(path)
	if err != nil {
		return "", err
	}
	return plumbing.NewBranchReferenceName(branch).String(), nil
}

// RemoteURL returns the first URL configured for remote.
func RemoteURL(path, remote string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	r, err := repo.Remote(remote)
	if err != nil {
		return "", fmt.Errorf("looking up remote %s: %w", remote, err)
	}

	urls := r.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %s has no URL", remote)
	}
	logDebug("[git] RemoteURL %s: %s", remote, urls[0])
	return urls[0], nil
}

// RepositorySlug returns "owner/name" for the origin remote of the
// repository containing path.
func RepositorySlug(path string) (string, error) {
	u, err := RemoteURL(path, DefaultRemote)
	if err != nil {
		return "", err
	}
	return ParseSlug(u)
}

// ParseSlug extracts "owner/name" from a remote URL. HTTPS, ssh:// and
// scp-like ("git@host:owner/name.git") forms are accepted.
func ParseSlug(remote string) (string, error) {
	remote = strings.TrimSpace(remote)

	var path string
	if strings.Contains(remote, "://") {
		u, err := url.Parse(remote)
		if err != nil {
			return "", fmt.Errorf("parsing remote URL %q: %w", remote, err)
		}
		path = u.Path
	} else if _, after, ok := strings.Cut(remote, ":"); ok {
		path = after
	} else {
		return "", fmt.Errorf("unrecognized remote URL %q", remote)
	}

	path = strings.TrimSuffix(strings.Trim(path, "/"), ".git")
	parts := strings.Split(path, "/")
	if len(parts) < 2 || parts[len(parts)-2] == "" || parts[len(parts)-1] == "" {
		return "", fmt.Errorf("remote URL %q does not name a repository", remote)
	}
	return parts[len(parts)-2] + "/" + parts[len(parts)-1], nil
}
