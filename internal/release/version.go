package release

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/ariel-frischer/draft-release/internal/notes"
)

// ErrInvalidVersion is returned when the latest tag is not a version.
var ErrInvalidVersion = errors.New("invalid version")

// NextVersion increments latest by bump ("major", "minor" or "patch"). A
// leading "v" on latest is kept.
func NextVersion(latest, bump string) (string, error) {
	v, err := semver.NewVersion(latest)
	if err != nil {
		return "", fmt.Errorf("%w %q: %w", ErrInvalidVersion, latest, err)
	}

	var next semver.Version
	switch bump {
	case notes.BumpMajor:
		next = v.IncMajor()
	case notes.BumpMinor:
		next = v.IncMinor()
	case notes.BumpPatch:
		next = v.IncPatch()
	default:
		return "", fmt.Errorf("unknown version bump %q", bump)
	}

	if strings.HasPrefix(strings.TrimSpace(latest), "v") {
		return "v" + next.String(), nil
	}
	return next.String(), nil
}
