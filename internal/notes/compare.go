package notes

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var (
	coercePattern  = regexp.MustCompile(`(?:^|\D)(\d{1,16})(?:\.(\d{1,16}))?(?:\.(\d{1,16}))?(?:$|\D)`)
	integerRun     = regexp.MustCompile(`\d+`)
	rangeQualifier = strings.NewReplacer("^", "", "~", "")
	zeroVersion    = semver.New(0, 0, 0, "", "")
)

// parseStrict parses a full semantic version, tolerating a single leading
// "v" and surrounding whitespace.
func parseStrict(v string) (*semver.Version, bool) {
	v = strings.TrimPrefix(strings.TrimSpace(v), "v")
	sv, err := semver.StrictNewVersion(v)
	if err != nil {
		return nil, false
	}
	return sv, true
}

// coerce extracts the first dotted numeric run of up to three parts,
// filling missing parts with zero. "^5.6" becomes 5.6.0 and "v8 (major)"
// becomes 8.0.0.
func coerce(v string) (*semver.Version, bool) {
	m := coercePattern.FindStringSubmatch(v)
	if m == nil {
		return nil, false
	}
	var parts [3]uint64
	for i := 0; i < 3; i++ {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.ParseUint(m[i+1], 10, 64)
		if err != nil {
			return nil, false
		}
		parts[i] = n
	}
	return semver.New(parts[0], parts[1], parts[2], "", ""), true
}

// IsNewer reports whether candidate should replace current as the latest
// version of a dependency.
//
// Strategies are tried in order: strict semantic versions, coerced versions,
// and strict versions after removing "^" and "~". When none applies the
// answer is trustRecency, which callers set for sources that list updates in
// chronological order.
func IsNewer(candidate, current string, trustRecency bool) (newer bool) {
	if candidate == "" || current == "" {
		return trustRecency
	}
	defer func() {
		if r := recover(); r != nil {
			newer = trustRecency
		}
	}()

	if c, ok := parseStrict(candidate); ok {
		if cur, ok := parseStrict(current); ok {
			return c.GreaterThan(cur)
		}
	}

	if c, ok := coerce(candidate); ok {
		if cur, ok := coerce(current); ok {
			return c.GreaterThan(cur)
		}
	}

	if c, ok := parseStrict(rangeQualifier.Replace(candidate)); ok {
		if cur, ok := parseStrict(rangeQualifier.Replace(current)); ok {
			return c.GreaterThan(cur)
		}
	}

	return trustRecency
}

// IsEarlier reports whether candidate is an earlier version than current.
// Strict semantic versions are compared directly; otherwise the first
// integer in each string decides. Anything else is "not earlier".
func IsEarlier(candidate, current string) bool {
	if candidate == "" || current == "" {
		return candidate != ""
	}

	if c, ok := parseStrict(candidate); ok {
		if cur, ok := parseStrict(current); ok {
			return c.LessThan(cur)
		}
	}

	cn := integerRun.FindString(candidate)
	curn := integerRun.FindString(current)
	if cn == "" || curn == "" {
		return false
	}
	a, errA := strconv.ParseUint(cn, 10, 64)
	b, errB := strconv.ParseUint(curn, 10, 64)
	if errA != nil || errB != nil {
		return false
	}
	return a < b
}
