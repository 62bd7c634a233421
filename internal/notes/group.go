package notes

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/go-logr/logr"
)

// commitPrefix optionally precedes the subject of an automated update, as
// produced by bots configured for semantic commits.
const commitPrefix = `(?P<prefix>(?i:fix|feat|chore|docs|style|refactor|perf|test|build|ci|revert)(?:\([^)]*\))?!?: )?`

// updateRule describes one recognizable shape of automated update entry.
type updateRule struct {
	name    string
	pattern *regexp.Regexp
	// identity returns the grouping key within the rule.
	identity func(m match) string
	// trackLatest and trackInitial enable version merging.
	trackLatest  bool
	trackInitial bool
	// trustRecency resolves incomparable latest versions in favor of the
	// entry seen last.
	trustRecency bool
	format       func(g *updateGroup) string
}

// match exposes named submatches of a rule pattern.
type match map[string]string

func (r *updateRule) match(entry string) (match, bool) {
	sub := r.pattern.FindStringSubmatch(entry)
	if sub == nil {
		return nil, false
	}
	m := make(match, len(sub))
	for i, name := range r.pattern.SubexpNames() {
		if name != "" {
			m[name] = strings.TrimSpace(sub[i])
		}
	}
	// The prefix keeps its trailing space.
	if i := r.pattern.SubexpIndex("prefix"); i > 0 {
		m["prefix"] = sub[i]
	}
	return m, true
}

// updateGroup accumulates every entry sharing one identity key within a
// single section.
type updateGroup struct {
	rule     *updateRule
	prefix   string
	verb     string
	name     string
	bot      string
	latest   string
	initial  string
	refs     []string
	seenRefs map[string]bool
}

func (g *updateGroup) addRefs(raw string) {
	for _, ref := range strings.Split(raw, ",") {
		ref = strings.TrimSpace(ref)
		if ref == "" || g.seenRefs[ref] {
			continue
		}
		g.seenRefs[ref] = true
		g.refs = append(g.refs, ref)
	}
}

// joinedRefs returns the references in ascending order.
func (g *updateGroup) joinedRefs() string {
	refs := append([]string{}, g.refs...)
	sortRefs(refs)
	return strings.Join(refs, ", ")
}

// updateRules is checked in order; the first matching rule wins.
var updateRules = []*updateRule{
	{
		name:         "renovate-dependency",
		pattern:      regexp.MustCompile(`^\* ` + commitPrefix + `(?P<verb>[Uu]pdate) (?P<name>.*?) to (?P<latest>.*?) by @(?P<bot>renovate(?:\[bot\])?) in (?P<refs>.*)$`),
		identity:     func(m match) string { return strings.ToLower(m["name"]) },
		trackLatest:  true,
		trustRecency: true,
		format: func(g *updateGroup) string {
			return BulletPrefix + g.prefix + g.verb + " " + g.name + " to " + g.latest + " by @" + g.bot + " in " + g.joinedRefs()
		},
	},
	{
		name:     "renovate-lockfile",
		pattern:  regexp.MustCompile(`^\* ` + commitPrefix + `(?P<verb>[Ll]ock file maintenance) by @(?P<bot>renovate(?:\[bot\])?) in (?P<refs>.*)$`),
		identity: func(match) string { return "lock-file-maintenance" },
		format: func(g *updateGroup) string {
			return BulletPrefix + g.prefix + g.verb + " by @" + g.bot + " in " + g.joinedRefs()
		},
	},
	{
		name:         "dependabot",
		pattern:      regexp.MustCompile(`^\* ` + commitPrefix + `(?P<verb>[Bb]ump) (?P<name>.*?) from (?P<initial>.*?) to (?P<latest>.*?) by @(?P<bot>dependabot(?:\[bot\])?) in (?P<refs>.*)$`),
		identity:     func(m match) string { return strings.ToLower(m["name"]) },
		trackLatest:  true,
		trackInitial: true,
		format: func(g *updateGroup) string {
			return BulletPrefix + g.prefix + g.verb + " " + g.name + " from " + g.initial + " to " + g.latest + " by @" + g.bot + " in " + g.joinedRefs()
		},
	},
	{
		name:     "pre-commit-ci",
		pattern:  regexp.MustCompile(`^\* ` + commitPrefix + `(?P<verb>\[pre-commit\.ci\] pre-commit autoupdate) by @(?P<bot>pre-commit-ci(?:\[bot\])?) in (?P<refs>.*)$`),
		identity: func(match) string { return "pre-commit" },
		format: func(g *updateGroup) string {
			return BulletPrefix + g.prefix + g.verb + " by @" + g.bot + " in " + g.joinedRefs()
		},
	},
}

// classify returns the rule and identity key for an entry, or nil when the
// entry is not an automated update.
func classify(entry string) (*updateRule, match, string) {
	for _, r := range updateRules {
		if m, ok := r.match(entry); ok {
			return r, m, r.name + ":" + r.identity(m)
		}
	}
	return nil, nil, ""
}

// Group consolidates automated dependency-update entries within each section.
// It is GroupWithLogger with logging discarded.
func Group(sections SectionData) SectionData {
	return GroupWithLogger(sections, logr.Discard())
}

// GroupWithLogger consolidates automated dependency-update entries within
// each section. Entries with the same identity merge into one entry at the
// position of the first occurrence, carrying the newest version, the
// earliest "from" version for range bumps, and every reference. Other
// entries keep their position. Sections never merge with each other.
func GroupWithLogger(sections SectionData, log logr.Logger) SectionData {
	out := make(SectionData, len(sections))
	for label, entries := range sections {
		out[label] = groupSection(entries, log.WithValues("section", label))
	}
	return out
}

func groupSection(entries []string, log logr.Logger) []string {
	if len(entries) == 0 {
		return []string{}
	}

	groups := make(map[string]*updateGroup)
	keys := make([]string, len(entries))

	for i, entry := range entries {
		rule, m, key := classify(entry)
		if rule == nil {
			continue
		}
		keys[i] = key

		g, ok := groups[key]
		if !ok {
			g = &updateGroup{
				rule:     rule,
				prefix:   m["prefix"],
				verb:     m["verb"],
				name:     m["name"],
				bot:      m["bot"],
				latest:   m["latest"],
				initial:  m["initial"],
				seenRefs: make(map[string]bool),
			}
			g.addRefs(m["refs"])
			groups[key] = g
			continue
		}

		g.addRefs(m["refs"])
		mergeVersions(g, m, log.WithValues("key", key))
	}

	result := make([]string, 0, len(entries))
	emitted := make(map[string]bool, len(groups))
	for i, entry := range entries {
		key := keys[i]
		if key == "" {
			result = append(result, entry)
			continue
		}
		if emitted[key] {
			continue
		}
		emitted[key] = true
		g := groups[key]
		result = append(result, g.rule.format(g))
	}

	return result
}

// mergeVersions folds the versions of a repeated entry into its group.
func mergeVersions(g *updateGroup, m match, log logr.Logger) {
	if g.rule.trackInitial {
		initial := m["initial"]
		switch {
		case initial != "" && g.initial != "":
			if IsEarlier(initial, g.initial) {
				log.V(1).Info("updating initial version", "from", g.initial, "to", initial)
				g.initial = initial
			}
		case initial != "":
			g.initial = initial
		}
	}

	if g.rule.trackLatest {
		latest := m["latest"]
		if latest != "" && g.latest != "" && IsNewer(latest, g.latest, g.rule.trustRecency) {
			log.V(1).Info("updating latest version", "from", g.latest, "to", latest)
			g.latest = latest
		}
	}
}

var trailingNumber = regexp.MustCompile(`(\d+)\D*$`)

// refKey orders references by their trailing number when they have one.
type refKey struct {
	hasNum bool
	num    uint64
	text   string
}

func newRefKey(ref string) refKey {
	k := refKey{text: ref}
	if m := trailingNumber.FindStringSubmatch(ref); m != nil {
		if n, err := strconv.ParseUint(m[1], 10, 64); err == nil {
			k.hasNum = true
			k.num = n
		}
	}
	return k
}

// sortRefs sorts references ascending: numbered references by number first,
// then the rest lexically.
func sortRefs(refs []string) {
	keys := make(map[string]refKey, len(refs))
	for _, r := range refs {
		keys[r] = newRefKey(r)
	}
	sort.SliceStable(refs, func(i, j int) bool {
		a, b := keys[refs[i]], keys[refs[j]]
		if a.hasNum != b.hasNum {
			return a.hasNum
		}
		if a.hasNum && a.num != b.num {
			return a.num < b.num
		}
		return a.text < b.text
	})
}
