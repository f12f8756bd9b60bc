package match

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"nuliga-league-mcp/internal/model"
	"nuliga-league-mcp/internal/normalize"
)

var (
	// Trailing team token: a digit group or roman numeral at the end of a
	// full team label ("SV Sürth 1", "TC Köln II").
	trailingTokenRe = regexp.MustCompile(`^(.*\S)\s+(\d+|[ivx]+)$`)

	// A label that is nothing but a team token ("1", "II").
	bareTokenRe = regexp.MustCompile(`^(\d+|[ivx]+)$`)

	// "<N>er" team-size marker, e.g. "4er Herren 50".
	teamSizeRe = regexp.MustCompile(`\b(\d+)er\b`)
)

var romanNumerals = []string{"", "i", "ii", "iii", "iv", "v", "vi", "vii", "viii", "ix", "x", "xi", "xii"}

// SplitTeamLabel splits a full team label into club name and team suffix.
// A bare token ("1", "II") is all suffix; a label without a trailing
// digit/roman token is all club name.
func SplitTeamLabel(label string) (clubName, suffix string) {
	n := normalize.Normalize(label)
	if bareTokenRe.MatchString(n) {
		return "", n
	}
	if m := trailingTokenRe.FindStringSubmatch(n); m != nil {
		return m[1], m[2]
	}
	return n, ""
}

// InferTeamSize reads the "<N>er" marker from a label; absent markers mean
// the standard 4-player lineup.
func InferTeamSize(label string) int {
	if m := teamSizeRe.FindStringSubmatch(normalize.Normalize(label)); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return n
		}
	}
	return 4
}

// suffixVariants returns the interchangeable spellings of a team suffix:
// "1" and "i" name the same team. Unparseable suffixes map to themselves.
func suffixVariants(suffix string) []string {
	s := normalize.Normalize(suffix)
	if s == "" {
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 && n < len(romanNumerals) {
		return []string{s, romanNumerals[n]}
	}
	for n, r := range romanNumerals {
		if r == s && n > 0 {
			return []string{strconv.Itoa(n), s}
		}
	}
	return []string{s}
}

// KeyTransform produces one normalized alias key for a (club, suffix)
// pair; empty results are skipped.
type KeyTransform func(clubName, suffix string) string

// DefaultKeyTransforms is the alias rule table. It is data so tests can
// exercise each rule and deployments can extend naming tolerance without
// touching the matcher. A bare club name is a key only for the club's
// unsuffixed team, otherwise "SV Sürth" would collide with every numbered
// team of the club.
var DefaultKeyTransforms = []KeyTransform{
	func(club, suffix string) string { return strings.TrimSpace(club + " " + suffix) },
	func(club, suffix string) string {
		if suffix != "" {
			return ""
		}
		return club
	},
}

// TeamKeys builds the normalized alias-key set for a club/suffix pair by
// running every transform over every suffix spelling variant. Each key is
// also stored accent-folded so "SV Surth 2" and "SV Sürth 2" intersect.
func TeamKeys(clubName, suffix string, transforms []KeyTransform) map[string]struct{} {
	club := normalize.Normalize(clubName)
	variants := suffixVariants(suffix)
	if len(variants) == 0 {
		variants = []string{""}
	}
	keys := make(map[string]struct{})
	for _, v := range variants {
		for _, tr := range transforms {
			if k := normalize.Normalize(tr(club, v)); k != "" {
				keys[k] = struct{}{}
				keys[normalize.Fold(k)] = struct{}{}
			}
		}
	}
	return keys
}

// TeamMatcher resolves team labels against a snapshot of known teams,
// scoped to an already-resolved club.
type TeamMatcher struct {
	transforms []KeyTransform
}

func NewTeamMatcher() *TeamMatcher {
	return &TeamMatcher{transforms: DefaultKeyTransforms}
}

// MatchTeam resolves a team suffix or full label among the teams of
// clubID. Category narrows the search when present. An unresolved club
// makes team matching impossible: the candidate comes back unmatched and
// flagged for review.
func (m *TeamMatcher) MatchTeam(label, clubID, category string, teams []model.Team, seasons []model.TeamSeason) Candidate[model.Team] {
	c := Candidate[model.Team]{Raw: label}
	if clubID == "" || normalize.Normalize(label) == "" {
		return finish(c)
	}

	scoped := make([]model.Team, 0, 4)
	for _, t := range teams {
		if t.ClubID == clubID {
			scoped = append(scoped, t)
		}
	}
	if len(scoped) == 0 {
		return finish(c)
	}
	// Teams in the requested category are checked first so that a suffix
	// shared across categories ("1" in Herren 40 and Damen) resolves to
	// the right one.
	if category != "" {
		sort.SliceStable(scoped, func(i, j int) bool {
			return sameCategory(scoped[i].Category, category) && !sameCategory(scoped[j].Category, category)
		})
	}

	labelClub, suffix := SplitTeamLabel(label)
	if labelClub == "" {
		// Bare suffix: canonicalize with the stored club name so the
		// full-label keys can intersect.
		labelClub = scoped[0].ClubName
	}
	inputKeys := TeamKeys(labelClub, suffix, m.transforms)
	inputKeys[normalize.Normalize(label)] = struct{}{}
	inputKeys[normalize.Fold(label)] = struct{}{}

	// 1. Exact alias-key intersection.
	for i := range scoped {
		for k := range TeamKeys(scoped[i].ClubName, scoped[i].TeamName, m.transforms) {
			if _, ok := inputKeys[k]; ok {
				c.Matched, c.Score = &scoped[i], 1.0
				return finish(c)
			}
		}
	}

	// 2. Category plus suffix: survives club-name spellings the alias
	// keys cannot bridge.
	if category != "" && suffix != "" {
		for i := range scoped {
			if sameCategory(scoped[i].Category, category) && sameSuffix(scoped[i].TeamName, suffix) {
				c.Matched, c.Score = &scoped[i], 0.95
				return finish(c)
			}
		}
	}

	// 3. Similarity over the club's teams on the full constructed label.
	type scored struct {
		idx   int
		score float64
	}
	ranked := make([]scored, 0, len(scoped))
	for i := range scoped {
		full := strings.TrimSpace(scoped[i].ClubName + " " + scoped[i].TeamName)
		ranked = append(ranked, scored{i, normalize.Similarity(label, full)})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	c.Matched, c.Score = &scoped[ranked[0].idx], ranked[0].score
	for _, r := range ranked[1:] {
		if len(c.Alternatives) == 3 {
			break
		}
		c.Alternatives = append(c.Alternatives, Alternative[model.Team]{Entity: scoped[r.idx], Score: r.score})
	}
	return finish(c)
}

func sameCategory(a, b string) bool {
	return normalize.Normalize(a) == normalize.Normalize(b)
}

// sameSuffix reports whether two team suffixes name the same team across
// digit/roman spellings.
func sameSuffix(a, b string) bool {
	for _, va := range suffixVariants(a) {
		for _, vb := range suffixVariants(b) {
			if va == vb {
				return true
			}
		}
	}
	return false
}

// ActiveSeason returns the active TeamSeason for a team, if any. The
// uniqueness invariant allows at most one per (team, season, league, group).
func ActiveSeason(teamID, season string, seasons []model.TeamSeason) *model.TeamSeason {
	for i := range seasons {
		s := &seasons[i]
		if s.TeamID == teamID && s.IsActive && (season == "" || s.Season == season) {
			return s
		}
	}
	return nil
}
