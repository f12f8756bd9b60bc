package match

import (
	"sort"
	"strings"

	"nuliga-league-mcp/internal/model"
	"nuliga-league-mcp/internal/normalize"
)

// DefaultAbbreviations is the rewrite table applied during abbreviation
// expansion. It is configuration data, not logic: deployments extend it via
// WithAbbreviations rather than editing the cascade.
var DefaultAbbreviations = map[string]string{
	"rg":  "rot-gelb",
	"rw":  "rot-weiß",
	"gw":  "grün-weiß",
	"sw":  "schwarz-weiß",
	"bw":  "blau-weiß",
	"tc":  "tennis club",
	"thc": "tennis hockey club",
	"tg":  "turngemeinde",
	"sv":  "sportverein",
	"tus": "turn- und sportverein",
	"vfl": "verein für leibesübungen",
	"djk": "deutsche jugendkraft",
}

// DefaultSuffixTokens are club-name filler tokens ignored by the
// suffix-stripping step.
var DefaultSuffixTokens = []string{"e.v.", "ev", "tennis", "tc", "sv", "tg", "thc", "gg"}

// ClubMatcher resolves raw club names against a snapshot of known clubs.
// The zero value is not usable; construct with NewClubMatcher.
type ClubMatcher struct {
	abbreviations map[string]string
	suffixTokens  []string
}

// ClubOption customizes a ClubMatcher.
type ClubOption func(*ClubMatcher)

// WithAbbreviations replaces the abbreviation rewrite table.
func WithAbbreviations(table map[string]string) ClubOption {
	return func(m *ClubMatcher) { m.abbreviations = table }
}

// WithSuffixTokens replaces the suffix token list.
func WithSuffixTokens(tokens []string) ClubOption {
	return func(m *ClubMatcher) { m.suffixTokens = tokens }
}

func NewClubMatcher(opts ...ClubOption) *ClubMatcher {
	m := &ClubMatcher{
		abbreviations: DefaultAbbreviations,
		suffixTokens:  DefaultSuffixTokens,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// MatchClub resolves rawName against clubs, returning on the first
// confident rule in a fixed cascade: exact (1.0), substring (0.95),
// abbreviation expansion (0.92), suffix stripping (0.90), shared-city
// blend (0.85–0.95), then plain similarity with ranked alternatives.
func (m *ClubMatcher) MatchClub(rawName string, clubs []model.Club) Candidate[model.Club] {
	raw := normalize.Normalize(rawName)
	rawFold := normalize.Fold(rawName)
	c := Candidate[model.Club]{Raw: rawName}
	if raw == "" || len(clubs) == 0 {
		return finish(c)
	}

	// 1. Exact equality on the normalized name. Accent-folded equality
	// counts as exact: the portal writes the same club with and without
	// umlauts.
	for i := range clubs {
		if clubNorm(clubs[i]) == raw || clubFold(clubs[i]) == rawFold {
			c.Matched, c.Score = &clubs[i], 1.0
			return finish(c)
		}
	}

	// 2. Substring containment either direction, folded as well.
	for i := range clubs {
		known := clubNorm(clubs[i])
		knownFold := clubFold(clubs[i])
		if strings.Contains(known, raw) || strings.Contains(raw, known) ||
			strings.Contains(knownFold, rawFold) || strings.Contains(rawFold, knownFold) {
			c.Matched, c.Score = &clubs[i], 0.95
			return finish(c)
		}
	}

	// 3. Abbreviation expansion on both sides.
	rawExp := m.expandAbbreviations(raw)
	for i := range clubs {
		knownExp := m.expandAbbreviations(clubNorm(clubs[i]))
		if strings.Contains(knownExp, rawExp) || strings.Contains(rawExp, knownExp) {
			c.Matched, c.Score = &clubs[i], 0.92
			return finish(c)
		}
	}

	// 4. Suffix stripping: drop filler tokens, compare what is left.
	rawClean := m.stripSuffixTokens(raw)
	for i := range clubs {
		if rawClean != "" && m.stripSuffixTokens(clubNorm(clubs[i])) == rawClean {
			c.Matched, c.Score = &clubs[i], 0.90
			return finish(c)
		}
	}

	// 5. Shared city: same trailing token (assumed the city) on both
	// sides and similar remainders.
	if city, rest := splitCity(raw); city != "" {
		for i := range clubs {
			knownCity, knownRest := splitCity(clubNorm(clubs[i]))
			if knownCity != city || rest == "" || knownRest == "" {
				continue
			}
			if sim := normalize.Similarity(rest, knownRest); sim > 0.7 {
				c.Matched, c.Score = &clubs[i], 0.85+sim*0.10
				return finish(c)
			}
		}
	}

	// 6. Fallback: rank every club by plain similarity, keep the top-3
	// runners-up for manual review.
	type scored struct {
		idx   int
		score float64
	}
	ranked := make([]scored, 0, len(clubs))
	for i := range clubs {
		ranked = append(ranked, scored{i, normalize.Similarity(raw, clubNorm(clubs[i]))})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	c.Matched, c.Score = &clubs[ranked[0].idx], ranked[0].score
	for _, r := range ranked[1:] {
		if len(c.Alternatives) == 3 {
			break
		}
		c.Alternatives = append(c.Alternatives, Alternative[model.Club]{Entity: clubs[r.idx], Score: r.score})
	}
	return finish(c)
}

// clubNorm prefers the stored normalized name, falling back to normalizing
// the display name for records that predate the normalized column.
func clubNorm(c model.Club) string {
	if c.NormalizedName != "" {
		return c.NormalizedName
	}
	return normalize.Normalize(c.Name)
}

func clubFold(c model.Club) string {
	return normalize.Fold(clubNorm(c))
}

// expandAbbreviations rewrites known abbreviation tokens in place.
func (m *ClubMatcher) expandAbbreviations(s string) string {
	fields := strings.Fields(s)
	for i, f := range fields {
		if exp, ok := m.abbreviations[f]; ok {
			fields[i] = exp
		}
	}
	return strings.Join(fields, " ")
}

// stripSuffixTokens removes filler tokens from a normalized name.
func (m *ClubMatcher) stripSuffixTokens(s string) string {
	fields := strings.Fields(s)
	kept := fields[:0]
	for _, f := range fields {
		drop := false
		for _, tok := range m.suffixTokens {
			if f == tok {
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, " ")
}

// splitCity splits a normalized name into its trailing token (assumed to
// be the city when longer than 3 runes) and the remainder.
func splitCity(s string) (city, rest string) {
	idx := strings.LastIndex(s, " ")
	if idx < 0 {
		return "", s
	}
	last := s[idx+1:]
	if len([]rune(last)) <= 3 {
		return "", s
	}
	return last, strings.TrimSpace(s[:idx])
}
