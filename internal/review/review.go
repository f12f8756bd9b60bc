// Package review aggregates the individual matchers into one assessment
// of a parsed import payload: which club and team it belongs to, which
// league and group it names, and whether each fixture row can be
// imported without a human looking at it first.
package review

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"nuliga-league-mcp/internal/match"
	"nuliga-league-mcp/internal/model"
	"nuliga-league-mcp/internal/normalize"
)

// MatchStatus is the import recommendation for one fixture row.
type MatchStatus string

const (
	// StatusRecommended: both sides resolved to existing teams.
	StatusRecommended MatchStatus = "recommended"
	// StatusNeedsReview: at least one side would create a new team.
	StatusNeedsReview MatchStatus = "needs-review"
	// StatusBlocked: at least one side could not be resolved at all.
	StatusBlocked MatchStatus = "blocked"
)

// LeagueInfo is the normalized league/group extracted from a free-form
// league string such as "2. Kreisklasse Gr. 043".
type LeagueInfo struct {
	Raw        string  `json:"raw"`
	Normalized string  `json:"normalized"`
	Group      string  `json:"group,omitempty"`
	Confidence float64 `json:"confidence"`
}

// MatchAssessment is the per-fixture import verdict.
type MatchAssessment struct {
	HomeTeam  string      `json:"home_team"`
	AwayTeam  string      `json:"away_team"`
	Status    MatchStatus `json:"status"`
	HomeMatch *model.Team `json:"home_match,omitempty"`
	AwayMatch *model.Team `json:"away_match,omitempty"`
}

// Result is the aggregate review outcome for one parsed payload.
// NeedsReview is set when any sub-candidate is below the auto-accept
// threshold or unmatched.
type Result struct {
	Club        match.Candidate[model.Club] `json:"club"`
	Team        match.Candidate[model.Team] `json:"team"`
	League      LeagueInfo                  `json:"league"`
	Matches     []MatchAssessment           `json:"matches"`
	NeedsReview bool                        `json:"needs_review"`
}

var (
	// "<N>. <Klasse>" — e.g. "2. Kreisklasse", "1. Bezirksliga".
	leagueRe = regexp.MustCompile(`(\d+)\.\s*([\p{L}-]+)`)
	// "Gr. <digits>" group marker, dot optional.
	groupRe = regexp.MustCompile(`(?i)\bgr\.?\s*(\d+)`)
)

// NormalizeLeague extracts the league tier and group number from a raw
// league string. An unrecognized non-empty string passes through trimmed
// with reduced confidence so the caller queues it for review.
func NormalizeLeague(raw string) LeagueInfo {
	info := LeagueInfo{Raw: raw}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return info
	}
	if m := groupRe.FindStringSubmatch(trimmed); m != nil {
		info.Group = strings.TrimLeft(m[1], "0")
		if info.Group == "" {
			info.Group = "0"
		}
	}
	if m := leagueRe.FindStringSubmatch(trimmed); m != nil {
		// Caser carries transform state, so one per call.
		caser := cases.Title(language.German)
		info.Normalized = fmt.Sprintf("%s. %s", m[1], caser.String(strings.ToLower(m[2])))
		info.Confidence = 1.0
		return info
	}
	info.Normalized = trimmed
	info.Confidence = 0.5
	return info
}

// Analyzer runs the full reconciliation review over parsed payloads.
type Analyzer struct {
	clubs *match.ClubMatcher
	teams *match.TeamMatcher
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{
		clubs: match.NewClubMatcher(),
		teams: match.NewTeamMatcher(),
	}
}

// AnalyzeParsedData resolves the payload's club, team, and league header
// and classifies every fixture row. It never fails: every ambiguity
// surfaces as a flagged candidate or a non-recommended match status.
func (a *Analyzer) AnalyzeParsedData(payload model.ParsedPayload, clubs []model.Club, teams []model.Team, seasons []model.TeamSeason) Result {
	res := Result{
		Club:   a.clubs.MatchClub(payload.TeamInfo.ClubName, clubs),
		League: NormalizeLeague(payload.TeamInfo.League),
	}

	// Team matching is scoped to the club result even when the club match
	// itself needs confirmation: the review UI shows both candidates
	// together and a provisional team guess beats none.
	clubID := ""
	if res.Club.Matched != nil {
		clubID = res.Club.Matched.ID
	}
	res.Team = a.teams.MatchTeam(payload.TeamInfo.TeamName, clubID, payload.TeamInfo.Category, teams, seasons)

	for _, pm := range payload.Matches {
		res.Matches = append(res.Matches, a.assessMatch(pm, payload.TeamInfo.Category, clubs, teams, seasons))
	}

	res.NeedsReview = res.Club.NeedsReview || res.Team.NeedsReview ||
		res.League.Confidence < match.AutoAcceptThreshold
	return res
}

type sideState int

const (
	sideResolved sideState = iota
	sideNew
	sideUnresolved
)

func (a *Analyzer) assessMatch(pm model.ParsedMatch, category string, clubs []model.Club, teams []model.Team, seasons []model.TeamSeason) MatchAssessment {
	ma := MatchAssessment{HomeTeam: pm.HomeTeam, AwayTeam: pm.AwayTeam}

	homeState, homeTeam := a.resolveSide(pm.HomeTeam, category, clubs, teams, seasons)
	awayState, awayTeam := a.resolveSide(pm.AwayTeam, category, clubs, teams, seasons)
	ma.HomeMatch, ma.AwayMatch = homeTeam, awayTeam

	switch {
	case homeState == sideUnresolved || awayState == sideUnresolved:
		ma.Status = StatusBlocked
	case homeState == sideNew || awayState == sideNew:
		ma.Status = StatusNeedsReview
	default:
		ma.Status = StatusRecommended
	}
	return ma
}

// resolveSide resolves one side's full team label ("SV Sürth 2") by
// matching its club part first, then the label among that club's teams.
func (a *Analyzer) resolveSide(label, category string, clubs []model.Club, teams []model.Team, seasons []model.TeamSeason) (sideState, *model.Team) {
	if normalize.Normalize(label) == "" {
		return sideUnresolved, nil
	}
	clubName, _ := match.SplitTeamLabel(label)
	if clubName == "" {
		clubName = label
	}
	clubCand := a.clubs.MatchClub(clubName, clubs)
	if clubCand.Matched == nil || clubCand.Score < match.ConfirmThreshold {
		return sideUnresolved, nil
	}

	teamCand := a.teams.MatchTeam(label, clubCand.Matched.ID, category, teams, seasons)
	switch {
	case teamCand.Matched == nil:
		return sideNew, nil
	case teamCand.NeedsReview:
		return sideUnresolved, teamCand.Matched
	default:
		return sideResolved, teamCand.Matched
	}
}
