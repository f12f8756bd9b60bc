// Package model holds the domain types shared by the matchers, the
// standings engine, the store, and the tool server. All types are plain
// data: identity lives in the ID fields, everything else is mutable
// display state.
package model

// PlayerType classifies how a player record entered the system.
type PlayerType string

const (
	PlayerTypeAppUser       PlayerType = "app_user"
	PlayerTypeExternal      PlayerType = "external"
	PlayerTypeOpponent      PlayerType = "opponent"
	PlayerTypePendingImport PlayerType = "pending_import"
)

// MatchdayStatus is the lifecycle state of a fixture.
type MatchdayStatus string

const (
	MatchdayScheduled MatchdayStatus = "scheduled"
	MatchdayCompleted MatchdayStatus = "completed"
	MatchdayCancelled MatchdayStatus = "cancelled"
	MatchdayPostponed MatchdayStatus = "postponed"
)

// MatchType distinguishes singles from doubles rubbers.
type MatchType string

const (
	MatchTypeEinzel MatchType = "Einzel"
	MatchTypeDoppel MatchType = "Doppel"
)

// Club is a tennis club known to the system.
type Club struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	NormalizedName string `json:"normalized_name"`
	City           string `json:"city"`
	Region         string `json:"region"`
}

// Team is one club team in a category, e.g. "SV Sürth 1" in "Herren 40".
// ClubName is a denormalized display copy; ClubID is the reference.
// No two teams share the same (club_id, team_name, category) tuple.
type Team struct {
	ID       string `json:"id"`
	ClubID   string `json:"club_id"`
	ClubName string `json:"club_name"`
	TeamName string `json:"team_name"` // suffix: "1", "2", roman numeral
	Category string `json:"category"`  // e.g. "Herren 40"
}

// TeamSeason is one team's entry in a season/league/group. At most one
// active row per (team_id, season, league, group_name).
type TeamSeason struct {
	TeamID    string `json:"team_id"`
	Season    string `json:"season"` // e.g. "Winter 2025/26"
	League    string `json:"league"`
	GroupName string `json:"group_name"`
	TeamSize  int    `json:"team_size"`
	IsActive  bool   `json:"is_active"`
}

// Player is a person. ExternalID is the federation (TVM) ID; CurrentLK is
// the German rating string, e.g. "13.5" (lower = stronger).
type Player struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	CurrentLK  string     `json:"current_lk,omitempty"`
	ExternalID string     `json:"external_id,omitempty"`
	Type       PlayerType `json:"player_type"`
}

// ImportedPlayer is a player row as delivered by the AI parser or the
// portal scraper. All fields besides Name are optional; the matching
// cascade skips rules whose fields are absent.
type ImportedPlayer struct {
	Name     string `json:"name"`
	LK       string `json:"lk,omitempty"`
	IDNumber string `json:"id_number,omitempty"`
	Rank     int    `json:"rank,omitempty"`
}

// Matchday is a fixture between two teams, made up of individual results.
type Matchday struct {
	ID         string         `json:"id"`
	HomeTeamID string         `json:"home_team_id"`
	AwayTeamID string         `json:"away_team_id"`
	MatchDate  string         `json:"match_date"`
	Status     MatchdayStatus `json:"status"`
	HomeScore  int            `json:"home_score"`
	AwayScore  int            `json:"away_score"`
	League     string         `json:"league"`
	GroupName  string         `json:"group_name"`
	Season     string         `json:"season"`
}

// MatchResult is one rubber within a matchday. Set scores are raw game
// counts; a third set reaching 10 on either side is a Champions tiebreak.
type MatchResult struct {
	MatchdayID  string    `json:"matchday_id"`
	MatchType   MatchType `json:"match_type"`
	HomePlayer  string    `json:"home_player,omitempty"`
	GuestPlayer string    `json:"guest_player,omitempty"`
	Set1Home    int       `json:"set1_home"`
	Set1Guest   int       `json:"set1_guest"`
	Set2Home    int       `json:"set2_home"`
	Set2Guest   int       `json:"set2_guest"`
	Set3Home    int       `json:"set3_home"`
	Set3Guest   int       `json:"set3_guest"`
	Winner      string    `json:"winner"` // "home" or "guest", empty if unknown
	Status      string    `json:"status"` // "completed" counts toward standings
}

// ParsedMatch is one fixture row from the AI parser payload.
type ParsedMatch struct {
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	MatchDate string `json:"match_date,omitempty"`
	League    string `json:"league,omitempty"`
}

// ParsedTeamInfo carries the club/team/league header of a parsed payload.
type ParsedTeamInfo struct {
	ClubName string `json:"club_name"`
	TeamName string `json:"team_name,omitempty"`
	Category string `json:"category,omitempty"`
	League   string `json:"league,omitempty"`
	Season   string `json:"season,omitempty"`
}

// ParsedPayload is the structured output of the AI text parser, shape
// {team_info, matches[], players[]}.
type ParsedPayload struct {
	TeamInfo ParsedTeamInfo   `json:"team_info"`
	Matches  []ParsedMatch    `json:"matches"`
	Players  []ImportedPlayer `json:"players"`
}
