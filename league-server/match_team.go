package main

import (
	"nuliga-league-mcp/internal/match"
	"nuliga-league-mcp/internal/model"
	"nuliga-league-mcp/internal/store"
)

type MatchTeamResult struct {
	Candidate    match.Candidate[model.Team] `json:"candidate"`
	Decision     string                      `json:"decision"`
	ActiveSeason *model.TeamSeason           `json:"active_season,omitempty"`
}

func buildMatchTeam(snap *store.Snapshot, label, clubID, category string) (MatchTeamResult, error) {
	cand := match.NewTeamMatcher().MatchTeam(label, clubID, category, snap.Teams, snap.TeamSeasons)
	res := MatchTeamResult{
		Candidate: cand,
		Decision:  decisionFor(cand.Matched != nil, cand.Score),
	}
	if cand.Matched != nil {
		res.ActiveSeason = match.ActiveSeason(cand.Matched.ID, "", snap.TeamSeasons)
	}
	return res, nil
}
