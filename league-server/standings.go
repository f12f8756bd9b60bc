package main

import (
	"fmt"

	"nuliga-league-mcp/internal/model"
	"nuliga-league-mcp/internal/standings"
	"nuliga-league-mcp/internal/store"
)

type StandingsResult struct {
	League    string          `json:"league,omitempty"`
	GroupName string          `json:"group_name,omitempty"`
	Season    string          `json:"season,omitempty"`
	Table     []standings.Row `json:"table"`
}

// buildStandings computes the table for the matchdays matching the given
// filters. Empty filters mean "all". Only teams that appear in a
// filtered matchday enter the table, in snapshot order.
func buildStandings(snap *store.Snapshot, league, groupName, season string) (StandingsResult, error) {
	var matchdays []model.Matchday
	for _, md := range snap.Matchdays {
		if league != "" && md.League != league {
			continue
		}
		if groupName != "" && md.GroupName != groupName {
			continue
		}
		if season != "" && md.Season != season {
			continue
		}
		matchdays = append(matchdays, md)
	}
	if len(matchdays) == 0 {
		return StandingsResult{}, fmt.Errorf("no matchdays for league=%q group=%q season=%q", league, groupName, season)
	}

	referenced := make(map[string]bool, len(matchdays)*2)
	for _, md := range matchdays {
		referenced[md.HomeTeamID] = true
		referenced[md.AwayTeamID] = true
	}
	var teams []model.Team
	for _, t := range snap.Teams {
		if referenced[t.ID] {
			teams = append(teams, t)
		}
	}

	return StandingsResult{
		League:    league,
		GroupName: groupName,
		Season:    season,
		Table:     standings.ComputeStandings(teams, matchdays, snap.Results),
	}, nil
}
