package main

import (
	"strings"

	"nuliga-league-mcp/internal/model"
	"nuliga-league-mcp/internal/normalize"
	"nuliga-league-mcp/internal/store"
)

type ClubLookupEntry struct {
	Club  model.Club   `json:"club"`
	Teams []model.Team `json:"teams,omitempty"`
}

type ClubLookupResult struct {
	Query string            `json:"query"`
	Clubs []ClubLookupEntry `json:"clubs"`
}

// buildClubLookup lists clubs whose normalized name contains the query,
// each with its teams. This backs the manual-pick step of the review UI.
func buildClubLookup(snap *store.Snapshot, query string) (ClubLookupResult, error) {
	q := normalize.Normalize(query)
	res := ClubLookupResult{Query: query}

	teamsByClub := make(map[string][]model.Team, len(snap.Clubs))
	for _, t := range snap.Teams {
		teamsByClub[t.ClubID] = append(teamsByClub[t.ClubID], t)
	}

	for _, c := range snap.Clubs {
		name := c.NormalizedName
		if name == "" {
			name = normalize.Normalize(c.Name)
		}
		if !strings.Contains(name, q) {
			continue
		}
		res.Clubs = append(res.Clubs, ClubLookupEntry{Club: c, Teams: teamsByClub[c.ID]})
	}
	return res, nil
}
