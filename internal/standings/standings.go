// Package standings turns teams, matchdays, and per-rubber results into a
// sorted league table. ComputeStandings is a pure function of its inputs:
// no hidden state, deterministic output for identical input, partial
// season data excluded instead of failing.
package standings

import (
	"sort"

	"nuliga-league-mcp/internal/model"
)

// Row is one team's line in the computed table. Rows are always
// recomputed, never persisted.
type Row struct {
	Position            int    `json:"position"`
	TeamID              string `json:"team_id"`
	TeamName            string `json:"team_name"`
	Played              int    `json:"played"`
	Won                 int    `json:"won"`
	Draw                int    `json:"draw"`
	Lost                int    `json:"lost"`
	TabPoints           int    `json:"tab_points"`
	MatchPointsFor      int    `json:"match_points_for"`
	MatchPointsAgainst  int    `json:"match_points_against"`
	SetsFor             int    `json:"sets_for"`
	SetsAgainst         int    `json:"sets_against"`
	GamesFor            int    `json:"games_for"`
	GamesAgainst        int    `json:"games_against"`
}

// championsTiebreakPoints: a third set reaching this score on either side
// is a Champions tiebreak, not a regular set. Detection is heuristic on
// raw scores; nuLiga carries no match-format flag.
const championsTiebreakPoints = 10

// ComputeStandings aggregates completed results into a sorted table.
// Matchdays referencing unknown teams, results without a winner, and
// matchdays contributing zero match points are all silently excluded:
// partial-season data is the normal operating state.
func ComputeStandings(teams []model.Team, matchdays []model.Matchday, results []model.MatchResult) []Row {
	// Accumulators are built in input order so ties on every sort
	// criterion keep a stable, reproducible order.
	accum := make(map[string]*Row, len(teams))
	order := make([]string, 0, len(teams))
	for _, t := range teams {
		if _, ok := accum[t.ID]; ok {
			continue
		}
		name := t.ClubName
		if t.TeamName != "" {
			name += " " + t.TeamName
		}
		accum[t.ID] = &Row{TeamID: t.ID, TeamName: name}
		order = append(order, t.ID)
	}

	byMatchday := make(map[string][]model.MatchResult, len(matchdays))
	for _, r := range results {
		byMatchday[r.MatchdayID] = append(byMatchday[r.MatchdayID], r)
	}

	for _, md := range matchdays {
		home, homeOK := accum[md.HomeTeamID]
		away, awayOK := accum[md.AwayTeamID]
		if !homeOK || !awayOK {
			continue
		}
		rows := byMatchday[md.ID]
		if len(rows) == 0 {
			continue
		}

		var tally matchdayTally
		for _, r := range rows {
			if r.Status != "completed" || r.Winner == "" {
				continue
			}
			tally.addResult(r)
		}
		// Nothing counted: a matchday of cancelled or unfinished rubbers
		// must not show up as a phantom 0:0 draw.
		if tally.homePoints+tally.awayPoints == 0 {
			continue
		}

		home.Played++
		away.Played++
		home.MatchPointsFor += tally.homePoints
		home.MatchPointsAgainst += tally.awayPoints
		away.MatchPointsFor += tally.awayPoints
		away.MatchPointsAgainst += tally.homePoints
		home.SetsFor += tally.homeSets
		home.SetsAgainst += tally.awaySets
		away.SetsFor += tally.awaySets
		away.SetsAgainst += tally.homeSets
		home.GamesFor += tally.homeGames
		home.GamesAgainst += tally.awayGames
		away.GamesFor += tally.awayGames
		away.GamesAgainst += tally.homeGames

		switch {
		case tally.homePoints > tally.awayPoints:
			home.Won++
			home.TabPoints += 2
			away.Lost++
		case tally.awayPoints > tally.homePoints:
			away.Won++
			away.TabPoints += 2
			home.Lost++
		default:
			home.Draw++
			away.Draw++
			home.TabPoints++
			away.TabPoints++
		}
	}

	rows := make([]Row, 0, len(order))
	for _, id := range order {
		rows = append(rows, *accum[id])
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.TabPoints != b.TabPoints {
			return a.TabPoints > b.TabPoints
		}
		if d1, d2 := a.MatchPointsFor-a.MatchPointsAgainst, b.MatchPointsFor-b.MatchPointsAgainst; d1 != d2 {
			return d1 > d2
		}
		if d1, d2 := a.SetsFor-a.SetsAgainst, b.SetsFor-b.SetsAgainst; d1 != d2 {
			return d1 > d2
		}
		if d1, d2 := a.GamesFor-a.GamesAgainst, b.GamesFor-b.GamesAgainst; d1 != d2 {
			return d1 > d2
		}
		return false
	})
	for i := range rows {
		rows[i].Position = i + 1
	}
	return rows
}

// matchdayTally accumulates one matchday's counted rubbers.
type matchdayTally struct {
	homePoints, awayPoints int
	homeSets, awaySets     int
	homeGames, awayGames   int
}

func (t *matchdayTally) addResult(r model.MatchResult) {
	if r.Winner == "home" {
		t.homePoints++
	} else {
		t.awayPoints++
	}

	t.addSet(r.Set1Home, r.Set1Guest, false)
	t.addSet(r.Set2Home, r.Set2Guest, false)
	t.addSet(r.Set3Home, r.Set3Guest, true)
}

// addSet credits one set's winner with the set and its games. A deciding
// third set reaching 10 is a Champions tiebreak: it counts as one set and
// one game for the winner so tiebreak point totals do not distort the
// games tally.
func (t *matchdayTally) addSet(home, guest int, decider bool) {
	if home == 0 && guest == 0 {
		return
	}
	if decider && (home >= championsTiebreakPoints || guest >= championsTiebreakPoints) {
		if home > guest {
			t.homeSets++
			t.homeGames++
		} else if guest > home {
			t.awaySets++
			t.awayGames++
		}
		return
	}

	t.homeGames += home
	t.awayGames += guest
	if home > guest {
		t.homeSets++
	} else if guest > home {
		t.awaySets++
	}
}
