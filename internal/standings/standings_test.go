package standings

import (
	"reflect"
	"testing"

	"nuliga-league-mcp/internal/model"
)

var twoTeams = []model.Team{
	{ID: "A", ClubID: "c1", ClubName: "SV Sürth", TeamName: "1"},
	{ID: "B", ClubID: "c2", ClubName: "TC Rodenkirchen", TeamName: "1"},
}

func matchday(id, home, away string) model.Matchday {
	return model.Matchday{ID: id, HomeTeamID: home, AwayTeamID: away, Status: model.MatchdayCompleted}
}

// result builds a completed two-set rubber won 6:2 6:3 by the given side.
func result(matchdayID, winner string) model.MatchResult {
	r := model.MatchResult{
		MatchdayID: matchdayID,
		MatchType:  model.MatchTypeEinzel,
		Winner:     winner,
		Status:     "completed",
	}
	if winner == "home" {
		r.Set1Home, r.Set1Guest = 6, 2
		r.Set2Home, r.Set2Guest = 6, 3
	} else {
		r.Set1Home, r.Set1Guest = 2, 6
		r.Set2Home, r.Set2Guest = 3, 6
	}
	return r
}

func TestComputeStandings_SingleMatchday(t *testing.T) {
	md := matchday("m1", "A", "B")
	// A wins 4:2 over six rubbers.
	results := []model.MatchResult{
		result("m1", "home"), result("m1", "home"), result("m1", "home"),
		result("m1", "home"), result("m1", "guest"), result("m1", "guest"),
	}

	rows := ComputeStandings(twoTeams, []model.Matchday{md}, results)
	if len(rows) != 2 {
		t.Fatalf("want 2 rows, got %d", len(rows))
	}

	a, b := rows[0], rows[1]
	if a.TeamID != "A" {
		t.Fatalf("A should rank first, table: %+v", rows)
	}
	if a.Played != 1 || a.Won != 1 || a.Lost != 0 || a.TabPoints != 2 {
		t.Errorf("A: want played=1 won=1 tab=2, got %+v", a)
	}
	if b.Played != 1 || b.Lost != 1 || b.Won != 0 || b.TabPoints != 0 {
		t.Errorf("B: want played=1 lost=1 tab=0, got %+v", b)
	}
	if a.MatchPointsFor != 4 || a.MatchPointsAgainst != 2 {
		t.Errorf("A match points: want 4:2, got %d:%d", a.MatchPointsFor, a.MatchPointsAgainst)
	}
	if a.Position != 1 || b.Position != 2 {
		t.Errorf("positions: want 1/2, got %d/%d", a.Position, b.Position)
	}
}

func TestComputeStandings_Draw(t *testing.T) {
	md := matchday("m1", "A", "B")
	results := []model.MatchResult{
		result("m1", "home"), result("m1", "home"), result("m1", "home"),
		result("m1", "guest"), result("m1", "guest"), result("m1", "guest"),
	}

	rows := ComputeStandings(twoTeams, []model.Matchday{md}, results)
	for _, r := range rows {
		if r.Draw != 1 || r.TabPoints != 1 {
			t.Errorf("%s: want draw=1 tab=1, got %+v", r.TeamID, r)
		}
		if r.Won != 0 || r.Lost != 0 {
			t.Errorf("%s: drawn matchday must not count as won/lost", r.TeamID)
		}
	}
}

func TestComputeStandings_ChampionsTiebreakGames(t *testing.T) {
	md := matchday("m1", "A", "B")
	r := model.MatchResult{
		MatchdayID: "m1",
		MatchType:  model.MatchTypeEinzel,
		Winner:     "home",
		Status:     "completed",
		Set1Home:   6, Set1Guest: 3,
		Set2Home: 4, Set2Guest: 6,
		Set3Home: 10, Set3Guest: 5,
	}

	rows := ComputeStandings(twoTeams, []model.Matchday{md}, []model.MatchResult{r})
	a := rows[0]
	if a.TeamID != "A" {
		t.Fatalf("A should win, got %+v", rows)
	}
	// Sets: 6:3 and the tiebreak for A, 6:4 for B.
	if a.SetsFor != 2 || a.SetsAgainst != 1 {
		t.Errorf("sets: want 2:1, got %d:%d", a.SetsFor, a.SetsAgainst)
	}
	// Games: 6+4+1 for A, 3+6+0 for B — the 10:5 tiebreak is one game,
	// not fifteen.
	if a.GamesFor != 11 {
		t.Errorf("games for: want 11, got %d", a.GamesFor)
	}
	if a.GamesAgainst != 9 {
		t.Errorf("games against: want 9, got %d", a.GamesAgainst)
	}
}

func TestComputeStandings_NoCompletedResults(t *testing.T) {
	md := matchday("m1", "A", "B")
	pending := model.MatchResult{MatchdayID: "m1", Status: "scheduled"}

	rows := ComputeStandings(twoTeams, []model.Matchday{md}, []model.MatchResult{pending})
	for _, r := range rows {
		if r.Played != 0 {
			t.Errorf("%s: matchday without completed results must not count, got played=%d", r.TeamID, r.Played)
		}
	}
}

func TestComputeStandings_WinnerlessResultExcluded(t *testing.T) {
	md := matchday("m1", "A", "B")
	results := []model.MatchResult{
		result("m1", "home"),
		{MatchdayID: "m1", Status: "completed"}, // no winner recorded
	}

	rows := ComputeStandings(twoTeams, []model.Matchday{md}, results)
	a := rows[0]
	if a.MatchPointsFor != 1 || a.MatchPointsAgainst != 0 {
		t.Errorf("winner-less rubber must be excluded, got %d:%d", a.MatchPointsFor, a.MatchPointsAgainst)
	}
}

func TestComputeStandings_UnknownTeamExcluded(t *testing.T) {
	md := matchday("m1", "A", "ghost")
	rows := ComputeStandings(twoTeams, []model.Matchday{md}, []model.MatchResult{result("m1", "home")})
	for _, r := range rows {
		if r.Played != 0 {
			t.Errorf("matchday against unknown team must be excluded, got %+v", r)
		}
	}
}

func TestComputeStandings_SortOrder(t *testing.T) {
	teams := []model.Team{
		{ID: "A", ClubName: "A"},
		{ID: "B", ClubName: "B"},
		{ID: "C", ClubName: "C"},
		{ID: "D", ClubName: "D"},
	}
	matchdays := []model.Matchday{
		matchday("m1", "A", "B"), // A wins
		matchday("m2", "C", "D"), // C wins
		matchday("m3", "A", "C"), // A wins: A on 4 tab points, C on 2
		matchday("m4", "B", "D"), // B wins: B on 2, tied with C on tab points
	}
	results := []model.MatchResult{
		result("m1", "home"), result("m1", "home"),
		result("m2", "home"), result("m2", "home"),
		result("m3", "home"), result("m3", "home"),
		// B wins m4 4:0, giving B match points 4:2 against C's 2:2,
		// so B ranks ahead of C on match-point difference.
		result("m4", "home"), result("m4", "home"), result("m4", "home"), result("m4", "home"),
	}

	rows := ComputeStandings(teams, matchdays, results)
	gotOrder := []string{rows[0].TeamID, rows[1].TeamID, rows[2].TeamID, rows[3].TeamID}
	want := []string{"A", "B", "C", "D"}
	if !reflect.DeepEqual(gotOrder, want) {
		t.Errorf("order: want %v, got %v", want, gotOrder)
	}
}

func TestComputeStandings_Idempotent(t *testing.T) {
	md := matchday("m1", "A", "B")
	results := []model.MatchResult{
		result("m1", "home"), result("m1", "guest"), result("m1", "home"),
	}

	first := ComputeStandings(twoTeams, []model.Matchday{md}, results)
	second := ComputeStandings(twoTeams, []model.Matchday{md}, results)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("standings not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestComputeStandings_StableOnFullTie(t *testing.T) {
	// No results at all: every team ties on every criterion and the
	// table keeps input order.
	rows := ComputeStandings(twoTeams, nil, nil)
	if rows[0].TeamID != "A" || rows[1].TeamID != "B" {
		t.Errorf("full tie must keep input order, got %+v", rows)
	}
}
