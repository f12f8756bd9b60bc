package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nuliga-league-mcp/internal/model"
)

func tmpDB(t *testing.T) *LeagueDB {
	t.Helper()
	db, err := NewLeagueDB(filepath.Join(t.TempDir(), "league.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCreateClubAssignsIDAndNormalizedName(t *testing.T) {
	db := tmpDB(t)

	c, err := db.CreateClub("SV  Rot-Gelb Sürth", "Köln", "Mittelrhein")
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "sv rot-gelb sürth", c.NormalizedName)

	clubs, err := db.AllClubs()
	require.NoError(t, err)
	require.Len(t, clubs, 1)
	assert.Equal(t, c, clubs[0])
}

func TestUpsertClubReplacesExisting(t *testing.T) {
	db := tmpDB(t)

	c, err := db.CreateClub("TC Weiden", "Köln", "")
	require.NoError(t, err)

	c.City = "Köln-Weiden"
	require.NoError(t, db.UpsertClub(c))

	clubs, err := db.AllClubs()
	require.NoError(t, err)
	require.Len(t, clubs, 1)
	assert.Equal(t, "Köln-Weiden", clubs[0].City)
}

func TestSnapshotRoundTrip(t *testing.T) {
	db := tmpDB(t)

	club, err := db.CreateClub("SV Sürth", "Köln", "")
	require.NoError(t, err)
	team, err := db.CreateTeam(club.ID, club.Name, "1", "Herren 40")
	require.NoError(t, err)
	require.NoError(t, db.UpsertTeamSeason(model.TeamSeason{
		TeamID: team.ID, Season: "Winter 2025/26", League: "2. Kreisklasse",
		GroupName: "43", TeamSize: 4, IsActive: true,
	}))
	player, err := db.CreatePlayer(model.ImportedPlayer{
		Name: "Max Mustermann", LK: "13.5", IDNumber: "12345678",
	}, model.PlayerTypeExternal)
	require.NoError(t, err)

	md := model.Matchday{
		ID: "md-1", HomeTeamID: team.ID, AwayTeamID: "t-away",
		Status: model.MatchdayCompleted, League: "2. Kreisklasse",
		GroupName: "43", Season: "Winter 2025/26",
	}
	require.NoError(t, db.UpsertMatchday(md))
	require.NoError(t, db.UpsertResult(model.MatchResult{
		MatchdayID: "md-1", MatchType: model.MatchTypeEinzel,
		HomePlayer: "Max Mustermann", GuestPlayer: "Erika Musterfrau",
		Set1Home: 6, Set1Guest: 2, Set2Home: 6, Set2Guest: 3,
		Winner: "home", Status: "completed",
	}))

	s, err := db.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, []model.Club{club}, s.Clubs)
	assert.Equal(t, []model.Team{team}, s.Teams)
	require.Len(t, s.TeamSeasons, 1)
	assert.True(t, s.TeamSeasons[0].IsActive)
	assert.Equal(t, []model.Player{player}, s.Players)
	assert.Equal(t, []model.Matchday{md}, s.Matchdays)
	require.Len(t, s.Results, 1)
	assert.Equal(t, "home", s.Results[0].Winner)
}

func TestUpsertResultIdempotent(t *testing.T) {
	db := tmpDB(t)

	r := model.MatchResult{
		MatchdayID: "md-1", MatchType: model.MatchTypeEinzel,
		HomePlayer: "A", GuestPlayer: "B",
		Set1Home: 6, Set1Guest: 4, Winner: "home", Status: "completed",
	}
	require.NoError(t, db.UpsertResult(r))
	// Re-import of the same rubber with a corrected score replaces the row.
	r.Set1Guest = 3
	require.NoError(t, db.UpsertResult(r))

	results, err := db.AllResults()
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 3, results[0].Set1Guest)
}

func TestMatchdaysForGroup(t *testing.T) {
	db := tmpDB(t)

	in := model.Matchday{ID: "md-1", League: "2. Kreisklasse", GroupName: "43", Season: "Winter 2025/26"}
	out := model.Matchday{ID: "md-2", League: "2. Kreisklasse", GroupName: "44", Season: "Winter 2025/26"}
	require.NoError(t, db.UpsertMatchday(in))
	require.NoError(t, db.UpsertMatchday(out))

	got, err := db.MatchdaysForGroup("2. Kreisklasse", "43", "Winter 2025/26")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "md-1", got[0].ID)
}
