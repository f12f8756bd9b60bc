// Package store persists the canonical league data in SQLite and serves
// read-only snapshots to the matchers and the standings engine. Matching
// never talks to the database directly: callers load a Snapshot, run the
// pure computations, then write back confirmed entities.
package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"nuliga-league-mcp/internal/model"
	"nuliga-league-mcp/internal/normalize"
)

type LeagueDB struct {
	db *sql.DB
}

func NewLeagueDB(dbPath string) (*LeagueDB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ldb := &LeagueDB{db: db}
	if err := ldb.initDatabase(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return ldb, nil
}

func (db *LeagueDB) Close() error {
	return db.db.Close()
}

func (db *LeagueDB) initDatabase() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS clubs (
			id TEXT PRIMARY KEY,
			name TEXT,
			normalized_name TEXT,
			city TEXT,
			region TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS teams (
			id TEXT PRIMARY KEY,
			club_id TEXT,
			club_name TEXT,
			team_name TEXT,
			category TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (club_id, team_name, category),
			FOREIGN KEY (club_id) REFERENCES clubs (id)
		)`,
		`CREATE TABLE IF NOT EXISTS team_seasons (
			team_id TEXT,
			season TEXT,
			league TEXT,
			group_name TEXT,
			team_size INTEGER,
			is_active INTEGER,
			PRIMARY KEY (team_id, season, league, group_name),
			FOREIGN KEY (team_id) REFERENCES teams (id)
		)`,
		`CREATE TABLE IF NOT EXISTS players (
			id TEXT PRIMARY KEY,
			name TEXT,
			current_lk TEXT,
			external_id TEXT,
			player_type TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS matchdays (
			id TEXT PRIMARY KEY,
			home_team_id TEXT,
			away_team_id TEXT,
			match_date TEXT,
			status TEXT,
			home_score INTEGER,
			away_score INTEGER,
			league TEXT,
			group_name TEXT,
			season TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS match_results (
			matchday_id TEXT,
			match_type TEXT,
			home_player TEXT,
			guest_player TEXT,
			set1_home INTEGER, set1_guest INTEGER,
			set2_home INTEGER, set2_guest INTEGER,
			set3_home INTEGER, set3_guest INTEGER,
			winner TEXT,
			status TEXT,
			PRIMARY KEY (matchday_id, match_type, home_player, guest_player),
			FOREIGN KEY (matchday_id) REFERENCES matchdays (id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_clubs_normalized ON clubs (normalized_name)`,
		`CREATE INDEX IF NOT EXISTS idx_teams_club ON teams (club_id)`,
		`CREATE INDEX IF NOT EXISTS idx_players_name ON players (name)`,
		`CREATE INDEX IF NOT EXISTS idx_players_external ON players (external_id)`,
		`CREATE INDEX IF NOT EXISTS idx_matchdays_teams ON matchdays (home_team_id, away_team_id)`,
		`CREATE INDEX IF NOT EXISTS idx_matchdays_group ON matchdays (league, group_name, season)`,
	}
	for _, q := range queries {
		if _, err := db.db.Exec(q); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// Snapshot is a full read-only copy of the canonical data, loaded once
// per matching or standings run so the pure engines stay deterministic.
type Snapshot struct {
	Clubs       []model.Club
	Teams       []model.Team
	TeamSeasons []model.TeamSeason
	Players     []model.Player
	Matchdays   []model.Matchday
	Results     []model.MatchResult
}

// Snapshot loads every entity table. Rows come back in insertion order
// (rowid) so repeated loads feed the engines identical input order.
func (db *LeagueDB) Snapshot() (*Snapshot, error) {
	s := &Snapshot{}
	var err error
	if s.Clubs, err = db.AllClubs(); err != nil {
		return nil, err
	}
	if s.Teams, err = db.AllTeams(); err != nil {
		return nil, err
	}
	if s.TeamSeasons, err = db.AllTeamSeasons(); err != nil {
		return nil, err
	}
	if s.Players, err = db.AllPlayers(); err != nil {
		return nil, err
	}
	if s.Matchdays, err = db.AllMatchdays(); err != nil {
		return nil, err
	}
	if s.Results, err = db.AllResults(); err != nil {
		return nil, err
	}
	return s, nil
}

func (db *LeagueDB) AllClubs() ([]model.Club, error) {
	rows, err := db.db.Query(`SELECT id, name, normalized_name, city, region FROM clubs ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query clubs: %w", err)
	}
	defer rows.Close()

	var clubs []model.Club
	for rows.Next() {
		var c model.Club
		if err := rows.Scan(&c.ID, &c.Name, &c.NormalizedName, &c.City, &c.Region); err != nil {
			return nil, err
		}
		clubs = append(clubs, c)
	}
	return clubs, rows.Err()
}

func (db *LeagueDB) AllTeams() ([]model.Team, error) {
	rows, err := db.db.Query(`SELECT id, club_id, club_name, team_name, category FROM teams ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	var teams []model.Team
	for rows.Next() {
		var t model.Team
		if err := rows.Scan(&t.ID, &t.ClubID, &t.ClubName, &t.TeamName, &t.Category); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (db *LeagueDB) AllTeamSeasons() ([]model.TeamSeason, error) {
	rows, err := db.db.Query(`SELECT team_id, season, league, group_name, team_size, is_active FROM team_seasons ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query team seasons: %w", err)
	}
	defer rows.Close()

	var seasons []model.TeamSeason
	for rows.Next() {
		var s model.TeamSeason
		if err := rows.Scan(&s.TeamID, &s.Season, &s.League, &s.GroupName, &s.TeamSize, &s.IsActive); err != nil {
			return nil, err
		}
		seasons = append(seasons, s)
	}
	return seasons, rows.Err()
}

func (db *LeagueDB) AllPlayers() ([]model.Player, error) {
	rows, err := db.db.Query(`SELECT id, name, current_lk, external_id, player_type FROM players ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	var players []model.Player
	for rows.Next() {
		var p model.Player
		if err := rows.Scan(&p.ID, &p.Name, &p.CurrentLK, &p.ExternalID, &p.Type); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (db *LeagueDB) AllMatchdays() ([]model.Matchday, error) {
	rows, err := db.db.Query(`SELECT id, home_team_id, away_team_id, match_date, status, home_score, away_score, league, group_name, season FROM matchdays ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query matchdays: %w", err)
	}
	defer rows.Close()

	var matchdays []model.Matchday
	for rows.Next() {
		var m model.Matchday
		if err := rows.Scan(&m.ID, &m.HomeTeamID, &m.AwayTeamID, &m.MatchDate, &m.Status,
			&m.HomeScore, &m.AwayScore, &m.League, &m.GroupName, &m.Season); err != nil {
			return nil, err
		}
		matchdays = append(matchdays, m)
	}
	return matchdays, rows.Err()
}

func (db *LeagueDB) AllResults() ([]model.MatchResult, error) {
	rows, err := db.db.Query(`SELECT matchday_id, match_type, home_player, guest_player,
		set1_home, set1_guest, set2_home, set2_guest, set3_home, set3_guest,
		winner, status FROM match_results ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var results []model.MatchResult
	for rows.Next() {
		var r model.MatchResult
		if err := rows.Scan(&r.MatchdayID, &r.MatchType, &r.HomePlayer, &r.GuestPlayer,
			&r.Set1Home, &r.Set1Guest, &r.Set2Home, &r.Set2Guest, &r.Set3Home, &r.Set3Guest,
			&r.Winner, &r.Status); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// CreateClub inserts a new club with a fresh ID and a precomputed
// normalized name. Used when a review resolves a candidate as "new".
func (db *LeagueDB) CreateClub(name, city, region string) (model.Club, error) {
	c := model.Club{
		ID:             uuid.NewString(),
		Name:           name,
		NormalizedName: normalize.Normalize(name),
		City:           city,
		Region:         region,
	}
	return c, db.UpsertClub(c)
}

func (db *LeagueDB) UpsertClub(c model.Club) error {
	_, err := db.db.Exec(`
		INSERT OR REPLACE INTO clubs (id, name, normalized_name, city, region, updated_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		c.ID, c.Name, c.NormalizedName, c.City, c.Region)
	return err
}

// CreateTeam inserts a new team with a fresh ID under an existing club.
func (db *LeagueDB) CreateTeam(clubID, clubName, teamName, category string) (model.Team, error) {
	t := model.Team{
		ID:       uuid.NewString(),
		ClubID:   clubID,
		ClubName: clubName,
		TeamName: teamName,
		Category: category,
	}
	return t, db.UpsertTeam(t)
}

func (db *LeagueDB) UpsertTeam(t model.Team) error {
	_, err := db.db.Exec(`
		INSERT OR REPLACE INTO teams (id, club_id, club_name, team_name, category, updated_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		t.ID, t.ClubID, t.ClubName, t.TeamName, t.Category)
	return err
}

func (db *LeagueDB) UpsertTeamSeason(s model.TeamSeason) error {
	_, err := db.db.Exec(`
		INSERT OR REPLACE INTO team_seasons (team_id, season, league, group_name, team_size, is_active)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.TeamID, s.Season, s.League, s.GroupName, s.TeamSize, s.IsActive)
	return err
}

// CreatePlayer inserts a player from an import row that matched nothing.
func (db *LeagueDB) CreatePlayer(ip model.ImportedPlayer, typ model.PlayerType) (model.Player, error) {
	p := model.Player{
		ID:         uuid.NewString(),
		Name:       ip.Name,
		CurrentLK:  ip.LK,
		ExternalID: ip.IDNumber,
		Type:       typ,
	}
	return p, db.UpsertPlayer(p)
}

func (db *LeagueDB) UpsertPlayer(p model.Player) error {
	_, err := db.db.Exec(`
		INSERT OR REPLACE INTO players (id, name, current_lk, external_id, player_type, updated_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		p.ID, p.Name, p.CurrentLK, p.ExternalID, p.Type)
	return err
}

func (db *LeagueDB) UpsertMatchday(m model.Matchday) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	_, err := db.db.Exec(`
		INSERT OR REPLACE INTO matchdays (id, home_team_id, away_team_id, match_date, status,
			home_score, away_score, league, group_name, season, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		m.ID, m.HomeTeamID, m.AwayTeamID, m.MatchDate, m.Status,
		m.HomeScore, m.AwayScore, m.League, m.GroupName, m.Season)
	return err
}

func (db *LeagueDB) UpsertResult(r model.MatchResult) error {
	_, err := db.db.Exec(`
		INSERT OR REPLACE INTO match_results (matchday_id, match_type, home_player, guest_player,
			set1_home, set1_guest, set2_home, set2_guest, set3_home, set3_guest, winner, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.MatchdayID, r.MatchType, r.HomePlayer, r.GuestPlayer,
		r.Set1Home, r.Set1Guest, r.Set2Home, r.Set2Guest, r.Set3Home, r.Set3Guest,
		r.Winner, r.Status)
	return err
}

// MatchdaysForGroup returns the fixtures of one league group in a season,
// the unit the standings engine aggregates over.
func (db *LeagueDB) MatchdaysForGroup(league, groupName, season string) ([]model.Matchday, error) {
	rows, err := db.db.Query(`SELECT id, home_team_id, away_team_id, match_date, status,
		home_score, away_score, league, group_name, season
		FROM matchdays WHERE league = ? AND group_name = ? AND season = ? ORDER BY rowid`,
		league, groupName, season)
	if err != nil {
		return nil, fmt.Errorf("failed to query matchdays: %w", err)
	}
	defer rows.Close()

	var matchdays []model.Matchday
	for rows.Next() {
		var m model.Matchday
		if err := rows.Scan(&m.ID, &m.HomeTeamID, &m.AwayTeamID, &m.MatchDate, &m.Status,
			&m.HomeScore, &m.AwayScore, &m.League, &m.GroupName, &m.Season); err != nil {
			return nil, err
		}
		matchdays = append(matchdays, m)
	}
	return matchdays, rows.Err()
}
