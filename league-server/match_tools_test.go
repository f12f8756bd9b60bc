package main

import (
	"testing"

	"nuliga-league-mcp/internal/model"
	"nuliga-league-mcp/internal/store"
)

func testSnapshot() *store.Snapshot {
	return &store.Snapshot{
		Clubs: []model.Club{
			{ID: "c1", Name: "SV Rot-Gelb Sürth"},
			{ID: "c2", Name: "TC Rodenkirchen"},
		},
		Teams: []model.Team{
			{ID: "t1", ClubID: "c1", ClubName: "SV Rot-Gelb Sürth", TeamName: "1", Category: "Herren 40"},
			{ID: "t2", ClubID: "c1", ClubName: "SV Rot-Gelb Sürth", TeamName: "2", Category: "Herren 40"},
			{ID: "t3", ClubID: "c2", ClubName: "TC Rodenkirchen", TeamName: "1", Category: "Herren 40"},
		},
		TeamSeasons: []model.TeamSeason{
			{TeamID: "t1", Season: "Winter 2025/26", League: "2. Kreisklasse", GroupName: "43", TeamSize: 4, IsActive: true},
		},
		Players: []model.Player{
			{ID: "p1", Name: "Max Mustermann", CurrentLK: "13.5", ExternalID: "12345678"},
			{ID: "p2", Name: "Erika Musterfrau", CurrentLK: "18.2"},
		},
	}
}

func TestBuildMatchClub_Decisions(t *testing.T) {
	snap := testSnapshot()

	cases := []struct {
		name     string
		input    string
		wantID   string
		decision string
	}{
		{"exact", "SV Rot-Gelb Sürth", "c1", decisionAutoAccept},
		{"abbreviated", "RG Sürth", "c1", decisionConfirm},
		{"unknown", "Borussia Nordpark", "", decisionManual},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := buildMatchClub(snap, tc.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Decision != tc.decision {
				t.Errorf("decision: want %s, got %s (score %.2f)", tc.decision, res.Decision, res.Candidate.Score)
			}
			if tc.wantID != "" && (res.Candidate.Matched == nil || res.Candidate.Matched.ID != tc.wantID) {
				t.Errorf("matched: want %s, got %+v", tc.wantID, res.Candidate.Matched)
			}
		})
	}
}

func TestBuildMatchTeam_WithActiveSeason(t *testing.T) {
	snap := testSnapshot()

	res, err := buildMatchTeam(snap, "SV Rot-Gelb Sürth 1", "c1", "Herren 40")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Candidate.Matched == nil || res.Candidate.Matched.ID != "t1" {
		t.Fatalf("want t1, got %+v", res.Candidate.Matched)
	}
	if res.Decision != decisionAutoAccept {
		t.Errorf("decision: want auto_accept, got %s", res.Decision)
	}
	if res.ActiveSeason == nil || res.ActiveSeason.GroupName != "43" {
		t.Errorf("active season: want group 43, got %+v", res.ActiveSeason)
	}
}

func TestBuildMatchTeam_UnresolvedClub(t *testing.T) {
	res, err := buildMatchTeam(testSnapshot(), "1", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Candidate.Matched != nil || res.Decision != decisionManual {
		t.Errorf("unresolved club must force manual decision, got %+v", res)
	}
}

func TestBuildMatchPlayer_Exact(t *testing.T) {
	res, err := buildMatchPlayer(testSnapshot(), model.ImportedPlayer{
		Name: "Max Mustermann", LK: "13.5", IDNumber: "12345678",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.PlayerID != "p1" {
		t.Fatalf("want p1, got %+v", res)
	}
	if res.Confidence != 100 {
		t.Errorf("confidence: want 100, got %d", res.Confidence)
	}
}

func TestBuildClubLookup(t *testing.T) {
	res, err := buildClubLookup(testSnapshot(), "sürth")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Clubs) != 1 || res.Clubs[0].Club.ID != "c1" {
		t.Fatalf("want c1 only, got %+v", res.Clubs)
	}
	if len(res.Clubs[0].Teams) != 2 {
		t.Errorf("want 2 teams for c1, got %d", len(res.Clubs[0].Teams))
	}
}
