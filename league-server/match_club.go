package main

import (
	"nuliga-league-mcp/internal/match"
	"nuliga-league-mcp/internal/model"
	"nuliga-league-mcp/internal/store"
)

// Decision values derived from the confidence thresholds.
const (
	decisionAutoAccept = "auto_accept"
	decisionConfirm    = "confirm"
	decisionManual     = "manual"
)

type MatchClubResult struct {
	Candidate match.Candidate[model.Club] `json:"candidate"`
	Decision  string                      `json:"decision"`
}

func buildMatchClub(snap *store.Snapshot, name string) (MatchClubResult, error) {
	cand := match.NewClubMatcher().MatchClub(name, snap.Clubs)
	return MatchClubResult{
		Candidate: cand,
		Decision:  decisionFor(cand.Matched != nil, cand.Score),
	}, nil
}

// decisionFor maps a candidate's score onto the import workflow: persist
// directly, pre-select and ask, or hand over to manual search.
func decisionFor(matched bool, score float64) string {
	switch {
	case matched && score >= match.AutoAcceptThreshold:
		return decisionAutoAccept
	case matched && score >= match.ConfirmThreshold:
		return decisionConfirm
	default:
		return decisionManual
	}
}
