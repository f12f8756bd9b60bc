package main

import (
	"nuliga-league-mcp/internal/match"
	"nuliga-league-mcp/internal/model"
	"nuliga-league-mcp/internal/store"
)

func buildMatchPlayer(snap *store.Snapshot, ip model.ImportedPlayer) (match.PlayerMatch, error) {
	return match.MatchPlayer(ip, snap.Players), nil
}
