package match

import (
	"math"
	"sort"

	"nuliga-league-mcp/internal/model"
	"nuliga-league-mcp/internal/normalize"
)

// PlayerMatchStatus classifies the outcome of a player match.
type PlayerMatchStatus string

const (
	PlayerMatchExact PlayerMatchStatus = "exact"
	PlayerMatchFuzzy PlayerMatchStatus = "fuzzy"
	PlayerMatchNew   PlayerMatchStatus = "new"
)

// PlayerMatchType names the cascade rule that produced a match, strongest
// signal first.
type PlayerMatchType string

const (
	MatchNameLKTVM PlayerMatchType = "name_lk_tvm" // name + rank + federation ID
	MatchNameTVM   PlayerMatchType = "name_tvm"    // name + federation ID
	MatchNameLK    PlayerMatchType = "name_lk"     // name + rank
	MatchTVMOnly   PlayerMatchType = "tvm_only"    // federation ID only
	MatchNameOnly  PlayerMatchType = "name_only"   // exact name only
	MatchFuzzyName PlayerMatchType = "fuzzy_name"  // similarity > 0.7
)

// PlayerMatch is the result of resolving one imported player row.
// Confidence is on a 0–100 scale like the upstream import UI expects.
type PlayerMatch struct {
	Status       PlayerMatchStatus           `json:"status"`
	PlayerID     string                      `json:"player_id,omitempty"`
	Confidence   int                         `json:"confidence"`
	MatchType    PlayerMatchType             `json:"match_type,omitempty"`
	Warning      string                      `json:"warning,omitempty"`
	Alternatives []Alternative[model.Player] `json:"alternatives,omitempty"`
}

// fuzzyNameThreshold is the minimum similarity for a fuzzy name match and
// for federation-ID disambiguation.
const fuzzyNameThreshold = 0.7

// MatchPlayer resolves an imported player against existing candidates
// through a strict priority cascade. Identifier rules outrank name rules,
// but a federation ID shared by several records is disambiguated by name
// similarity instead of trusted blindly — upstream data duplicates IDs.
func MatchPlayer(imported model.ImportedPlayer, existing []model.Player) PlayerMatch {
	name := normalize.Normalize(imported.Name)

	// A federation ID held by more than one record is an ambiguous
	// signal: the combined ID rules below step aside and the
	// disambiguation sub-cascade of rule 4 decides instead.
	var shared []int
	if imported.IDNumber != "" {
		for i := range existing {
			if existing[i].ExternalID == imported.IDNumber {
				shared = append(shared, i)
			}
		}
	}
	idUnique := len(shared) <= 1

	// 1. Name + rank + federation ID.
	if name != "" && imported.LK != "" && imported.IDNumber != "" && idUnique {
		for i := range existing {
			if sameName(name, existing[i]) && existing[i].CurrentLK == imported.LK && existing[i].ExternalID == imported.IDNumber {
				return PlayerMatch{Status: PlayerMatchExact, PlayerID: existing[i].ID, Confidence: 100, MatchType: MatchNameLKTVM}
			}
		}
	}

	// 2. Name + federation ID, rank ignored.
	if name != "" && imported.IDNumber != "" && idUnique {
		for i := range existing {
			if sameName(name, existing[i]) && existing[i].ExternalID == imported.IDNumber {
				return PlayerMatch{Status: PlayerMatchExact, PlayerID: existing[i].ID, Confidence: 95, MatchType: MatchNameTVM}
			}
		}
	}

	// 3. Name + rank, ID ignored.
	if name != "" && imported.LK != "" {
		for i := range existing {
			if sameName(name, existing[i]) && existing[i].CurrentLK == imported.LK {
				return PlayerMatch{Status: PlayerMatchExact, PlayerID: existing[i].ID, Confidence: 90, MatchType: MatchNameLK}
			}
		}
	}

	// 4. Federation ID only, with duplicate disambiguation.
	if imported.IDNumber != "" {
		switch {
		case len(shared) == 1:
			return PlayerMatch{Status: PlayerMatchExact, PlayerID: existing[shared[0]].ID, Confidence: 85, MatchType: MatchTVMOnly}
		case len(shared) > 1:
			best, bestSim := -1, fuzzyNameThreshold
			for _, i := range shared {
				if sim := normalize.Similarity(imported.Name, existing[i].Name); sim > bestSim {
					best, bestSim = i, sim
				}
			}
			if best >= 0 {
				return PlayerMatch{
					Status: PlayerMatchExact, PlayerID: existing[best].ID, Confidence: 85, MatchType: MatchTVMOnly,
					Warning: "federation ID shared by multiple players; resolved by name similarity",
				}
			}
			return PlayerMatch{
				Status: PlayerMatchExact, PlayerID: existing[shared[0]].ID, Confidence: 75, MatchType: MatchTVMOnly,
				Warning: "federation ID shared by multiple players; possible duplicate records",
			}
		}
	}

	// 5. Exact name only.
	if name != "" {
		for i := range existing {
			if sameName(name, existing[i]) {
				return PlayerMatch{Status: PlayerMatchExact, PlayerID: existing[i].ID, Confidence: 80, MatchType: MatchNameOnly}
			}
		}
	}

	// 6. Fuzzy name across all candidates.
	if name != "" {
		type scored struct {
			idx int
			sim float64
		}
		var ranked []scored
		for i := range existing {
			if sim := normalize.Similarity(imported.Name, existing[i].Name); sim > fuzzyNameThreshold {
				ranked = append(ranked, scored{i, sim})
			}
		}
		if len(ranked) > 0 {
			sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].sim > ranked[j].sim })
			m := PlayerMatch{
				Status:     PlayerMatchFuzzy,
				PlayerID:   existing[ranked[0].idx].ID,
				Confidence: int(math.Round(ranked[0].sim * 100)),
				MatchType:  MatchFuzzyName,
			}
			for _, r := range ranked[1:] {
				if len(m.Alternatives) == 2 {
					break
				}
				m.Alternatives = append(m.Alternatives, Alternative[model.Player]{Entity: existing[r.idx], Score: r.sim})
			}
			return m
		}
	}

	// 7. Nothing matched.
	return PlayerMatch{Status: PlayerMatchNew, Confidence: 0}
}

func sameName(normalized string, p model.Player) bool {
	return normalized != "" && normalize.Normalize(p.Name) == normalized
}
