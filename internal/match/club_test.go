package match

import (
	"testing"

	"nuliga-league-mcp/internal/model"
)

func clubs(names ...string) []model.Club {
	out := make([]model.Club, 0, len(names))
	for i, n := range names {
		out = append(out, model.Club{ID: string(rune('a' + i)), Name: n})
	}
	return out
}

func TestMatchClub_ExactNormalized(t *testing.T) {
	m := NewClubMatcher()
	c := m.MatchClub("  sv rot-gelb SÜRTH ", clubs("SV Rot-Gelb Sürth"))
	if c.Matched == nil || c.Score != 1.0 {
		t.Fatalf("want exact match score 1.0, got %+v", c)
	}
	if c.NeedsReview {
		t.Error("exact match must not need review")
	}
}

func TestMatchClub_SubstringEitherDirection(t *testing.T) {
	m := NewClubMatcher()

	c := m.MatchClub("VKC Köln", clubs("VKC Köln e.V."))
	if c.Matched == nil || c.Score < 0.90 {
		t.Fatalf("suffixed club should match with score >= 0.90, got %+v", c)
	}

	// Other direction: raw longer than the stored name.
	c = m.MatchClub("VKC Köln e.V. 1932", clubs("VKC Köln e.V."))
	if c.Matched == nil || c.Score != 0.95 {
		t.Fatalf("containment should score 0.95, got %+v", c)
	}
}

func TestMatchClub_AccentFoldedExact(t *testing.T) {
	m := NewClubMatcher()
	// Portal spelling without the umlaut still counts as exact.
	c := m.MatchClub("SV Rot-Gelb Surth", clubs("SV Rot-Gelb Sürth"))
	if c.Matched == nil || c.Score != 1.0 {
		t.Fatalf("folded spelling should match exactly, got %+v", c)
	}
	if c.NeedsReview {
		t.Error("folded exact match must not need review")
	}
}

func TestMatchClub_AccentFoldedSubstring(t *testing.T) {
	m := NewClubMatcher()
	c := m.MatchClub("VKC Koln", clubs("VKC Köln e.V."))
	if c.Matched == nil || c.Score != 0.95 {
		t.Fatalf("folded containment should score 0.95, got %+v", c)
	}
}

func TestMatchClub_AbbreviationExpansion(t *testing.T) {
	m := NewClubMatcher()
	c := m.MatchClub("RG Sürth", clubs("Rot-Gelb Sürth 1921"))
	if c.Matched == nil || c.Score != 0.92 {
		t.Fatalf("abbreviation expansion should score 0.92, got %+v", c)
	}
}

func TestMatchClub_SuffixStripping(t *testing.T) {
	m := NewClubMatcher()
	// "tc" and "sv" are both filler tokens, so the cleaned names agree
	// while neither raw name contains the other.
	c := m.MatchClub("TC Weiden 1909", clubs("SV Weiden 1909"))
	if c.Matched == nil || c.Score != 0.90 {
		t.Fatalf("suffix stripping should score 0.90, got %+v", c)
	}
}

func TestMatchClub_CityHeuristicRejectsDissimilarRemainders(t *testing.T) {
	m := NewClubMatcher()
	// Last tokens agree ("Sürth") but the remainders "tc" and "sv
	// rot-gelb" are dissimilar, so the city rule must not fire and the
	// fallback score stays well below auto-accept.
	c := m.MatchClub("TC Sürth", clubs("SV Rot-Gelb Sürth"))
	if c.Matched == nil {
		t.Fatal("fallback should still propose the best candidate")
	}
	if c.Score >= 0.95 {
		t.Errorf("dissimilar clubs must not auto-accept, score %v", c.Score)
	}
	if !c.NeedsReview {
		t.Error("low-confidence match must need review")
	}
}

func TestMatchClub_CityHeuristicBlendedScore(t *testing.T) {
	m := NewClubMatcher()
	// Same city, near-identical remainders that no earlier rule catches:
	// "ktc" vs "ktk" differ by one letter (sim 2/3 < 0.7 would fail, so
	// use longer remainders).
	c := m.MatchClub("Kölner THC Stadion Rodenkirchen", clubs("Kölner THC Stadium Rodenkirchen"))
	if c.Matched == nil {
		t.Fatal("expected a match")
	}
	if c.Score < 0.85 || c.Score > 0.95 {
		t.Errorf("city blend must land in [0.85, 0.95], got %v", c.Score)
	}
}

func TestMatchClub_FallbackRanksAlternatives(t *testing.T) {
	m := NewClubMatcher()
	pool := clubs("Blau-Gold Ehrenfeld", "Blau-Gold Ehrenfelde", "Marienburger SC", "Rodenkirchener TC", "Zollstocker TV")
	c := m.MatchClub("Blaugold Ehrenfald", pool)
	if c.Matched == nil {
		t.Fatal("expected a fallback match")
	}
	if len(c.Alternatives) != 3 {
		t.Fatalf("want 3 alternatives, got %d", len(c.Alternatives))
	}
	for _, alt := range c.Alternatives {
		if alt.Score > c.Score {
			t.Errorf("alternative %q (%v) outranks best (%v)", alt.Entity.Name, alt.Score, c.Score)
		}
	}
}

func TestMatchClub_EmptyInputs(t *testing.T) {
	m := NewClubMatcher()
	if c := m.MatchClub("", clubs("VKC Köln")); c.Matched != nil || !c.NeedsReview {
		t.Errorf("empty raw name: got %+v", c)
	}
	if c := m.MatchClub("VKC Köln", nil); c.Matched != nil || !c.NeedsReview {
		t.Errorf("empty snapshot: got %+v", c)
	}
}

func TestMatchClub_CustomAbbreviationTable(t *testing.T) {
	m := NewClubMatcher(WithAbbreviations(map[string]string{"kkh": "kölner kanu und hockey"}))
	c := m.MatchClub("KKH Club", clubs("Kölner Kanu und Hockey Club"))
	if c.Matched == nil || c.Score != 0.92 {
		t.Fatalf("custom abbreviation should expand, got %+v", c)
	}
}
