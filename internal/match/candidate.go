// Package match resolves raw scraped or parsed names of clubs, teams, and
// players against an existing snapshot of canonical records. All matchers
// are pure: they read only their arguments and return a scored candidate;
// ambiguity is a value (NeedsReview), never an error.
package match

// Decision thresholds. At or above AutoAccept the caller may persist
// without confirmation; between Confirm and AutoAccept the match is
// pre-selected but shown for confirmation; below Confirm the caller must
// pick manually or create a new record.
const (
	AutoAcceptThreshold = 0.95
	ConfirmThreshold    = 0.85
)

// Alternative is one ranked non-best match offered for manual review.
type Alternative[T any] struct {
	Entity T       `json:"entity"`
	Score  float64 `json:"score"`
}

// Candidate is the outcome of a single matching call. Matched is nil when
// nothing cleared the fallback; NeedsReview is set whenever the score is
// below the auto-accept threshold or there is no match at all.
type Candidate[T any] struct {
	Raw          string           `json:"raw"`
	Matched      *T               `json:"matched,omitempty"`
	Score        float64          `json:"score"`
	Alternatives []Alternative[T] `json:"alternatives,omitempty"`
	NeedsReview  bool             `json:"needs_review"`
}

// finish applies the review policy and returns the candidate.
func finish[T any](c Candidate[T]) Candidate[T] {
	c.NeedsReview = c.Matched == nil || c.Score < AutoAcceptThreshold
	return c
}
