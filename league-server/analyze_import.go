package main

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"nuliga-league-mcp/internal/model"
	"nuliga-league-mcp/internal/review"
	"nuliga-league-mcp/internal/store"
)

func buildAnalyzeImport(snap *store.Snapshot, payload model.ParsedPayload) review.Result {
	return review.NewAnalyzer().AnalyzeParsedData(payload, snap.Clubs, snap.Teams, snap.TeamSeasons)
}

// QueuedReview is one flagged analyze result waiting for a human.
type QueuedReview struct {
	ID       string        `json:"id"`
	QueuedAt time.Time     `json:"queued_at"`
	ClubName string        `json:"club_name"`
	Result   review.Result `json:"result"`
}

// reviewQueue holds flagged results in memory until a reviewer drains
// them. The queue is advisory: restarting the server loses it, the
// canonical data in the store does not change until a review is confirmed.
type reviewQueue struct {
	mu      sync.Mutex
	pending []QueuedReview
}

func newReviewQueue() *reviewQueue {
	return &reviewQueue{}
}

func (q *reviewQueue) add(res review.Result) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, QueuedReview{
		ID:       uuid.NewString(),
		QueuedAt: time.Now().UTC(),
		ClubName: res.Club.Raw,
		Result:   res,
	})
}

func (q *reviewQueue) list(clear bool) []QueuedReview {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]QueuedReview, len(q.pending))
	copy(out, q.pending)
	if clear {
		q.pending = nil
	}
	return out
}
