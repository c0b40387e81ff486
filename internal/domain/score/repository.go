package score

import "context"

// Repository persists match scores. RecordBatch is all-or-nothing: it
// re-checks the match's completion state under exclusion, verifies every
// player exists, rejects duplicates for the match, inserts every entry
// and marks the match completed in one atomic unit. A failure leaves no
// new rows and the completion flag untouched.
type Repository interface {
	RecordBatch(ctx context.Context, matchID int64, entries []Entry) ([]Detailed, error)
	ListByMatch(ctx context.Context, matchID int64) ([]Detailed, error)
	ListByPlayer(ctx context.Context, playerID int64) ([]Detailed, error)
}
