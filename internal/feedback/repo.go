package feedback

import "context"

// Repo defines persistence operations for feedback entries. Append-only.
type Repo interface {
	Append(ctx context.Context, entry Entry) error
	ListByCandidate(ctx context.Context, candidateID string) ([]Entry, error)
}
