package interviews

import (
	"context"
	"time"
)

// StatusUpdate carries the fields set alongside a lifecycle transition.
// Nil/empty fields are left untouched.
type StatusUpdate struct {
	SlotStart     *time.Time
	SlotEnd       *time.Time
	EventRef      string
	MeetLink      string
	FailureReason string
	DecidedAt     *time.Time
}

// Repo defines persistence operations for interview proposals.
//
// TransitionStatus is the concurrency-critical operation: it must atomically
// verify the proposal is still in the expected source state and apply the
// transition, so that concurrent decisions on the same proposal resolve to
// exactly one winner. Losers receive ErrAlreadyDecided.
type Repo interface {
	Create(ctx context.Context, p Proposal) error
	GetByID(ctx context.Context, id string) (Proposal, error)
	ListByStatus(ctx context.Context, status Status) ([]Proposal, error)
	FindActiveByCandidate(ctx context.Context, candidateID string) (Proposal, error)
	FindLatestByCandidate(ctx context.Context, candidateID string) (Proposal, error)
	ListExpired(ctx context.Context, now time.Time) ([]Proposal, error)
	TransitionStatus(ctx context.Context, id string, from, to Status, update StatusUpdate) (Proposal, error)
}
