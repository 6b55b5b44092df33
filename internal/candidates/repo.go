package candidates

import "context"

// Repo defines persistence operations for candidates.
type Repo interface {
	Create(ctx context.Context, c Candidate) error
	GetByID(ctx context.Context, id string) (Candidate, error)
	ListByJob(ctx context.Context, jobID string) ([]Candidate, error)
	UpdateEvaluation(ctx context.Context, c Candidate) error
}
