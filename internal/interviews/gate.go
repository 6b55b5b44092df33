package interviews

import (
	"context"
	"time"

	"github.com/google/uuid"

	"hiring-backend/internal/audit"
	"hiring-backend/internal/shared/metrics"
	"hiring-backend/internal/shared/telemetry"
)

// Service is the approval gate. Proposals enter through Propose and leave
// PENDING only through a human decision or TTL expiry. Approve hands the
// proposal to OnApproved exactly once; the repo's guarded transition is what
// makes "exactly once" hold under concurrent decisions.
type Service struct {
	Repo  Repo
	TTL   time.Duration
	Audit *audit.Recorder

	// OnApproved receives the proposal after a winning approval. Production
	// wiring dispatches the executor on a goroutine; tests run it inline.
	OnApproved func(p Proposal)

	now func() time.Time
}

// Propose creates a PENDING proposal for the candidate. A candidate with a
// non-terminal proposal cannot receive a second one.
func (s *Service) Propose(ctx context.Context, candidateID, jobID, summary string) (Proposal, error) {
	if _, err := s.Repo.FindActiveByCandidate(ctx, candidateID); err == nil {
		return Proposal{}, ErrActiveProposalExists
	}

	now := s.clock()()
	p := Proposal{
		ID:          uuid.NewString(),
		CandidateID: candidateID,
		JobID:       jobID,
		Summary:     summary,
		Status:      StatusPending,
		ExpiresAt:   now.Add(s.TTL),
		CreatedAt:   now,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return Proposal{}, err
	}

	metrics.IncProposalsCreated()
	s.Audit.Record(ctx, candidateID, jobID, "proposal_created", map[string]any{
		"proposal_id": p.ID,
		"expires_at":  p.ExpiresAt,
	})
	telemetry.Info("gate.proposal_created", map[string]any{
		"proposal_id":  p.ID,
		"candidate_id": candidateID,
	})
	return p, nil
}

// Get returns a proposal by id.
func (s *Service) Get(ctx context.Context, id string) (Proposal, error) {
	return s.Repo.GetByID(ctx, id)
}

// LatestForCandidate returns the candidate's most recent proposal.
func (s *Service) LatestForCandidate(ctx context.Context, candidateID string) (Proposal, error) {
	return s.Repo.FindLatestByCandidate(ctx, candidateID)
}

// ListPending returns the review queue, oldest first.
func (s *Service) ListPending(ctx context.Context) ([]Proposal, error) {
	return s.Repo.ListByStatus(ctx, StatusPending)
}

// Approve moves a PENDING proposal to APPROVED and dispatches the booking
// workflow. A proposal that already left PENDING returns ErrAlreadyDecided.
func (s *Service) Approve(ctx context.Context, id string) (Proposal, error) {
	decidedAt := s.clock()()
	p, err := s.Repo.TransitionStatus(ctx, id, StatusPending, StatusApproved, StatusUpdate{DecidedAt: &decidedAt})
	if err != nil {
		return Proposal{}, err
	}

	metrics.IncProposalsApproved()
	s.Audit.Record(ctx, p.CandidateID, p.JobID, "proposal_approved", map[string]any{
		"proposal_id": p.ID,
	})
	telemetry.Info("gate.proposal_approved", map[string]any{
		"proposal_id":  p.ID,
		"candidate_id": p.CandidateID,
	})

	if s.OnApproved != nil {
		s.OnApproved(p)
	}
	return p, nil
}

// Reject moves a PENDING proposal to REJECTED. Terminal, no workflow runs.
func (s *Service) Reject(ctx context.Context, id string) (Proposal, error) {
	decidedAt := s.clock()()
	p, err := s.Repo.TransitionStatus(ctx, id, StatusPending, StatusRejected, StatusUpdate{DecidedAt: &decidedAt})
	if err != nil {
		return Proposal{}, err
	}

	metrics.IncProposalsRejected()
	s.Audit.Record(ctx, p.CandidateID, p.JobID, "proposal_rejected", map[string]any{
		"proposal_id": p.ID,
	})
	telemetry.Info("gate.proposal_rejected", map[string]any{
		"proposal_id":  p.ID,
		"candidate_id": p.CandidateID,
	})
	return p, nil
}

// ExpireStale rejects pending proposals whose TTL elapsed. It uses the same
// guarded transition as a human rejection, so a concurrent approval always
// beats the reaper cleanly. Returns the number of proposals expired.
func (s *Service) ExpireStale(ctx context.Context, now time.Time) (int, error) {
	stale, err := s.Repo.ListExpired(ctx, now)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, p := range stale {
		update := StatusUpdate{FailureReason: ReasonExpired, DecidedAt: &now}
		if _, err := s.Repo.TransitionStatus(ctx, p.ID, StatusPending, StatusRejected, update); err != nil {
			// Lost the race to a decider between the list and the transition.
			telemetry.Info("gate.expire_skipped", map[string]any{
				"proposal_id": p.ID,
				"error":       err.Error(),
			})
			continue
		}
		expired++
		metrics.IncProposalsRejected()
		s.Audit.Record(ctx, p.CandidateID, p.JobID, "proposal_expired", map[string]any{
			"proposal_id": p.ID,
		})
	}
	return expired, nil
}

func (s *Service) clock() func() time.Time {
	if s.now != nil {
		return s.now
	}
	return func() time.Time { return time.Now().UTC() }
}
