package feedback

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"hiring-backend/internal/audit"
	"hiring-backend/internal/candidates"
	"hiring-backend/internal/shared/telemetry"
)

// Service records HR feedback. Recording is strictly append-only: it never
// touches the candidate's stored score, decision, or any proposal.
type Service struct {
	Repo       Repo
	Candidates candidates.Repo
	Audit      *audit.Recorder
}

// Record validates and appends a feedback entry for an existing candidate.
func (s *Service) Record(ctx context.Context, candidateID string, hrScore float64, note string) (Entry, error) {
	if hrScore < 0 || hrScore > 1 {
		return Entry{}, ErrInvalidScore
	}

	c, err := s.Candidates.GetByID(ctx, candidateID)
	if err != nil {
		if errors.Is(err, candidates.ErrNotFound) {
			return Entry{}, ErrUnknownCandidate
		}
		return Entry{}, fmt.Errorf("fetch candidate: %w", err)
	}

	entry := Entry{
		ID:          uuid.NewString(),
		CandidateID: c.ID,
		JobID:       c.JobID,
		AgentScore:  c.FitScore,
		HRScore:     hrScore,
		Note:        strings.TrimSpace(note),
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Repo.Append(ctx, entry); err != nil {
		return Entry{}, fmt.Errorf("store feedback: %w", err)
	}

	s.Audit.Record(ctx, c.ID, c.JobID, "feedback_recorded", map[string]any{
		"hr_score": hrScore,
	})
	telemetry.Info("feedback.recorded", map[string]any{
		"candidate_id": c.ID,
		"hr_score":     hrScore,
	})
	return entry, nil
}

// ListByCandidate returns all feedback for a candidate.
func (s *Service) ListByCandidate(ctx context.Context, candidateID string) ([]Entry, error) {
	return s.Repo.ListByCandidate(ctx, candidateID)
}
