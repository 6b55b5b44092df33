package candidates

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"hiring-backend/internal/audit"
	"hiring-backend/internal/embedding"
	"hiring-backend/internal/interviews"
	"hiring-backend/internal/jobs"
	"hiring-backend/internal/policy"
	"hiring-backend/internal/scoring"
	"hiring-backend/internal/shared/metrics"
	"hiring-backend/internal/shared/telemetry"
)

// ProposalGate is the slice of the interview gate the pipeline needs.
type ProposalGate interface {
	Propose(ctx context.Context, candidateID, jobID, summary string) (interviews.Proposal, error)
	LatestForCandidate(ctx context.Context, candidateID string) (interviews.Proposal, error)
}

// Service runs the evaluation pipeline: embed the resume, score it against
// the job, apply the decision policy, and hand auto-propose outcomes to the
// interview gate. Evaluation happens once per submission; it re-runs only
// through the explicit Evaluate call.
type Service struct {
	Repo     Repo
	Jobs     jobs.Repo
	Embedder embedding.Embedder
	Policy   policy.Config
	Gate     ProposalGate
	Audit    *audit.Recorder
}

// CandidateStatus is the aggregated view of a candidate and their latest
// interview proposal.
type CandidateStatus struct {
	Candidate Candidate
	Proposal  *interviews.Proposal
}

// Submit stores a new candidate and evaluates them against the job. When the
// embedding provider is unavailable the candidate is kept without a score in
// pending_evaluation; everything else about the submission succeeds.
func (s *Service) Submit(ctx context.Context, jobID, name, email, resumeText string) (Candidate, error) {
	job, err := s.Jobs.GetByID(ctx, jobID)
	if err != nil {
		return Candidate{}, err
	}

	resumeText = strings.TrimSpace(resumeText)
	if resumeText == "" {
		return Candidate{}, fmt.Errorf("resume text is empty")
	}

	c := Candidate{
		ID:               uuid.NewString(),
		JobID:            job.ID,
		Name:             strings.TrimSpace(name),
		Email:            strings.TrimSpace(email),
		ResumeText:       resumeText,
		EvaluationStatus: EvaluationPending,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return Candidate{}, fmt.Errorf("store candidate: %w", err)
	}

	evaluated, err := s.evaluate(ctx, c, job)
	if err != nil {
		if errors.Is(err, embedding.ErrUnavailable) {
			telemetry.Warn("candidates.evaluation_deferred", map[string]any{
				"candidate_id": c.ID,
				"job_id":       job.ID,
			})
			return c, nil
		}
		return Candidate{}, err
	}
	return evaluated, nil
}

// Evaluate re-runs the evaluation pipeline for a stored candidate. This is
// the only path that changes an existing score or decision.
func (s *Service) Evaluate(ctx context.Context, candidateID string) (Candidate, error) {
	c, err := s.Repo.GetByID(ctx, candidateID)
	if err != nil {
		return Candidate{}, err
	}
	job, err := s.Jobs.GetByID(ctx, c.JobID)
	if err != nil {
		return Candidate{}, err
	}
	return s.evaluate(ctx, c, job)
}

func (s *Service) evaluate(ctx context.Context, c Candidate, job jobs.Job) (Candidate, error) {
	vec, err := s.Embedder.Embed(ctx, c.ResumeText)
	if err != nil {
		return Candidate{}, fmt.Errorf("embed resume: %w", err)
	}

	score, err := scoring.Score(job.Embedding, vec)
	if err != nil {
		return Candidate{}, fmt.Errorf("score candidate %s: %w", c.ID, err)
	}
	decision := policy.Decide(s.Policy, score)

	c.Embedding = vec
	c.FitScore = &score
	c.Decision = decision
	c.EvaluationStatus = EvaluationDone
	if err := s.Repo.UpdateEvaluation(ctx, c); err != nil {
		return Candidate{}, fmt.Errorf("store evaluation: %w", err)
	}

	metrics.IncCandidatesScored()
	s.Audit.Record(ctx, c.ID, job.ID, "candidate_scored", map[string]any{
		"fit_score": score,
		"decision":  string(decision),
	})
	telemetry.Info("candidates.scored", map[string]any{
		"candidate_id": c.ID,
		"job_id":       job.ID,
		"fit_score":    score,
		"decision":     string(decision),
	})

	if decision == policy.AutoPropose {
		summary := "Interview: " + job.Title
		if _, err := s.Gate.Propose(ctx, c.ID, job.ID, summary); err != nil {
			// A still-active proposal from an earlier evaluation is fine;
			// anything else fails the evaluation so it can be re-run.
			if errors.Is(err, interviews.ErrActiveProposalExists) {
				telemetry.Info("candidates.proposal_already_active", map[string]any{
					"candidate_id": c.ID,
				})
			} else {
				return Candidate{}, fmt.Errorf("create proposal: %w", err)
			}
		}
	}
	return c, nil
}

// Get returns a candidate by id.
func (s *Service) Get(ctx context.Context, id string) (Candidate, error) {
	return s.Repo.GetByID(ctx, id)
}

// ListByJob returns candidates for a job.
func (s *Service) ListByJob(ctx context.Context, jobID string) ([]Candidate, error) {
	if _, err := s.Jobs.GetByID(ctx, jobID); err != nil {
		return nil, err
	}
	return s.Repo.ListByJob(ctx, jobID)
}

// Shortlist returns scored candidates at or above minScore, best first.
func (s *Service) Shortlist(ctx context.Context, jobID string, minScore float64) ([]Candidate, error) {
	all, err := s.ListByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	var out []Candidate
	for _, c := range all {
		if c.FitScore != nil && *c.FitScore >= minScore {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return *out[i].FitScore > *out[j].FitScore
	})
	return out, nil
}

// Status returns the candidate together with their latest proposal.
func (s *Service) Status(ctx context.Context, candidateID string) (CandidateStatus, error) {
	c, err := s.Repo.GetByID(ctx, candidateID)
	if err != nil {
		return CandidateStatus{}, err
	}

	status := CandidateStatus{Candidate: c}
	p, err := s.Gate.LatestForCandidate(ctx, candidateID)
	switch {
	case err == nil:
		status.Proposal = &p
	case errors.Is(err, interviews.ErrNotFound):
	default:
		return CandidateStatus{}, err
	}
	return status, nil
}

// Contact resolves a candidate into the identity the booking workflow needs.
func (s *Service) Contact(ctx context.Context, candidateID string) (interviews.Contact, error) {
	c, err := s.Repo.GetByID(ctx, candidateID)
	if err != nil {
		return interviews.Contact{}, err
	}
	return interviews.Contact{Name: c.Name, Email: c.Email}, nil
}
