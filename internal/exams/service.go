package exams

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"

	"hiring-backend/internal/audit"
	"hiring-backend/internal/candidates"
	"hiring-backend/internal/jobs"
	"hiring-backend/internal/shared/telemetry"
)

// Service manages take-home exams and their candidate assignments.
type Service struct {
	Repo       Repo
	Jobs       jobs.Repo
	Candidates candidates.Repo
	Audit      *audit.Recorder
}

// ExamSheet is the candidate-facing view of an assignment.
type ExamSheet struct {
	AssignmentID string   `json:"assignmentId"`
	Status       string   `json:"status"`
	Questions    []string `json:"questions"`
}

// CreateExam attaches a question set to a job.
func (s *Service) CreateExam(ctx context.Context, jobID string, questions []string) (Exam, error) {
	if _, err := s.Jobs.GetByID(ctx, jobID); err != nil {
		return Exam{}, err
	}
	if len(questions) == 0 {
		return Exam{}, fmt.Errorf("at least one question is required")
	}

	exam := Exam{
		ID:        uuid.NewString(),
		JobID:     jobID,
		Questions: questions,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.CreateExam(ctx, exam); err != nil {
		return Exam{}, fmt.Errorf("store exam: %w", err)
	}
	return exam, nil
}

// Assign issues an access token for a candidate to take an exam.
func (s *Service) Assign(ctx context.Context, examID, candidateID string) (Assignment, error) {
	exam, err := s.Repo.GetExam(ctx, examID)
	if err != nil {
		return Assignment{}, err
	}
	if _, err := s.Candidates.GetByID(ctx, candidateID); err != nil {
		return Assignment{}, err
	}

	token, err := newAccessToken()
	if err != nil {
		return Assignment{}, err
	}
	a := Assignment{
		ID:          uuid.NewString(),
		CandidateID: candidateID,
		ExamID:      exam.ID,
		AccessToken: token,
		Status:      AssignmentPending,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Repo.CreateAssignment(ctx, a); err != nil {
		return Assignment{}, fmt.Errorf("store assignment: %w", err)
	}

	s.Audit.Record(ctx, candidateID, exam.JobID, "exam_assigned", map[string]any{
		"exam_id":       exam.ID,
		"assignment_id": a.ID,
	})
	return a, nil
}

// Fetch returns the question sheet for an access token.
func (s *Service) Fetch(ctx context.Context, token string) (ExamSheet, error) {
	a, err := s.Repo.GetAssignmentByToken(ctx, token)
	if err != nil {
		return ExamSheet{}, err
	}
	exam, err := s.Repo.GetExam(ctx, a.ExamID)
	if err != nil {
		return ExamSheet{}, err
	}
	return ExamSheet{
		AssignmentID: a.ID,
		Status:       a.Status,
		Questions:    exam.Questions,
	}, nil
}

// Submit records answers for a pending assignment. One shot.
func (s *Service) Submit(ctx context.Context, token string, answers []string) (Assignment, error) {
	a, err := s.Repo.Submit(ctx, token, answers)
	if err != nil {
		return Assignment{}, err
	}

	s.Audit.Record(ctx, a.CandidateID, "", "exam_submitted", map[string]any{
		"assignment_id": a.ID,
	})
	telemetry.Info("exams.submitted", map[string]any{
		"assignment_id": a.ID,
		"candidate_id":  a.CandidateID,
	})
	return a, nil
}

func newAccessToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
