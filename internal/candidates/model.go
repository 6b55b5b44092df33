package candidates

import (
	"time"

	"hiring-backend/internal/policy"
)

// Evaluation states. A candidate lands in pending_evaluation only when the
// embedding provider was unavailable at submission time.
const (
	EvaluationPending = "pending_evaluation"
	EvaluationDone    = "evaluated"
)

// Candidate is an applicant for a job. FitScore and Decision are set by the
// evaluation pipeline and never mutated by feedback.
type Candidate struct {
	ID               string          `json:"id"`
	JobID            string          `json:"jobId"`
	Name             string          `json:"name"`
	Email            string          `json:"email"`
	ResumeText       string          `json:"-"`
	Embedding        []float64       `json:"-"`
	FitScore         *float64        `json:"fitScore,omitempty"`
	Decision         policy.Decision `json:"decision,omitempty"`
	EvaluationStatus string          `json:"evaluationStatus"`
	CreatedAt        time.Time       `json:"createdAt"`
}
