package exams

import "time"

// Assignment statuses. An assignment accepts exactly one submission.
const (
	AssignmentPending   = "pending"
	AssignmentCompleted = "completed"
)

// Exam is a question set attached to a job.
type Exam struct {
	ID        string    `json:"id"`
	JobID     string    `json:"jobId"`
	Questions []string  `json:"questions"`
	CreatedAt time.Time `json:"createdAt"`
}

// Assignment links a candidate to an exam through an unguessable access
// token. The token is the only credential needed to take the exam.
type Assignment struct {
	ID          string     `json:"id"`
	CandidateID string     `json:"candidateId"`
	ExamID      string     `json:"examId"`
	AccessToken string     `json:"-"`
	Status      string     `json:"status"`
	Answers     []string   `json:"answers,omitempty"`
	SubmittedAt *time.Time `json:"submittedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}
