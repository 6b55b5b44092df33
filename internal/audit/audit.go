// Package audit records pipeline actions for later review. Entries are
// append-only and recording is best-effort: a failed append never fails the
// calling workflow.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"hiring-backend/internal/shared/telemetry"
)

// Entry is a single audit record.
type Entry struct {
	ID          string         `json:"id"`
	CandidateID string         `json:"candidateId,omitempty"`
	JobID       string         `json:"jobId,omitempty"`
	Action      string         `json:"action"`
	Details     map[string]any `json:"details,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// Repo defines persistence operations for audit entries.
type Repo interface {
	Append(ctx context.Context, entry Entry) error
	ListByCandidate(ctx context.Context, candidateID string) ([]Entry, error)
}

// Recorder appends audit entries through a Repo.
type Recorder struct {
	Repo Repo
}

// Record appends an entry. Errors are logged, not returned.
func (r *Recorder) Record(ctx context.Context, candidateID, jobID, action string, details map[string]any) {
	if r == nil || r.Repo == nil {
		return
	}
	entry := Entry{
		ID:          uuid.NewString(),
		CandidateID: candidateID,
		JobID:       jobID,
		Action:      action,
		Details:     details,
		CreatedAt:   time.Now().UTC(),
	}
	if err := r.Repo.Append(ctx, entry); err != nil {
		telemetry.Error("audit.append_failed", map[string]any{
			"action":       action,
			"candidate_id": candidateID,
			"error":        err.Error(),
		})
	}
}
