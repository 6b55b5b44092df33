package feedback

import "time"

// Entry is a single piece of HR feedback on a candidate. Entries are
// append-only and carry a snapshot of the automated score at recording time;
// they never feed back into scoring or the interview lifecycle.
type Entry struct {
	ID          string    `json:"id"`
	CandidateID string    `json:"candidateId"`
	JobID       string    `json:"jobId"`
	AgentScore  *float64  `json:"agentScore,omitempty"`
	HRScore     float64   `json:"hrScore"`
	Note        string    `json:"note,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
