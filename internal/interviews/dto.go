package interviews

import "time"

type proposalResponse struct {
	ID            string     `json:"id"`
	CandidateID   string     `json:"candidateId"`
	JobID         string     `json:"jobId"`
	Summary       string     `json:"summary"`
	Status        string     `json:"status"`
	SlotStart     *time.Time `json:"slotStart,omitempty"`
	SlotEnd       *time.Time `json:"slotEnd,omitempty"`
	EventRef      string     `json:"eventRef,omitempty"`
	MeetLink      string     `json:"meetLink,omitempty"`
	FailureReason string     `json:"failureReason,omitempty"`
	ExpiresAt     time.Time  `json:"expiresAt"`
	CreatedAt     time.Time  `json:"createdAt"`
	DecidedAt     *time.Time `json:"decidedAt,omitempty"`
}

func toProposalResponse(p Proposal) proposalResponse {
	return proposalResponse{
		ID:            p.ID,
		CandidateID:   p.CandidateID,
		JobID:         p.JobID,
		Summary:       p.Summary,
		Status:        string(p.Status),
		SlotStart:     p.SlotStart,
		SlotEnd:       p.SlotEnd,
		EventRef:      p.EventRef,
		MeetLink:      p.MeetLink,
		FailureReason: p.FailureReason,
		ExpiresAt:     p.ExpiresAt,
		CreatedAt:     p.CreatedAt,
		DecidedAt:     p.DecidedAt,
	}
}
