package candidates

import (
	"time"

	"hiring-backend/internal/interviews"
)

type submitCandidateRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	ResumeText string `json:"resumeText" binding:"required"`
}

type candidateResponse struct {
	ID               string     `json:"id"`
	JobID            string     `json:"jobId"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	FitScore         *float64   `json:"fitScore,omitempty"`
	Decision         string     `json:"decision,omitempty"`
	EvaluationStatus string     `json:"evaluationStatus"`
	CreatedAt        time.Time  `json:"createdAt"`
}

type statusResponse struct {
	Candidate candidateResponse `json:"candidate"`
	Proposal  *proposalSummary  `json:"proposal,omitempty"`
}

type proposalSummary struct {
	ID            string     `json:"id"`
	Status        string     `json:"status"`
	SlotStart     *time.Time `json:"slotStart,omitempty"`
	SlotEnd       *time.Time `json:"slotEnd,omitempty"`
	MeetLink      string     `json:"meetLink,omitempty"`
	FailureReason string     `json:"failureReason,omitempty"`
	ExpiresAt     time.Time  `json:"expiresAt"`
}

func toCandidateResponse(c Candidate) candidateResponse {
	return candidateResponse{
		ID:               c.ID,
		JobID:            c.JobID,
		Name:             c.Name,
		Email:            c.Email,
		FitScore:         c.FitScore,
		Decision:         string(c.Decision),
		EvaluationStatus: c.EvaluationStatus,
		CreatedAt:        c.CreatedAt,
	}
}

func toStatusResponse(status CandidateStatus) statusResponse {
	resp := statusResponse{Candidate: toCandidateResponse(status.Candidate)}
	if status.Proposal != nil {
		resp.Proposal = toProposalSummary(*status.Proposal)
	}
	return resp
}

func toProposalSummary(p interviews.Proposal) *proposalSummary {
	return &proposalSummary{
		ID:            p.ID,
		Status:        string(p.Status),
		SlotStart:     p.SlotStart,
		SlotEnd:       p.SlotEnd,
		MeetLink:      p.MeetLink,
		FailureReason: p.FailureReason,
		ExpiresAt:     p.ExpiresAt,
	}
}
