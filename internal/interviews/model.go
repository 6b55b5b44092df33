package interviews

import "time"

// Status is the lifecycle state of an interview proposal.
type Status string

const (
	// StatusPending is the initial state, created by an auto-propose decision.
	StatusPending Status = "pending"
	// StatusApproved means HR accepted the proposal; booking has not run yet.
	StatusApproved Status = "approved"
	// StatusScheduled is terminal: calendar event and notification confirmed.
	StatusScheduled Status = "scheduled"
	// StatusRejected is terminal: HR declined, or the proposal expired.
	StatusRejected Status = "rejected"
	// StatusFailed is terminal: booking execution could not complete.
	StatusFailed Status = "failed"
)

// Terminal reports whether the status has no outgoing transitions.
func (s Status) Terminal() bool {
	switch s {
	case StatusScheduled, StatusRejected, StatusFailed:
		return true
	}
	return false
}

// Failure reasons recorded on terminal FAILED/REJECTED proposals.
const (
	ReasonNoAvailableSlot    = "NoAvailableSlot"
	ReasonBookingConflict    = "BookingConflict"
	ReasonBookingUnavailable = "BookingUnavailable"
	ReasonExpired            = "Expired"
)

// Proposal is an interview decision in progress. It is created only by the
// decision policy, mutated only through guarded lifecycle transitions, and
// never deleted.
type Proposal struct {
	ID            string     `json:"id"`
	CandidateID   string     `json:"candidateId"`
	JobID         string     `json:"jobId"`
	Summary       string     `json:"summary"`
	Status        Status     `json:"status"`
	SlotStart     *time.Time `json:"slotStart,omitempty"`
	SlotEnd       *time.Time `json:"slotEnd,omitempty"`
	EventRef      string     `json:"eventRef,omitempty"`
	MeetLink      string     `json:"meetLink,omitempty"`
	FailureReason string     `json:"failureReason,omitempty"`
	ExpiresAt     time.Time  `json:"expiresAt"`
	CreatedAt     time.Time  `json:"createdAt"`
	DecidedAt     *time.Time `json:"decidedAt,omitempty"`
}
