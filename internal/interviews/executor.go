package interviews

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hiring-backend/internal/audit"
	"hiring-backend/internal/calendar"
	"hiring-backend/internal/notify"
	"hiring-backend/internal/shared/metrics"
	"hiring-backend/internal/shared/telemetry"
)

// ExecConfig controls slot selection and retry behavior for the executor.
// It is passed in explicitly so the executor stays testable with varied
// configurations.
type ExecConfig struct {
	InterviewDuration time.Duration
	MinNotice         time.Duration
	SearchWindow      time.Duration
	WorkDayStartHour  int
	WorkDayEndHour    int
	SlotRetryMax      int
	BookingRetryMax   int
	NotifyRetryMax    int
	RetryBaseDelay    time.Duration
}

// Contact is the candidate identity needed for booking and notification.
type Contact struct {
	Name  string
	Email string
}

// ContactDirectory resolves a candidate id to a bookable contact.
type ContactDirectory interface {
	Contact(ctx context.Context, candidateID string) (Contact, error)
}

// Executor turns an approved proposal into a booked meeting and a
// notification. It never holds the proposal's transition lock across
// external calls: the gate already moved the proposal to APPROVED, the
// executor performs the slow work, then applies a second guarded transition
// to SCHEDULED or FAILED.
type Executor struct {
	Repo      Repo
	Calendar  calendar.Tool
	Messenger notify.Messenger
	Contacts  ContactDirectory
	Config    ExecConfig
	Audit     *audit.Recorder

	now func() time.Time
}

// Execute runs the booking workflow for an approved proposal. Every path
// ends in a guarded terminal transition; a transition conflict (the proposal
// was rejected or expired mid-flight) is treated as a no-op, with any
// already-created booking logged for manual reconciliation.
func (e *Executor) Execute(ctx context.Context, p Proposal) {
	started := e.clock()()
	defer func() {
		metrics.ObserveExecutorDurationMs(float64(time.Since(started).Milliseconds()))
	}()

	slot, ok := e.selectSlot(ctx, p)
	if !ok {
		e.fail(ctx, p, ReasonNoAvailableSlot)
		return
	}

	contact, err := e.Contacts.Contact(ctx, p.CandidateID)
	if err != nil {
		telemetry.Error("executor.contact_unresolved", map[string]any{
			"proposal_id":  p.ID,
			"candidate_id": p.CandidateID,
			"error":        err.Error(),
		})
		e.fail(ctx, p, ReasonBookingUnavailable)
		return
	}

	booking, err := e.book(ctx, p, slot, contact)
	if err != nil {
		reason := ReasonBookingUnavailable
		if errors.Is(err, calendar.ErrBookingConflict) {
			reason = ReasonBookingConflict
		}
		telemetry.Error("executor.booking_failed", map[string]any{
			"proposal_id": p.ID,
			"reason":      reason,
			"error":       err.Error(),
		})
		e.fail(ctx, p, reason)
		return
	}

	// Notification is a best-effort side channel: the meeting exists once
	// booking succeeded, so a notification failure must not undo SCHEDULED.
	if err := e.notifyCandidate(ctx, p, slot, booking, contact); err != nil {
		telemetry.Error("executor.notification_failed", map[string]any{
			"proposal_id":  p.ID,
			"candidate_id": p.CandidateID,
			"event_ref":    booking.EventRef,
			"error":        err.Error(),
			"action":       "manual follow-up required",
		})
	}

	e.schedule(ctx, p, slot, booking)
}

func (e *Executor) selectSlot(ctx context.Context, p Proposal) (calendar.Slot, bool) {
	if p.SlotStart != nil && p.SlotEnd != nil {
		return calendar.Slot{Start: *p.SlotStart, End: *p.SlotEnd}, true
	}

	earliest := e.clock()().Add(e.Config.MinNotice)
	window := calendar.Window{
		From:     earliest,
		To:       earliest.Add(e.Config.SearchWindow),
		Duration: e.Config.InterviewDuration,
	}

	var slots []calendar.Slot
	err := withRetry(ctx, e.Config.SlotRetryMax, e.Config.RetryBaseDelay, nil, func() error {
		var opErr error
		slots, opErr = e.Calendar.FindAvailableSlots(ctx, window)
		return opErr
	})
	if err != nil {
		telemetry.Error("executor.slot_search_failed", map[string]any{
			"proposal_id": p.ID,
			"error":       err.Error(),
		})
		return calendar.Slot{}, false
	}

	for _, slot := range slots {
		if slot.Start.Before(earliest) {
			continue
		}
		if e.withinWorkingHours(slot) {
			return slot, true
		}
	}
	return calendar.Slot{}, false
}

func (e *Executor) withinWorkingHours(slot calendar.Slot) bool {
	start := slot.Start.UTC()
	end := slot.End.UTC()
	if start.Hour() < e.Config.WorkDayStartHour {
		return false
	}
	dayEnd := time.Date(start.Year(), start.Month(), start.Day(), e.Config.WorkDayEndHour, 0, 0, 0, time.UTC)
	return !end.After(dayEnd)
}

func (e *Executor) book(ctx context.Context, p Proposal, slot calendar.Slot, contact Contact) (calendar.Booking, error) {
	var booking calendar.Booking
	retryable := func(err error) bool {
		// A conflict will not resolve by retrying the same slot.
		return !errors.Is(err, calendar.ErrBookingConflict)
	}
	err := withRetry(ctx, e.Config.BookingRetryMax, e.Config.RetryBaseDelay, retryable, func() error {
		var opErr error
		booking, opErr = e.Calendar.BookSlot(ctx, slot, p.Summary, calendar.Attendee{
			Name:  contact.Name,
			Email: contact.Email,
		})
		return opErr
	})
	return booking, err
}

func (e *Executor) notifyCandidate(ctx context.Context, p Proposal, slot calendar.Slot, booking calendar.Booking, contact Contact) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nCongratulations! Your interview has been confirmed for %s.\n\nMeeting link: %s\n\nA calendar invite has been sent to you. If you need to reschedule, please let us know at least 24 hours in advance.\n\nBest regards,\nThe Hiring Team\n",
		contact.Name,
		slot.Start.UTC().Format("Monday, January 2, 2006 at 15:04 MST"),
		booking.MeetLink,
	)
	msg := notify.Message{
		To:      contact.Email,
		Subject: "Interview Confirmed: " + p.Summary,
		Body:    body,
	}
	return withRetry(ctx, e.Config.NotifyRetryMax, e.Config.RetryBaseDelay, nil, func() error {
		return e.Messenger.Send(ctx, msg)
	})
}

func (e *Executor) schedule(ctx context.Context, p Proposal, slot calendar.Slot, booking calendar.Booking) {
	decidedAt := e.clock()()
	update := StatusUpdate{
		SlotStart: &slot.Start,
		SlotEnd:   &slot.End,
		EventRef:  booking.EventRef,
		MeetLink:  booking.MeetLink,
		DecidedAt: &decidedAt,
	}
	if _, err := e.Repo.TransitionStatus(ctx, p.ID, StatusApproved, StatusScheduled, update); err != nil {
		if errors.Is(err, ErrAlreadyDecided) {
			// The proposal was rejected or expired while booking ran. The
			// real-world event exists; surface it for reconciliation.
			telemetry.Warn("executor.orphaned_booking", map[string]any{
				"proposal_id": p.ID,
				"event_ref":   booking.EventRef,
				"meet_link":   booking.MeetLink,
				"action":      "manual reconciliation required",
			})
			return
		}
		telemetry.Error("executor.schedule_transition_failed", map[string]any{
			"proposal_id": p.ID,
			"error":       err.Error(),
		})
		return
	}

	metrics.IncBookingsScheduled()
	e.Audit.Record(ctx, p.CandidateID, p.JobID, "interview_scheduled", map[string]any{
		"proposal_id": p.ID,
		"event_ref":   booking.EventRef,
		"slot_start":  slot.Start,
	})
	telemetry.Info("executor.scheduled", map[string]any{
		"proposal_id": p.ID,
		"event_ref":   booking.EventRef,
	})
}

func (e *Executor) fail(ctx context.Context, p Proposal, reason string) {
	decidedAt := e.clock()()
	update := StatusUpdate{FailureReason: reason, DecidedAt: &decidedAt}
	if _, err := e.Repo.TransitionStatus(ctx, p.ID, StatusApproved, StatusFailed, update); err != nil {
		if errors.Is(err, ErrAlreadyDecided) {
			telemetry.Warn("executor.fail_transition_noop", map[string]any{
				"proposal_id": p.ID,
				"reason":      reason,
			})
			return
		}
		telemetry.Error("executor.fail_transition_failed", map[string]any{
			"proposal_id": p.ID,
			"error":       err.Error(),
		})
		return
	}

	metrics.IncBookingsFailed()
	e.Audit.Record(ctx, p.CandidateID, p.JobID, "interview_booking_failed", map[string]any{
		"proposal_id": p.ID,
		"reason":      reason,
	})
}

func (e *Executor) clock() func() time.Time {
	if e.now != nil {
		return e.now
	}
	return func() time.Time { return time.Now().UTC() }
}
