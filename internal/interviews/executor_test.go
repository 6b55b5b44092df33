package interviews

import (
	"context"
	"errors"
	"testing"
	"time"

	"hiring-backend/internal/calendar"
	"hiring-backend/internal/notify"
)

type fakeCalendar struct {
	slots     []calendar.Slot
	findErr   error
	findCalls int

	bookErrs  []error
	bookCalls int
	booking   calendar.Booking
}

func (f *fakeCalendar) FindAvailableSlots(ctx context.Context, window calendar.Window) ([]calendar.Slot, error) {
	f.findCalls++
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.slots, nil
}

func (f *fakeCalendar) BookSlot(ctx context.Context, slot calendar.Slot, summary string, attendee calendar.Attendee) (calendar.Booking, error) {
	f.bookCalls++
	if f.bookCalls <= len(f.bookErrs) {
		if err := f.bookErrs[f.bookCalls-1]; err != nil {
			return calendar.Booking{}, err
		}
	}
	return f.booking, nil
}

type fakeMessenger struct {
	sendErrs  []error
	sendCalls int
	last      notify.Message
}

func (f *fakeMessenger) Send(ctx context.Context, msg notify.Message) error {
	f.sendCalls++
	f.last = msg
	if f.sendCalls <= len(f.sendErrs) {
		return f.sendErrs[f.sendCalls-1]
	}
	return nil
}

type fakeContacts struct {
	contact Contact
	err     error
}

func (f *fakeContacts) Contact(ctx context.Context, candidateID string) (Contact, error) {
	if f.err != nil {
		return Contact{}, f.err
	}
	return f.contact, nil
}

// executorFixture seeds an APPROVED proposal and returns a synchronous
// executor wired to fakes. now is fixed to a Monday morning UTC.
func executorFixture(t *testing.T, cal *fakeCalendar, msgr *fakeMessenger) (*Executor, *MemoryRepo, Proposal) {
	t.Helper()
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	repo := NewMemoryRepo()
	decidedAt := now
	p := Proposal{
		ID:          "prop-1",
		CandidateID: "cand-1",
		JobID:       "job-1",
		Summary:     "Interview: Backend Engineer",
		Status:      StatusApproved,
		ExpiresAt:   now.Add(72 * time.Hour),
		CreatedAt:   now.Add(-time.Hour),
		DecidedAt:   &decidedAt,
	}
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("seed proposal: %v", err)
	}

	exec := &Executor{
		Repo:      repo,
		Calendar:  cal,
		Messenger: msgr,
		Contacts:  &fakeContacts{contact: Contact{Name: "Jordan Ives", Email: "jordan@example.com"}},
		Config: ExecConfig{
			InterviewDuration: time.Hour,
			MinNotice:         24 * time.Hour,
			SearchWindow:      7 * 24 * time.Hour,
			WorkDayStartHour:  9,
			WorkDayEndHour:    17,
			SlotRetryMax:      3,
			BookingRetryMax:   3,
			NotifyRetryMax:    2,
			RetryBaseDelay:    time.Millisecond,
		},
		now: func() time.Time { return now },
	}
	return exec, repo, p
}

func workdaySlot(day, hour int) calendar.Slot {
	start := time.Date(2026, 3, day, hour, 0, 0, 0, time.UTC)
	return calendar.Slot{Start: start, End: start.Add(time.Hour)}
}

func TestExecuteBooksEarliestSlotAndSchedules(t *testing.T) {
	cal := &fakeCalendar{
		slots:   []calendar.Slot{workdaySlot(3, 10), workdaySlot(4, 14)},
		booking: calendar.Booking{EventRef: "evt-1", MeetLink: "https://meet.example.com/abc"},
	}
	msgr := &fakeMessenger{}
	exec, repo, p := executorFixture(t, cal, msgr)

	exec.Execute(context.Background(), p)

	got, err := repo.GetByID(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != StatusScheduled {
		t.Fatalf("expected scheduled, got %s (reason %q)", got.Status, got.FailureReason)
	}
	if got.EventRef != "evt-1" || got.MeetLink != "https://meet.example.com/abc" {
		t.Fatalf("expected booking refs on proposal, got %q/%q", got.EventRef, got.MeetLink)
	}
	if got.SlotStart == nil || !got.SlotStart.Equal(workdaySlot(3, 10).Start) {
		t.Fatalf("expected earliest slot, got %v", got.SlotStart)
	}
	if cal.bookCalls != 1 {
		t.Fatalf("expected 1 booking call, got %d", cal.bookCalls)
	}
	if msgr.sendCalls != 1 {
		t.Fatalf("expected 1 notification, got %d", msgr.sendCalls)
	}
	if msgr.last.To != "jordan@example.com" {
		t.Fatalf("notification sent to %q", msgr.last.To)
	}
}

func TestExecuteFailsWithoutBookingWhenNoSlots(t *testing.T) {
	cal := &fakeCalendar{}
	msgr := &fakeMessenger{}
	exec, repo, p := executorFixture(t, cal, msgr)

	exec.Execute(context.Background(), p)

	got, _ := repo.GetByID(context.Background(), p.ID)
	if got.Status != StatusFailed || got.FailureReason != ReasonNoAvailableSlot {
		t.Fatalf("expected failed/NoAvailableSlot, got %s/%q", got.Status, got.FailureReason)
	}
	if cal.bookCalls != 0 {
		t.Fatalf("booking must not run without a slot, got %d calls", cal.bookCalls)
	}
	if msgr.sendCalls != 0 {
		t.Fatalf("notification must not run without a slot, got %d calls", msgr.sendCalls)
	}
}

func TestExecuteSkipsSlotsOutsideWorkingHours(t *testing.T) {
	cal := &fakeCalendar{
		slots: []calendar.Slot{
			workdaySlot(3, 7),  // before the working day
			workdaySlot(3, 17), // ends past the working day
			workdaySlot(4, 11),
		},
		booking: calendar.Booking{EventRef: "evt-1", MeetLink: "https://meet.example.com/abc"},
	}
	msgr := &fakeMessenger{}
	exec, repo, p := executorFixture(t, cal, msgr)

	exec.Execute(context.Background(), p)

	got, _ := repo.GetByID(context.Background(), p.ID)
	if got.Status != StatusScheduled {
		t.Fatalf("expected scheduled, got %s", got.Status)
	}
	if got.SlotStart == nil || !got.SlotStart.Equal(workdaySlot(4, 11).Start) {
		t.Fatalf("expected first in-hours slot, got %v", got.SlotStart)
	}
}

func TestExecuteSkipsSlotsBeforeMinimumNotice(t *testing.T) {
	// now is Mar 2 08:00; minimum notice is 24h, so Mar 2 slots are too soon.
	cal := &fakeCalendar{
		slots:   []calendar.Slot{workdaySlot(2, 10), workdaySlot(3, 10)},
		booking: calendar.Booking{EventRef: "evt-1", MeetLink: "https://meet.example.com/abc"},
	}
	msgr := &fakeMessenger{}
	exec, repo, p := executorFixture(t, cal, msgr)

	exec.Execute(context.Background(), p)

	got, _ := repo.GetByID(context.Background(), p.ID)
	if got.SlotStart == nil || !got.SlotStart.Equal(workdaySlot(3, 10).Start) {
		t.Fatalf("expected slot past minimum notice, got %v", got.SlotStart)
	}
}

func TestExecuteRetriesSlotSearch(t *testing.T) {
	cal := &fakeCalendar{findErr: errors.New("upstream timeout")}
	msgr := &fakeMessenger{}
	exec, repo, p := executorFixture(t, cal, msgr)

	exec.Execute(context.Background(), p)

	if cal.findCalls != exec.Config.SlotRetryMax {
		t.Fatalf("expected %d slot search attempts, got %d", exec.Config.SlotRetryMax, cal.findCalls)
	}
	got, _ := repo.GetByID(context.Background(), p.ID)
	if got.Status != StatusFailed || got.FailureReason != ReasonNoAvailableSlot {
		t.Fatalf("expected failed/NoAvailableSlot, got %s/%q", got.Status, got.FailureReason)
	}
}

func TestExecuteConflictFailsWithoutRetry(t *testing.T) {
	cal := &fakeCalendar{
		slots:    []calendar.Slot{workdaySlot(3, 10)},
		bookErrs: []error{calendar.ErrBookingConflict},
	}
	msgr := &fakeMessenger{}
	exec, repo, p := executorFixture(t, cal, msgr)

	exec.Execute(context.Background(), p)

	got, _ := repo.GetByID(context.Background(), p.ID)
	if got.Status != StatusFailed || got.FailureReason != ReasonBookingConflict {
		t.Fatalf("expected failed/BookingConflict, got %s/%q", got.Status, got.FailureReason)
	}
	if cal.bookCalls != 1 {
		t.Fatalf("conflict must not be retried, got %d calls", cal.bookCalls)
	}
	if msgr.sendCalls != 0 {
		t.Fatalf("notification must not run on booking failure, got %d calls", msgr.sendCalls)
	}
}

func TestExecuteRetriesTransientBookingErrors(t *testing.T) {
	cal := &fakeCalendar{
		slots:    []calendar.Slot{workdaySlot(3, 10)},
		bookErrs: []error{calendar.ErrBookingUnavailable, calendar.ErrBookingUnavailable},
		booking:  calendar.Booking{EventRef: "evt-1", MeetLink: "https://meet.example.com/abc"},
	}
	msgr := &fakeMessenger{}
	exec, repo, p := executorFixture(t, cal, msgr)

	exec.Execute(context.Background(), p)

	got, _ := repo.GetByID(context.Background(), p.ID)
	if got.Status != StatusScheduled {
		t.Fatalf("expected scheduled after retries, got %s/%q", got.Status, got.FailureReason)
	}
	if cal.bookCalls != 3 {
		t.Fatalf("expected 3 booking attempts, got %d", cal.bookCalls)
	}
}

func TestExecuteBookingExhaustionFails(t *testing.T) {
	cal := &fakeCalendar{
		slots: []calendar.Slot{workdaySlot(3, 10)},
		bookErrs: []error{
			calendar.ErrBookingUnavailable,
			calendar.ErrBookingUnavailable,
			calendar.ErrBookingUnavailable,
		},
	}
	msgr := &fakeMessenger{}
	exec, repo, p := executorFixture(t, cal, msgr)

	exec.Execute(context.Background(), p)

	got, _ := repo.GetByID(context.Background(), p.ID)
	if got.Status != StatusFailed || got.FailureReason != ReasonBookingUnavailable {
		t.Fatalf("expected failed/BookingUnavailable, got %s/%q", got.Status, got.FailureReason)
	}
}

func TestExecuteNotificationFailureStillSchedules(t *testing.T) {
	cal := &fakeCalendar{
		slots:   []calendar.Slot{workdaySlot(3, 10)},
		booking: calendar.Booking{EventRef: "evt-1", MeetLink: "https://meet.example.com/abc"},
	}
	msgr := &fakeMessenger{sendErrs: []error{errors.New("smtp down"), errors.New("smtp down")}}
	exec, repo, p := executorFixture(t, cal, msgr)

	exec.Execute(context.Background(), p)

	if msgr.sendCalls != exec.Config.NotifyRetryMax {
		t.Fatalf("expected %d notify attempts, got %d", exec.Config.NotifyRetryMax, msgr.sendCalls)
	}
	got, _ := repo.GetByID(context.Background(), p.ID)
	if got.Status != StatusScheduled {
		t.Fatalf("notification failure must not undo scheduling, got %s", got.Status)
	}
	if got.EventRef != "evt-1" {
		t.Fatalf("expected event ref preserved, got %q", got.EventRef)
	}
}

func TestExecuteMidFlightRejectionIsNoOp(t *testing.T) {
	cal := &fakeCalendar{
		slots:   []calendar.Slot{workdaySlot(3, 10)},
		booking: calendar.Booking{EventRef: "evt-1", MeetLink: "https://meet.example.com/abc"},
	}
	msgr := &fakeMessenger{}
	exec, repo, p := executorFixture(t, cal, msgr)

	// Simulate a decider flipping the proposal while booking runs: the
	// stored row is already terminal when the executor applies its result.
	repo.mu.Lock()
	stored := repo.data[p.ID]
	stored.Status = StatusRejected
	repo.data[p.ID] = stored
	repo.mu.Unlock()

	exec.Execute(context.Background(), p)

	got, _ := repo.GetByID(context.Background(), p.ID)
	if got.Status != StatusRejected {
		t.Fatalf("terminal status must not be overwritten, got %s", got.Status)
	}
	if got.EventRef != "" {
		t.Fatalf("rejected proposal must not carry booking refs, got %q", got.EventRef)
	}
}

func TestExecuteContactFailureFails(t *testing.T) {
	cal := &fakeCalendar{slots: []calendar.Slot{workdaySlot(3, 10)}}
	msgr := &fakeMessenger{}
	exec, repo, p := executorFixture(t, cal, msgr)
	exec.Contacts = &fakeContacts{err: errors.New("candidate record missing email")}

	exec.Execute(context.Background(), p)

	got, _ := repo.GetByID(context.Background(), p.ID)
	if got.Status != StatusFailed || got.FailureReason != ReasonBookingUnavailable {
		t.Fatalf("expected failed/BookingUnavailable, got %s/%q", got.Status, got.FailureReason)
	}
	if cal.bookCalls != 0 {
		t.Fatalf("booking must not run without a contact, got %d calls", cal.bookCalls)
	}
}
