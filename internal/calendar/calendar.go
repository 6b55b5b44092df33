// Package calendar defines the calendar tool interface the action executor
// consumes. The Google Calendar implementation lives in the google subpackage.
package calendar

import (
	"context"
	"errors"
	"time"
)

// Slot is a concrete bookable time range.
type Slot struct {
	Start time.Time
	End   time.Time
}

// Window bounds a slot search.
type Window struct {
	From     time.Time
	To       time.Time
	Duration time.Duration
}

// Attendee identifies who the booking is for.
type Attendee struct {
	Name  string
	Email string
}

// Booking is the result of a successful BookSlot call.
type Booking struct {
	EventRef string
	MeetLink string
}

var (
	// ErrBookingConflict indicates the slot was taken between search and booking.
	ErrBookingConflict = errors.New("booking conflict")
	// ErrBookingUnavailable indicates the calendar backend could not serve the booking.
	ErrBookingUnavailable = errors.New("booking unavailable")
)

// Tool is the calendar boundary consumed by the core.
// FindAvailableSlots is read-only and idempotent; the returned slots are
// ordered by start time and may be empty.
type Tool interface {
	FindAvailableSlots(ctx context.Context, window Window) ([]Slot, error)
	BookSlot(ctx context.Context, slot Slot, summary string, attendee Attendee) (Booking, error)
}

// Placeholder is a stub implementation until provider wiring is added.
type Placeholder struct{}

// FindAvailableSlots always reports the backend as unavailable.
func (Placeholder) FindAvailableSlots(ctx context.Context, window Window) ([]Slot, error) {
	_ = ctx
	_ = window
	return nil, ErrBookingUnavailable
}

// BookSlot always reports the backend as unavailable.
func (Placeholder) BookSlot(ctx context.Context, slot Slot, summary string, attendee Attendee) (Booking, error) {
	_ = ctx
	_ = slot
	_ = summary
	_ = attendee
	return Booking{}, ErrBookingUnavailable
}
