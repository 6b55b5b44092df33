// Package google implements the calendar tool on the Google Calendar API.
// It mirrors the freebusy search + event insert flow of the recruiting
// workflow: query busy ranges, walk the window for free gaps, and create the
// event with a Meet conference attached.
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"hiring-backend/internal/calendar"
)

// Config holds the Google Calendar client configuration.
type Config struct {
	// CalendarID is the calendar to search and book against, usually "primary".
	CalendarID string
	// TokenFile is a JSON-serialized oauth2.Token obtained out of band.
	TokenFile string
	// CredentialsJSON is an alternative to TokenFile for service accounts.
	CredentialsJSON []byte
}

// Client implements calendar.Tool against the Google Calendar API.
type Client struct {
	service    *gcal.Service
	calendarID string
}

// NewClient builds the calendar service from the configured credentials.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.CalendarID == "" {
		cfg.CalendarID = "primary"
	}

	var opts []option.ClientOption
	switch {
	case cfg.TokenFile != "":
		tok, err := loadToken(cfg.TokenFile)
		if err != nil {
			return nil, fmt.Errorf("calendar: load token: %w", err)
		}
		opts = append(opts, option.WithTokenSource(oauth2.StaticTokenSource(tok)))
	case len(cfg.CredentialsJSON) > 0:
		opts = append(opts, option.WithCredentialsJSON(cfg.CredentialsJSON))
	default:
		return nil, fmt.Errorf("calendar: token file or credentials JSON is required")
	}

	service, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("calendar: failed to create service: %w", err)
	}

	return &Client{service: service, calendarID: cfg.CalendarID}, nil
}

// FindAvailableSlots queries free/busy for the window and returns free gaps of
// the requested duration, ordered by start time.
func (c *Client) FindAvailableSlots(ctx context.Context, window calendar.Window) ([]calendar.Slot, error) {
	req := &gcal.FreeBusyRequest{
		TimeMin:  window.From.UTC().Format(time.RFC3339),
		TimeMax:  window.To.UTC().Format(time.RFC3339),
		TimeZone: "UTC",
		Items:    []*gcal.FreeBusyRequestItem{{Id: c.calendarID}},
	}

	resp, err := c.service.Freebusy.Query(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("calendar: freebusy query: %w", err)
	}

	var busy []calendar.Slot
	if cal, ok := resp.Calendars[c.calendarID]; ok {
		for _, period := range cal.Busy {
			start, err := time.Parse(time.RFC3339, period.Start)
			if err != nil {
				continue
			}
			end, err := time.Parse(time.RFC3339, period.End)
			if err != nil {
				continue
			}
			busy = append(busy, calendar.Slot{Start: start, End: end})
		}
	}

	return freeGaps(window, busy), nil
}

// BookSlot inserts a calendar event with a Meet conference for the attendee.
func (c *Client) BookSlot(ctx context.Context, slot calendar.Slot, summary string, attendee calendar.Attendee) (calendar.Booking, error) {
	event := &gcal.Event{
		Summary: summary,
		Start:   &gcal.EventDateTime{DateTime: slot.Start.UTC().Format(time.RFC3339), TimeZone: "UTC"},
		End:     &gcal.EventDateTime{DateTime: slot.End.UTC().Format(time.RFC3339), TimeZone: "UTC"},
		Attendees: []*gcal.EventAttendee{
			{Email: attendee.Email, DisplayName: attendee.Name},
		},
		ConferenceData: &gcal.ConferenceData{
			CreateRequest: &gcal.CreateConferenceRequest{
				RequestId:             fmt.Sprintf("hire-%d", time.Now().UnixNano()),
				ConferenceSolutionKey: &gcal.ConferenceSolutionKey{Type: "hangoutsMeet"},
			},
		},
	}

	created, err := c.service.Events.Insert(c.calendarID, event).
		ConferenceDataVersion(1).
		Context(ctx).
		Do()
	if err != nil {
		if apiErr, ok := err.(*googleapi.Error); ok && apiErr.Code == 409 {
			return calendar.Booking{}, fmt.Errorf("%w: %v", calendar.ErrBookingConflict, err)
		}
		return calendar.Booking{}, fmt.Errorf("%w: %v", calendar.ErrBookingUnavailable, err)
	}

	return calendar.Booking{
		EventRef: created.Id,
		MeetLink: created.HangoutLink,
	}, nil
}

// freeGaps walks the window and collects duration-sized slots that do not
// overlap any busy period. Busy periods are assumed non-overlapping as
// returned by the freebusy API.
func freeGaps(window calendar.Window, busy []calendar.Slot) []calendar.Slot {
	var slots []calendar.Slot
	cursor := window.From
	for cursor.Add(window.Duration).Before(window.To) || cursor.Add(window.Duration).Equal(window.To) {
		end := cursor.Add(window.Duration)
		conflict := false
		for _, b := range busy {
			if cursor.Before(b.End) && end.After(b.Start) {
				conflict = true
				cursor = b.End
				break
			}
		}
		if conflict {
			continue
		}
		slots = append(slots, calendar.Slot{Start: cursor, End: end})
		cursor = end
	}
	return slots
}

func loadToken(path string) (*oauth2.Token, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tok oauth2.Token
	if err := json.Unmarshal(raw, &tok); err != nil {
		return nil, err
	}
	return &tok, nil
}
