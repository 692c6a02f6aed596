// Package gcal mirrors confirmed bookings into a Google Calendar. The
// integration is optional; a nil *Client disables it and bookings are
// created without calendar linkage.
package gcal

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/mirrorfinish/detailing-platform/internal/booking"
	"github.com/mirrorfinish/detailing-platform/internal/schedule"
	"github.com/mirrorfinish/detailing-platform/pkg/logging"
)

// Client wraps the Google Calendar API for booking events.
type Client struct {
	svc        *calendar.Service
	calendarID string
	logger     *logging.Logger
}

// New creates a calendar client from service-account credentials JSON.
// Empty credentials return (nil, nil): the integration is simply off.
func New(ctx context.Context, credentialsJSON, calendarID string, logger *logging.Logger) (*Client, error) {
	if credentialsJSON == "" {
		return nil, nil
	}
	if calendarID == "" {
		calendarID = "primary"
	}
	if logger == nil {
		logger = logging.Default()
	}

	svc, err := calendar.NewService(ctx,
		option.WithCredentialsJSON([]byte(credentialsJSON)),
		option.WithScopes(calendar.CalendarEventsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("gcal: create service: %w", err)
	}
	return &Client{svc: svc, calendarID: calendarID, logger: logger}, nil
}

// CreateEvent inserts a calendar event for a confirmed booking and
// returns the event ID.
func (c *Client) CreateEvent(ctx context.Context, b *booking.Booking) (string, error) {
	event, err := eventFor(b)
	if err != nil {
		return "", err
	}
	created, err := c.svc.Events.Insert(c.calendarID, event).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("gcal: insert event: %w", err)
	}
	c.logger.Info("calendar event created", "booking_id", b.ID, "event_id", created.Id)
	return created.Id, nil
}

// PatchEvent updates the calendar event tied to a booking after an admin
// move or edit. Bookings without linkage are a no-op.
func (c *Client) PatchEvent(ctx context.Context, b *booking.Booking) error {
	if b.CalendarEventID == "" {
		return nil
	}
	event, err := eventFor(b)
	if err != nil {
		return err
	}
	if _, err := c.svc.Events.Patch(c.calendarID, b.CalendarEventID, event).Context(ctx).Do(); err != nil {
		return fmt.Errorf("gcal: patch event %s: %w", b.CalendarEventID, err)
	}
	return nil
}

// DeleteEvent removes a calendar event, typically on cancellation.
func (c *Client) DeleteEvent(ctx context.Context, eventID string) error {
	if eventID == "" {
		return nil
	}
	if err := c.svc.Events.Delete(c.calendarID, eventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("gcal: delete event %s: %w", eventID, err)
	}
	return nil
}

// eventFor builds the calendar event payload for a booking. Times are
// rendered as local (floating) RFC3339 without a zone offset so the event
// lands at the shop's wall-clock time regardless of server zone.
func eventFor(b *booking.Booking) (*calendar.Event, error) {
	start, err := eventTime(b.Date, b.Time)
	if err != nil {
		return nil, err
	}
	end := start.Add(schedule.ServiceDuration * time.Minute)

	description := fmt.Sprintf("Customer: %s <%s>\nVehicle: %s (%s)",
		b.CustomerName, b.CustomerEmail, b.VehicleModel, b.VehicleSize)
	if b.CustomerPhone != "" {
		description += "\nPhone: " + b.CustomerPhone
	}
	if b.Notes != "" {
		description += "\nNotes: " + b.Notes
	}

	return &calendar.Event{
		Summary:     fmt.Sprintf("%s - %s", b.PackageName, b.CustomerName),
		Description: description,
		Start:       &calendar.EventDateTime{DateTime: start.Format("2006-01-02T15:04:05")},
		End:         &calendar.EventDateTime{DateTime: end.Format("2006-01-02T15:04:05")},
	}, nil
}

func eventTime(date, hhmm string) (time.Time, error) {
	t, err := time.Parse(schedule.DateLayout+" 15:04", date+" "+hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("gcal: bad booking time %s %s: %w", date, hhmm, err)
	}
	return t, nil
}

var _ booking.Calendar = (*Client)(nil)
