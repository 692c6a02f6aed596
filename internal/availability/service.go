// Package availability derives bookable-slot views from the live booking
// set. Everything here is recomputed on read; "fully booked" is never
// cached, so it cannot drift from the bookings table.
package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mirrorfinish/detailing-platform/internal/schedule"
)

// maxRangeDays caps a fully-booked query; the booking UI never asks for
// more than a couple of months at a time.
const maxRangeDays = 92

// ErrInvalidRequest marks a malformed date or range in the caller's
// input. Anything not wrapping it is a storage failure.
var ErrInvalidRequest = errors.New("availability: invalid request")

// BookingTimes is the storage surface availability reads from.
type BookingTimes interface {
	BookedTimesForDate(ctx context.Context, date string) ([]string, error)
	ActiveTimesBetween(ctx context.Context, from, to string) (map[string][]string, error)
}

// Day is the availability view for a single date.
type Day struct {
	Date      string                 `json:"date"`
	Hours     schedule.BusinessHours `json:"hours"`
	Slots     []string               `json:"slots"`
	Booked    []string               `json:"booked"`
	Available []string               `json:"available"`
}

// Service computes availability views.
type Service struct {
	store BookingTimes
}

// NewService creates an availability service.
func NewService(store BookingTimes) *Service {
	return &Service{store: store}
}

// ForDate returns the generated slots, existing booking times and the
// conflict-free remainder for one date.
func (s *Service) ForDate(ctx context.Context, date string) (*Day, error) {
	if _, err := schedule.ParseDate(date); err != nil {
		return nil, fmt.Errorf("%w: bad date %q", ErrInvalidRequest, date)
	}
	booked, err := s.store.BookedTimesForDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("availability: load booked times: %w", err)
	}
	slots := schedule.AvailableSlots(date)
	return &Day{
		Date:      date,
		Hours:     schedule.BusinessHoursFor(date),
		Slots:     slots,
		Booked:    booked,
		Available: schedule.FilterAvailableSlots(slots, booked),
	}, nil
}

// FullyBookedBetween returns the dates in [from, to] on which every
// generated slot overlaps at least one existing booking. Used to disable
// dates in the booking calendar.
func (s *Service) FullyBookedBetween(ctx context.Context, from, to string) ([]string, error) {
	start, err := schedule.ParseDate(from)
	if err != nil {
		return nil, fmt.Errorf("%w: bad start date %q", ErrInvalidRequest, from)
	}
	end, err := schedule.ParseDate(to)
	if err != nil {
		return nil, fmt.Errorf("%w: bad end date %q", ErrInvalidRequest, to)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date before start date", ErrInvalidRequest)
	}
	if end.Sub(start) > maxRangeDays*24*time.Hour {
		return nil, fmt.Errorf("%w: range exceeds %d days", ErrInvalidRequest, maxRangeDays)
	}

	byDate, err := s.store.ActiveTimesBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("availability: load range: %w", err)
	}

	fullyBooked := []string{}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := d.Format(schedule.DateLayout)
		booked := byDate[date]
		if len(booked) == 0 {
			continue
		}
		if len(schedule.FilterAvailableSlots(schedule.AvailableSlots(date), booked)) == 0 {
			fullyBooked = append(fullyBooked, date)
		}
	}
	return fullyBooked, nil
}
