package booking

import (
	"context"
	"time"

	"github.com/mirrorfinish/detailing-platform/internal/schedule"
)

// AdminUpdate are the booking fields an administrator may edit. Nil means
// leave unchanged.
type AdminUpdate struct {
	Date   *string
	Time   *string
	Status *Status
	Notes  *string
}

// List returns bookings matching the filter.
func (s *Service) List(ctx context.Context, f ListFilter) ([]Booking, error) {
	return s.store.ListBookings(ctx, f)
}

// Get loads a single booking.
func (s *Service) Get(ctx context.Context, id int64) (*Booking, error) {
	return s.store.GetBooking(ctx, id)
}

// UpdateBooking applies an admin edit. A date/time move is re-validated
// against the slot rules and the current booking set; the weekday partial
// index remains the authority on the write itself. A core-field change
// without an explicit status moves the booking to StatusUpdated. The
// calendar event is patched best-effort afterwards.
func (s *Service) UpdateBooking(ctx context.Context, id int64, upd AdminUpdate) (*Booking, error) {
	current, err := s.store.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Status != nil && !upd.Status.Valid() {
		return nil, validationErr("unknown booking status")
	}

	moved := false
	newDate, newTime := current.Date, current.Time
	if upd.Date != nil && *upd.Date != current.Date {
		newDate = *upd.Date
		moved = true
	}
	if upd.Time != nil && *upd.Time != current.Time {
		newTime = *upd.Time
		moved = true
	}

	if moved {
		if res := schedule.ValidateBookingSlotAt(newDate, newTime, s.now()); !res.Valid {
			return nil, validationErr(res.Reason)
		}
		booked, err := s.store.BookedTimesForDate(ctx, newDate)
		if err != nil {
			return nil, err
		}
		for _, taken := range booked {
			// Skip this booking's own slot when it stays on the same date.
			if newDate == current.Date && taken == current.Time {
				continue
			}
			if schedule.SlotsOverlap(newTime, taken) {
				return nil, ErrSlotConflict
			}
		}
	}

	storeUpd := Update{Date: upd.Date, Time: upd.Time, Status: upd.Status, Notes: upd.Notes}
	if moved && upd.Status == nil {
		st := StatusUpdated
		storeUpd.Status = &st
	}

	updated, err := s.store.UpdateBooking(ctx, id, storeUpd)
	if err != nil {
		return nil, err
	}

	if s.calendar != nil && updated.CalendarEventID != "" {
		if err := s.calendar.PatchEvent(ctx, updated); err != nil {
			s.logger.Error("calendar event patch failed", "booking_id", id, "error", err)
		}
	}
	return updated, nil
}

// Cancel marks a booking cancelled, freeing its date for weekdays, and
// removes the calendar event best-effort.
func (s *Service) Cancel(ctx context.Context, id int64) (*Booking, error) {
	st := StatusCancelled
	cancelled, err := s.store.UpdateBooking(ctx, id, Update{Status: &st})
	if err != nil {
		return nil, err
	}
	if s.calendar != nil && cancelled.CalendarEventID != "" {
		if err := s.calendar.DeleteEvent(ctx, cancelled.CalendarEventID); err != nil {
			s.logger.Error("calendar event delete failed", "booking_id", id, "error", err)
		}
	}
	s.logger.Info("booking cancelled", "booking_id", id, "date", cancelled.Date)
	return cancelled, nil
}

// Delete hard-deletes a booking and removes its calendar event best-effort.
func (s *Service) Delete(ctx context.Context, id int64) error {
	current, err := s.store.GetBooking(ctx, id)
	if err != nil {
		return err
	}
	if s.calendar != nil && current.CalendarEventID != "" {
		if err := s.calendar.DeleteEvent(ctx, current.CalendarEventID); err != nil {
			s.logger.Error("calendar event delete failed", "booking_id", id, "error", err)
		}
	}
	if err := s.store.DeleteBooking(ctx, id); err != nil {
		return err
	}
	s.logger.Info("booking deleted", "booking_id", id)
	return nil
}

// WithClock overrides the service clock. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}
