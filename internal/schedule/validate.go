package schedule

import (
	"fmt"
	"regexp"
	"time"
)

var (
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// SlotValidation is the outcome of validating a proposed (date, time) pair.
// Reason is a customer-facing message and is empty when Valid.
type SlotValidation struct {
	Valid  bool
	Reason string
}

func invalid(reason string) SlotValidation {
	return SlotValidation{Valid: false, Reason: reason}
}

// ValidateBookingSlot checks a proposed slot against format, past-date,
// business-hours and increment rules, short-circuiting on the first
// failure. It is pure and never consults storage; conflicts with existing
// bookings are a separate check owned by the caller.
func ValidateBookingSlot(dateStr, timeStr string) SlotValidation {
	return ValidateBookingSlotAt(dateStr, timeStr, time.Now())
}

// ValidateBookingSlotAt is ValidateBookingSlot with an injectable clock.
func ValidateBookingSlotAt(dateStr, timeStr string, now time.Time) SlotValidation {
	if !dateRe.MatchString(dateStr) {
		return invalid("invalid date format")
	}
	if _, err := ParseDate(dateStr); err != nil {
		return invalid("invalid date format")
	}
	if !timeRe.MatchString(timeStr) {
		return invalid("invalid time format")
	}

	// Civil-date comparison; time of day is ignored. The layout sorts
	// lexically, so string comparison is exact.
	if dateStr < now.Format(DateLayout) {
		return invalid("cannot book in the past")
	}

	hours := BusinessHoursFor(dateStr)
	open := TimeToMinutes(hours.Open)
	closing := TimeToMinutes(hours.Close)
	start := TimeToMinutes(timeStr)

	if start < open {
		return invalid(fmt.Sprintf("bookings on this date start at %s", FormatTime12h(hours.Open)))
	}
	if start > closing-ServiceDuration {
		end := MinutesToTime((start + ServiceDuration) % (24 * 60))
		return invalid(fmt.Sprintf("appointment would end at %s, after closing time %s",
			FormatTime12h(end), FormatTime12h(hours.Close)))
	}
	if (start-open)%SlotInterval != 0 {
		return invalid("invalid time slot increment")
	}

	return SlotValidation{Valid: true}
}
