// Package schedule implements the appointment scheduling rules: clock
// arithmetic, business hours, slot generation, overlap detection and slot
// validation. Everything here is pure; conflict checks against stored
// bookings are composed by callers.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// ServiceDuration is the fixed appointment length in minutes. Every
	// booking occupies exactly this window regardless of package.
	ServiceDuration = 210

	// SlotInterval is the spacing between bookable start times.
	SlotInterval = 30

	// DateLayout is the civil date format used across the API and storage.
	DateLayout = "2006-01-02"
)

// TimeToMinutes converts a zero-padded 24-hour "HH:MM" string to minutes
// since midnight. Input format is the caller's contract; it is validated
// upstream by ValidateBookingSlot.
func TimeToMinutes(clock string) int {
	h, m, _ := strings.Cut(clock, ":")
	hours, _ := strconv.Atoi(h)
	minutes, _ := strconv.Atoi(m)
	return hours*60 + minutes
}

// MinutesToTime is the inverse of TimeToMinutes, zero-padded.
func MinutesToTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// FormatTime12h renders an "HH:MM" 24-hour time on a 12-hour clock with an
// AM/PM suffix. Hours 0 and 12 both render as 12.
func FormatTime12h(clock string) string {
	total := TimeToMinutes(clock)
	hours := total / 60
	minutes := total % 60

	suffix := "AM"
	if hours >= 12 {
		suffix = "PM"
	}
	display := hours % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minutes, suffix)
}

// IsWeekend reports whether the date falls on Saturday or Sunday. Dates are
// interpreted as naive civil dates in the single operating timezone; no
// timezone conversion is applied.
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// ParseDate parses a "YYYY-MM-DD" civil date.
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(DateLayout, dateStr)
}
