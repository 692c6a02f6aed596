package schedule

import (
	"strings"
	"testing"
	"time"
)

// fixedNow keeps validator tests deterministic: Tuesday 2026-09-01.
var fixedNow = time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

func TestValidateBookingSlotFormats(t *testing.T) {
	cases := []struct {
		date, clock, reason string
	}{
		{"09/07/2026", "16:00", "invalid date format"},
		{"2026-9-7", "16:00", "invalid date format"},
		{"2026-13-40", "16:00", "invalid date format"},
		{"2026-09-07", "4pm", "invalid time format"},
		{"2026-09-07", "25:00", "invalid time format"},
		{"2026-09-07", "16:5", "invalid time format"},
	}
	for _, c := range cases {
		res := ValidateBookingSlotAt(c.date, c.clock, fixedNow)
		if res.Valid || res.Reason != c.reason {
			t.Errorf("ValidateBookingSlot(%q, %q) = %+v, want reason %q", c.date, c.clock, res, c.reason)
		}
	}
}

func TestValidateBookingSlotPastDate(t *testing.T) {
	res := ValidateBookingSlotAt("2026-08-31", "16:00", fixedNow)
	if res.Valid || res.Reason != "cannot book in the past" {
		t.Errorf("expected past-date rejection, got %+v", res)
	}

	// Today itself is allowed; only strictly earlier dates are rejected.
	if res := ValidateBookingSlotAt("2026-09-01", "16:00", fixedNow); !res.Valid {
		t.Errorf("same-day booking rejected: %+v", res)
	}
}

func TestValidateBookingSlotBeforeOpen(t *testing.T) {
	res := ValidateBookingSlotAt("2026-09-07", "10:00", fixedNow)
	if res.Valid {
		t.Fatal("expected rejection before weekday open")
	}
	if !strings.Contains(res.Reason, "3:30 PM") {
		t.Errorf("reason should name the opening time, got %q", res.Reason)
	}
}

func TestValidateBookingSlotPastLatestStart(t *testing.T) {
	res := ValidateBookingSlotAt("2026-09-07", "17:00", fixedNow)
	if res.Valid {
		t.Fatal("expected rejection for slot ending after close")
	}
	if !strings.Contains(res.Reason, "8:30 PM") || !strings.Contains(res.Reason, "8:00 PM") {
		t.Errorf("reason should name end time and closing time, got %q", res.Reason)
	}
}

func TestValidateBookingSlotIncrement(t *testing.T) {
	// 15:45 is 15 minutes past the 15:30 weekday open.
	res := ValidateBookingSlotAt("2026-09-07", "15:45", fixedNow)
	if res.Valid || res.Reason != "invalid time slot increment" {
		t.Errorf("expected increment rejection, got %+v", res)
	}
}

func TestValidateBookingSlotAccepts(t *testing.T) {
	for _, c := range []struct{ date, clock string }{
		{"2026-09-07", "15:30"},
		{"2026-09-07", "16:30"},
		{"2026-09-05", "09:00"},
		{"2026-09-05", "13:00"},
		{"2026-09-05", "16:30"},
	} {
		if res := ValidateBookingSlotAt(c.date, c.clock, fixedNow); !res.Valid {
			t.Errorf("ValidateBookingSlot(%q, %q) rejected: %q", c.date, c.clock, res.Reason)
		}
	}
}
