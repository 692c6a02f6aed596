package availability

import (
	"context"
	"errors"
	"testing"
)

type fakeTimes struct {
	byDate map[string][]string
	err    error
}

func (f *fakeTimes) BookedTimesForDate(ctx context.Context, date string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byDate[date], nil
}

func (f *fakeTimes) ActiveTimesBetween(ctx context.Context, from, to string) (map[string][]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byDate, nil
}

func TestForDateEmptySchedule(t *testing.T) {
	svc := NewService(&fakeTimes{byDate: map[string][]string{}})

	day, err := svc.ForDate(context.Background(), "2026-09-05")
	if err != nil {
		t.Fatalf("for date: %v", err)
	}
	if len(day.Booked) != 0 {
		t.Errorf("booked = %v, want empty", day.Booked)
	}
	if len(day.Available) != len(day.Slots) {
		t.Errorf("available %d != slots %d on an empty day", len(day.Available), len(day.Slots))
	}
	if day.Hours.Open != "09:00" {
		t.Errorf("saturday open = %s, want 09:00", day.Hours.Open)
	}
}

func TestForDateFiltersConflicts(t *testing.T) {
	svc := NewService(&fakeTimes{byDate: map[string][]string{
		"2026-09-05": {"09:00"},
	}})

	day, err := svc.ForDate(context.Background(), "2026-09-05")
	if err != nil {
		t.Fatalf("for date: %v", err)
	}
	for _, slot := range day.Available {
		if slot < "12:30" {
			t.Errorf("slot %s overlaps the 09:00 booking", slot)
		}
	}
}

func TestForDateRejectsGarbage(t *testing.T) {
	svc := NewService(&fakeTimes{})
	_, err := svc.ForDate(context.Background(), "not-a-date")
	if !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("err = %v, want ErrInvalidRequest for malformed date", err)
	}
}

func TestForDateStorageErrorIsNotInvalidRequest(t *testing.T) {
	svc := NewService(&fakeTimes{err: errors.New("down")})
	_, err := svc.ForDate(context.Background(), "2026-09-05")
	if err == nil {
		t.Fatal("expected storage error to propagate")
	}
	if errors.Is(err, ErrInvalidRequest) {
		t.Errorf("storage error %v must not match ErrInvalidRequest", err)
	}
}

func TestFullyBookedBetween(t *testing.T) {
	// Monday 2026-09-07 has slots 15:30/16:00/16:30; one booking at 15:30
	// overlaps all three. Saturday 2026-09-05 has a single booking and
	// plenty of free slots left.
	svc := NewService(&fakeTimes{byDate: map[string][]string{
		"2026-09-07": {"15:30"},
		"2026-09-05": {"09:00"},
	}})

	full, err := svc.FullyBookedBetween(context.Background(), "2026-09-01", "2026-09-10")
	if err != nil {
		t.Fatalf("fully booked: %v", err)
	}
	if len(full) != 1 || full[0] != "2026-09-07" {
		t.Errorf("fully booked = %v, want [2026-09-07]", full)
	}
}

func TestFullyBookedBetweenValidatesRange(t *testing.T) {
	svc := NewService(&fakeTimes{})
	ctx := context.Background()

	if _, err := svc.FullyBookedBetween(ctx, "2026-09-10", "2026-09-01"); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("inverted range: err = %v, want ErrInvalidRequest", err)
	}
	if _, err := svc.FullyBookedBetween(ctx, "2026-01-01", "2027-01-01"); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("oversized range: err = %v, want ErrInvalidRequest", err)
	}
	if _, err := svc.FullyBookedBetween(ctx, "garbage", "2026-09-01"); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("malformed start: err = %v, want ErrInvalidRequest", err)
	}
}

func TestFullyBookedPropagatesStorageErrors(t *testing.T) {
	svc := NewService(&fakeTimes{err: errors.New("down")})
	_, err := svc.FullyBookedBetween(context.Background(), "2026-09-01", "2026-09-02")
	if err == nil {
		t.Fatal("expected storage error to propagate")
	}
	if errors.Is(err, ErrInvalidRequest) {
		t.Errorf("storage error %v must not match ErrInvalidRequest", err)
	}
}
