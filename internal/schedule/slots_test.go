package schedule

import "testing"

const (
	testWeekday  = "2026-09-07" // Monday
	testSaturday = "2026-09-05"
)

func TestBusinessHoursFor(t *testing.T) {
	wk := BusinessHoursFor(testWeekday)
	if wk.Open != "15:30" || wk.Close != "20:00" {
		t.Errorf("weekday hours = %+v", wk)
	}
	we := BusinessHoursFor(testSaturday)
	if we.Open != "09:00" || we.Close != "20:00" {
		t.Errorf("weekend hours = %+v", we)
	}
}

func TestAvailableSlotsWeekday(t *testing.T) {
	slots := AvailableSlots(testWeekday)
	want := []string{"15:30", "16:00", "16:30"}
	if len(slots) != len(want) {
		t.Fatalf("weekday slots = %v, want %v", slots, want)
	}
	for i := range want {
		if slots[i] != want[i] {
			t.Errorf("slot %d = %s, want %s", i, slots[i], want[i])
		}
	}
}

func TestAvailableSlotsWeekend(t *testing.T) {
	slots := AvailableSlots(testSaturday)
	if len(slots) == 0 {
		t.Fatal("expected weekend slots")
	}
	if slots[0] != "09:00" {
		t.Errorf("first weekend slot = %s, want 09:00", slots[0])
	}
	if last := slots[len(slots)-1]; last != "16:30" {
		t.Errorf("last weekend slot = %s, want 16:30", last)
	}
}

func TestAvailableSlotsBounds(t *testing.T) {
	for _, date := range []string{testWeekday, testSaturday} {
		hours := BusinessHoursFor(date)
		open := TimeToMinutes(hours.Open)
		closing := TimeToMinutes(hours.Close)
		slots := AvailableSlots(date)
		for i, slot := range slots {
			start := TimeToMinutes(slot)
			if start < open {
				t.Errorf("%s slot %s before open", date, slot)
			}
			if start+ServiceDuration > closing {
				t.Errorf("%s slot %s runs past close", date, slot)
			}
			if i > 0 && start-TimeToMinutes(slots[i-1]) != SlotInterval {
				t.Errorf("%s slots %s and %s not %d minutes apart", date, slots[i-1], slot, SlotInterval)
			}
		}
	}
}
