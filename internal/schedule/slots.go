package schedule

// AvailableSlots enumerates the bookable start times for a date, ascending,
// every SlotInterval minutes from opening. A slot is only emitted when the
// full service window fits before closing; the result is empty when the
// window is shorter than ServiceDuration.
//
// Ordering is for display determinism only. First-come-first-served is
// enforced at the storage layer, not by slot order.
func AvailableSlots(date string) []string {
	hours := BusinessHoursFor(date)
	open := TimeToMinutes(hours.Open)
	latestStart := TimeToMinutes(hours.Close) - ServiceDuration

	var slots []string
	for current := open; current <= latestStart; current += SlotInterval {
		slots = append(slots, MinutesToTime(current))
	}
	return slots
}
