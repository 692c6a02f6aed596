package schedule

// Overlaps reports whether two service windows of the given duration
// intersect. Windows are half-open [start, start+duration): touching
// endpoints do not overlap, so two appointments may abut exactly.
func Overlaps(t1, t2 string, duration int) bool {
	start1 := TimeToMinutes(t1)
	start2 := TimeToMinutes(t2)
	return start1 < start2+duration && start2 < start1+duration
}

// SlotsOverlap reports whether two appointment start times conflict under
// the fixed service duration.
func SlotsOverlap(t1, t2 string) bool {
	return Overlaps(t1, t2, ServiceDuration)
}

// FilterAvailableSlots keeps the candidates that conflict with none of the
// existing booking times.
func FilterAvailableSlots(candidates, existing []string) []string {
	filtered := make([]string, 0, len(candidates))
	for _, slot := range candidates {
		conflict := false
		for _, taken := range existing {
			if SlotsOverlap(slot, taken) {
				conflict = true
				break
			}
		}
		if !conflict {
			filtered = append(filtered, slot)
		}
	}
	return filtered
}
