package schedule

// BusinessHours is the opening window for a single date. Close is the
// latest possible end of service, not the latest start.
type BusinessHours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

var (
	weekdayHours = BusinessHours{Open: "15:30", Close: "20:00"}
	weekendHours = BusinessHours{Open: "09:00", Close: "20:00"}
)

// BusinessHoursFor returns the opening window for a date. Weekdays run a
// short after-hours window; weekends run a full day.
func BusinessHoursFor(date string) BusinessHours {
	d, err := ParseDate(date)
	if err != nil {
		return weekdayHours
	}
	if IsWeekend(d) {
		return weekendHours
	}
	return weekdayHours
}
