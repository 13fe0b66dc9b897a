// Package workcal does working-day date arithmetic. Working days are Monday
// through Friday; holiday calendars are out of scope.
package workcal

import "time"

// DateOnly truncates t to midnight UTC so date comparisons ignore time of day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// IsWorkingDay reports whether t falls on Monday through Friday.
func IsWorkingDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// NextWorkingDay returns the first working day strictly after t.
func NextWorkingDay(t time.Time) time.Time {
	d := DateOnly(t).AddDate(0, 0, 1)
	for !IsWorkingDay(d) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// AddWorkingDays returns the date reached after counting n working days,
// counting start itself as day 1 when it is a working day. A window of n
// working days therefore spans n calendar days plus any weekends crossed.
func AddWorkingDays(start time.Time, n int) time.Time {
	d := DateOnly(start)
	if n <= 0 {
		return d
	}
	counted := 0
	for {
		if IsWorkingDay(d) {
			counted++
		}
		if counted >= n {
			return d
		}
		d = d.AddDate(0, 0, 1)
	}
}
