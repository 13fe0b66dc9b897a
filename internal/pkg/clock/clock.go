// Package clock abstracts "today" so lifecycle checks are testable with fixed dates.
package clock

import (
	"time"

	"certflow-backend/internal/workcal"
)

type Clock interface {
	Today() time.Time
}

// System reads the real wall clock (UTC, date only).
type System struct{}

func (System) Today() time.Time {
	return workcal.DateOnly(time.Now().UTC())
}

// Fixed always reports the same day. For tests and date-overridable endpoints.
type Fixed struct {
	Day time.Time
}

func (f Fixed) Today() time.Time {
	return workcal.DateOnly(f.Day)
}
