package workcal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsWorkingDay(t *testing.T) {
	assert.True(t, IsWorkingDay(date(2024, 1, 1)))  // Monday
	assert.True(t, IsWorkingDay(date(2024, 1, 5)))  // Friday
	assert.False(t, IsWorkingDay(date(2024, 1, 6))) // Saturday
	assert.False(t, IsWorkingDay(date(2024, 1, 7))) // Sunday
}

func TestNextWorkingDay(t *testing.T) {
	// Thursday -> Friday
	assert.Equal(t, date(2024, 1, 5), NextWorkingDay(date(2024, 1, 4)))
	// Friday -> Monday
	assert.Equal(t, date(2024, 1, 8), NextWorkingDay(date(2024, 1, 5)))
	// Saturday -> Monday
	assert.Equal(t, date(2024, 1, 8), NextWorkingDay(date(2024, 1, 6)))
}

func TestAddWorkingDays_CountsStartAsDayOne(t *testing.T) {
	// Monday + 5 working days ends that same Friday.
	assert.Equal(t, date(2024, 1, 5), AddWorkingDays(date(2024, 1, 1), 5))
	// A sixth working day crosses the weekend into Monday.
	assert.Equal(t, date(2024, 1, 8), AddWorkingDays(date(2024, 1, 1), 6))
}

func TestAddWorkingDays_WeekendStart(t *testing.T) {
	// Saturday start does not count itself; day 1 is Monday.
	assert.Equal(t, date(2024, 1, 8), AddWorkingDays(date(2024, 1, 6), 1))
	assert.Equal(t, date(2024, 1, 12), AddWorkingDays(date(2024, 1, 6), 5))
}

func TestAddWorkingDays_FullWindow(t *testing.T) {
	end := AddWorkingDays(date(2024, 1, 1), 180)

	// Walk the window and recount to confirm exactly 180 working days inclusive.
	counted := 0
	for d := date(2024, 1, 1); !d.After(end); d = d.AddDate(0, 0, 1) {
		if IsWorkingDay(d) {
			counted++
		}
	}
	assert.Equal(t, 180, counted)
	assert.True(t, IsWorkingDay(end))
	// 180 working days span 36 full weeks: 180 + 35*2 calendar days minimum.
	span := int(end.Sub(date(2024, 1, 1)).Hours()/24) + 1
	assert.Equal(t, 180+35*2, span)
}

func TestAddWorkingDays_ZeroOrNegative(t *testing.T) {
	assert.Equal(t, date(2024, 1, 6), AddWorkingDays(date(2024, 1, 6), 0))
	assert.Equal(t, date(2024, 1, 1), AddWorkingDays(date(2024, 1, 1), -3))
}

func TestDateOnly(t *testing.T) {
	ts := time.Date(2024, 3, 15, 17, 45, 12, 0, time.UTC)
	assert.Equal(t, date(2024, 3, 15), DateOnly(ts))
}
