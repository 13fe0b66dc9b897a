package criticality

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func stats(start, end time.Time, accumulated, required int) PeriodStats {
	return PeriodStats{
		StartsOn:         start,
		EndsOn:           end,
		AccumulatedUnits: accumulated,
		RequiredUnits:    required,
	}
}

func TestEvaluate_OverdueIsCritical(t *testing.T) {
	p := stats(date(2024, 1, 1), date(2024, 6, 30), 28, 29)

	res := Evaluate(p, date(2024, 7, 1))
	assert.Equal(t, LevelCritical, res.Level)
	assert.True(t, res.Flagged)
	assert.Equal(t, -1, res.DaysRemaining)

	// The end date itself counts as overdue for triage purposes.
	res = Evaluate(p, date(2024, 6, 30))
	assert.Equal(t, LevelCritical, res.Level)
	assert.Equal(t, 0, res.DaysRemaining)
}

func TestEvaluate_NearDeadline(t *testing.T) {
	// Good unit progress keeps the pace rules quiet so only the deadline rule fires.
	p := stats(date(2024, 1, 1), date(2024, 6, 30), 20, 29)

	res := Evaluate(p, date(2024, 6, 23)) // 7 days left
	assert.Equal(t, LevelCritical, res.Level)
	assert.True(t, res.Flagged)

	res = Evaluate(p, date(2024, 6, 15)) // 15 days left
	assert.Equal(t, LevelHigh, res.Level)

	res = Evaluate(p, date(2024, 6, 10)) // 20 days left
	assert.Equal(t, LevelMedium, res.Level)
}

func TestEvaluate_SlowPace(t *testing.T) {
	// Long window, more than half elapsed, far from the deadline rules.
	p := stats(date(2024, 1, 1), date(2024, 11, 1), 5, 29)

	res := Evaluate(p, date(2024, 7, 1)) // ~17% units, ~60% time, 123 days left
	assert.Equal(t, LevelCritical, res.Level)
	assert.True(t, res.Flagged)
	assert.Equal(t, 123, res.DaysRemaining)

	p.AccumulatedUnits = 9 // ~31% units
	res = Evaluate(p, date(2024, 7, 1))
	assert.Equal(t, LevelHigh, res.Level)
}

func TestEvaluate_LowVolumeNearHorizon(t *testing.T) {
	// Under 10 units with fewer than 60 days left, before the pace rules engage.
	p := stats(date(2024, 3, 1), date(2024, 5, 30), 5, 29)

	res := Evaluate(p, date(2024, 4, 5)) // 55 days left, ~39% time
	assert.Equal(t, LevelHigh, res.Level)
	assert.True(t, res.Flagged)
}

func TestEvaluate_EscalateOnly(t *testing.T) {
	// Deadline says critical while the pace rules alone would say medium;
	// the fold must keep the critical.
	p := stats(date(2024, 1, 1), date(2024, 6, 30), 13, 29)

	res := Evaluate(p, date(2024, 6, 24)) // 6 days left
	assert.Equal(t, LevelCritical, res.Level)
}

func TestEvaluate_HealthyPeriod(t *testing.T) {
	p := stats(date(2024, 1, 1), date(2024, 11, 1), 25, 29)

	res := Evaluate(p, date(2024, 3, 1))
	assert.Equal(t, LevelNormal, res.Level)
	assert.False(t, res.Flagged)
	assert.Equal(t, 4, res.UnitsMissing)
}

func TestEvaluate_ZeroRequiredUnits(t *testing.T) {
	p := stats(date(2024, 1, 1), date(2024, 11, 1), 0, 0)

	res := Evaluate(p, date(2024, 3, 1))
	assert.Equal(t, 0.0, res.PctUnits)
}

func TestEvaluate_Rounding(t *testing.T) {
	p := stats(date(2024, 1, 1), date(2024, 11, 1), 10, 29)

	res := Evaluate(p, date(2024, 3, 1))
	assert.Equal(t, 34.5, res.PctUnits) // 10/29 = 34.48...
	assert.Equal(t, 19.7, res.PctTime)  // 60/305 = 19.67...
}

func TestLevelJSONRoundTrip(t *testing.T) {
	b, err := LevelHigh.MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, `"high"`, string(b))

	var l Level
	assert.NoError(t, l.UnmarshalJSON([]byte(`"critical"`)))
	assert.Equal(t, LevelCritical, l)
}

func ranked(level Level, pctUnits float64, unitsMissing, daysRemaining int) Ranked {
	return Ranked{Result: Result{
		Level:         level,
		PctUnits:      pctUnits,
		UnitsMissing:  unitsMissing,
		DaysRemaining: daysRemaining,
	}}
}

func TestSortTriage(t *testing.T) {
	rs := []Ranked{
		ranked(LevelHigh, 40, 10, 20),
		ranked(LevelCritical, 30, 25, 5),
		ranked(LevelCritical, 10, 28, 40),
		ranked(LevelMedium, 50, 8, 25),
		ranked(LevelCritical, 10, 27, 12),
	}

	SortTriage(rs)

	assert.Equal(t, LevelCritical, rs[0].Level)
	assert.Equal(t, 10.0, rs[0].PctUnits)
	assert.Equal(t, 12, rs[0].DaysRemaining) // ties on pct_units break on deadline
	assert.Equal(t, 40, rs[1].DaysRemaining)
	assert.Equal(t, 30.0, rs[2].PctUnits)
	assert.Equal(t, LevelHigh, rs[3].Level)
	assert.Equal(t, LevelMedium, rs[4].Level)
}

func TestSortOpenList(t *testing.T) {
	rs := []Ranked{
		ranked(LevelHigh, 40, 12, 20),
		ranked(LevelCritical, 30, 20, 15),
		ranked(LevelCritical, 20, 25, 9),
		ranked(LevelHigh, 45, 12, 8),
	}

	SortOpenList(rs)

	assert.Equal(t, 25, rs[0].UnitsMissing)
	assert.Equal(t, 20, rs[1].UnitsMissing)
	// Equal units missing: nearest deadline first.
	assert.Equal(t, 8, rs[2].DaysRemaining)
	assert.Equal(t, 20, rs[3].DaysRemaining)
}
