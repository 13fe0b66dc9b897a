// Package criticality derives a triage level for open validation periods.
// It is pure: no persistence, no clock access — callers pass period stats and
// the evaluation date.
package criticality

import (
	"encoding/json"
	"math"
	"sort"
	"time"

	"certflow-backend/internal/workcal"

	"github.com/google/uuid"
)

// Level is the urgency of an open period. Higher values are more severe; rule
// evaluation only ever escalates the running level, never downgrades it.
type Level int

const (
	LevelNormal Level = iota
	LevelMedium
	LevelHigh
	LevelCritical
)

func (l Level) String() string {
	switch l {
	case LevelCritical:
		return "critical"
	case LevelHigh:
		return "high"
	case LevelMedium:
		return "medium"
	default:
		return "normal"
	}
}

func (l Level) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

func (l *Level) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch s {
	case "critical":
		*l = LevelCritical
	case "high":
		*l = LevelHigh
	case "medium":
		*l = LevelMedium
	default:
		*l = LevelNormal
	}
	return nil
}

// escalate folds two levels taking the more severe one.
func escalate(a, b Level) Level {
	if b > a {
		return b
	}
	return a
}

// PeriodStats is the slice of a validation period the evaluator needs.
type PeriodStats struct {
	StartsOn         time.Time
	EndsOn           time.Time
	AccumulatedUnits int
	RequiredUnits    int
}

// Result is the triage outcome for one period on one day.
type Result struct {
	Level         Level   `json:"level"`
	DaysRemaining int     `json:"days_remaining"`
	PctUnits      float64 `json:"pct_units"`
	PctTime       float64 `json:"pct_time"`
	UnitsMissing  int     `json:"units_missing"`
	Flagged       bool    `json:"flagged"`
}

// TriageLimit bounds the triage list surfaced to dashboard callers.
const TriageLimit = 10

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func daysBetween(from, to time.Time) int {
	return int(workcal.DateOnly(to).Sub(workcal.DateOnly(from)).Hours() / 24)
}

// Evaluate runs the triage rules for one period. An overdue period is critical
// outright; otherwise every rule is applied independently and the most severe
// outcome wins.
func Evaluate(p PeriodStats, today time.Time) Result {
	daysRemaining := daysBetween(today, p.EndsOn)
	daysElapsed := daysBetween(p.StartsOn, today)
	if daysElapsed < 0 {
		daysElapsed = 0
	}
	daysTotal := daysBetween(p.StartsOn, p.EndsOn)
	if daysTotal < 1 {
		daysTotal = 1
	}

	var pctUnits float64
	if p.RequiredUnits > 0 {
		pctUnits = float64(p.AccumulatedUnits) / float64(p.RequiredUnits) * 100
	}
	pctTime := float64(daysElapsed) / float64(daysTotal) * 100

	res := Result{
		DaysRemaining: daysRemaining,
		PctUnits:      round1(pctUnits),
		PctTime:       round1(pctTime),
		UnitsMissing:  p.RequiredUnits - p.AccumulatedUnits,
	}

	// Overdue: past the end date, nothing else matters.
	if daysRemaining <= 0 {
		res.Level = LevelCritical
		res.Flagged = true
		return res
	}

	level := LevelNormal
	flagged := false

	// Near deadline.
	if daysRemaining <= 30 {
		flagged = true
		switch {
		case daysRemaining <= 7:
			level = escalate(level, LevelCritical)
		case daysRemaining <= 15:
			level = escalate(level, LevelHigh)
		default:
			level = escalate(level, LevelMedium)
		}
	}

	// Slow pace: under half the units with over half the window gone.
	if pctUnits < 50 && pctTime > 50 {
		flagged = true
		switch {
		case pctUnits < 25:
			level = escalate(level, LevelCritical)
		case pctUnits < 35:
			level = escalate(level, LevelHigh)
		default:
			level = escalate(level, LevelMedium)
		}
	}

	// Very low volume heading into the last two months.
	if p.AccumulatedUnits < 10 && daysRemaining < 60 {
		flagged = true
		level = escalate(level, LevelHigh)
	}

	// Stricter pace check, fires earlier in the window.
	if pctUnits < 40 && pctTime > 40 {
		flagged = true
		switch {
		case pctUnits < 20:
			level = escalate(level, LevelCritical)
		case pctUnits < 30:
			level = escalate(level, LevelHigh)
		default:
			level = escalate(level, LevelMedium)
		}
	}

	// Mid-horizon risk: under 60% of units with 90 days or fewer left.
	if daysRemaining <= 90 && pctUnits < 60 {
		flagged = true
		switch {
		case daysRemaining <= 30:
			level = escalate(level, LevelCritical)
		case daysRemaining <= 60:
			level = escalate(level, LevelHigh)
		default:
			level = escalate(level, LevelMedium)
		}
	}

	res.Level = level
	res.Flagged = flagged
	return res
}

// Ranked couples an evaluated period with the context dashboards display.
type Ranked struct {
	PeriodID          uuid.UUID `json:"period_id"`
	AssignmentID      uuid.UUID `json:"assignment_id"`
	OperatorName      string    `json:"operator_name"`
	CertificationName string    `json:"certification_name"`
	Sequence          int       `json:"sequence"`
	EndsOn            time.Time `json:"ends_on"`
	Result
}

// SortTriage orders flagged periods most severe first, then lowest unit
// progress, then nearest deadline.
func SortTriage(rs []Ranked) {
	sort.SliceStable(rs, func(i, j int) bool {
		if rs[i].Level != rs[j].Level {
			return rs[i].Level > rs[j].Level
		}
		if rs[i].PctUnits != rs[j].PctUnits {
			return rs[i].PctUnits < rs[j].PctUnits
		}
		return rs[i].DaysRemaining < rs[j].DaysRemaining
	})
}

// SortOpenList orders the full open-period list most severe first, then most
// units missing, then nearest deadline.
func SortOpenList(rs []Ranked) {
	sort.SliceStable(rs, func(i, j int) bool {
		if rs[i].Level != rs[j].Level {
			return rs[i].Level > rs[j].Level
		}
		if rs[i].UnitsMissing != rs[j].UnitsMissing {
			return rs[i].UnitsMissing > rs[j].UnitsMissing
		}
		return rs[i].DaysRemaining < rs[j].DaysRemaining
	})
}
