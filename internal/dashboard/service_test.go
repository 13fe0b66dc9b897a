package dashboard

import (
	"context"
	"testing"
	"time"

	"certflow-backend/internal/criticality"
	"certflow-backend/internal/domain"
	"certflow-backend/internal/inspections"
	"certflow-backend/internal/periodevents"
	"certflow-backend/internal/pkg/clock"
	"certflow-backend/internal/policy"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func setupDashboardTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Operator{},
		&domain.Certification{},
		&domain.InspectionPolicy{},
		&domain.Assignment{},
		&domain.ValidationPeriod{},
		&domain.PeriodEvent{},
	))

	sweeper := &inspections.Service{
		DB:     db,
		Policy: &policy.Provider{DB: db},
		Clock:  clock.Fixed{Day: day(2024, 6, 14)},
		Events: periodevents.Recorder{},
	}
	return &Service{DB: db, Sweeper: sweeper}, db
}

// seedOpenPeriod inserts an assignment with a single open period directly.
func seedOpenPeriod(t *testing.T, db *gorm.DB, operatorName string, cert *domain.Certification, startsOn, endsOn time.Time, accumulated int) *domain.ValidationPeriod {
	t.Helper()
	operator := &domain.Operator{FirstName: operatorName, IsActive: true}
	require.NoError(t, db.Create(operator).Error)
	assignment := &domain.Assignment{
		OperatorID:      operator.OperatorID,
		CertificationID: cert.CertificationID,
		AssignedOn:      startsOn,
		IsActive:        true,
	}
	require.NoError(t, db.Create(assignment).Error)
	period := &domain.ValidationPeriod{
		AssignmentID:        assignment.AssignmentID,
		Sequence:            1,
		StartsOn:            startsOn,
		EndsOn:              endsOn,
		RequiredWorkingDays: 180,
		RequiredUnits:       29,
		AccumulatedUnits:    accumulated,
		IsActive:            true,
	}
	require.NoError(t, db.Create(period).Error)
	return period
}

func TestTriage_RanksFlaggedPeriodsOnly(t *testing.T) {
	s, db := setupDashboardTest(t)
	cert := &domain.Certification{Name: "Visual Weld Inspection", IsActive: true}
	require.NoError(t, db.Create(cert).Error)

	today := day(2024, 6, 14)
	// 5 days left: critical.
	critical := seedOpenPeriod(t, db, "Ana", cert, day(2024, 1, 1), day(2024, 6, 19), 20)
	// 12 days left: high.
	high := seedOpenPeriod(t, db, "Bruno", cert, day(2024, 1, 1), day(2024, 6, 26), 20)
	// Far deadline, near-complete: healthy, stays off the triage list.
	seedOpenPeriod(t, db, "Carla", cert, day(2024, 1, 1), day(2024, 12, 31), 28)

	ranked, err := s.Triage(context.Background(), today)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, critical.PeriodID, ranked[0].PeriodID)
	assert.Equal(t, criticality.LevelCritical, ranked[0].Level)
	assert.Equal(t, "Ana", ranked[0].OperatorName)
	assert.Equal(t, "Visual Weld Inspection", ranked[0].CertificationName)
	assert.Equal(t, high.PeriodID, ranked[1].PeriodID)
	assert.Equal(t, criticality.LevelHigh, ranked[1].Level)
}

func TestTriage_SweepsOverdueBeforeRanking(t *testing.T) {
	s, db := setupDashboardTest(t)
	cert := &domain.Certification{Name: "Visual Weld Inspection", IsActive: true}
	require.NoError(t, db.Create(cert).Error)

	overdue := seedOpenPeriod(t, db, "Ana", cert, day(2024, 1, 1), day(2024, 6, 10), 12)

	ranked, err := s.Triage(context.Background(), day(2024, 6, 14))
	require.NoError(t, err)
	assert.Empty(t, ranked)

	// The overdue period was expired, not ranked.
	var reloaded domain.ValidationPeriod
	require.NoError(t, db.Where("period_id = ?", overdue.PeriodID).First(&reloaded).Error)
	assert.False(t, reloaded.IsActive)

	var assignment domain.Assignment
	require.NoError(t, db.Where("assignment_id = ?", overdue.AssignmentID).First(&assignment).Error)
	assert.False(t, assignment.IsActive)
}

func TestTriage_BoundedAtLimit(t *testing.T) {
	s, db := setupDashboardTest(t)
	cert := &domain.Certification{Name: "Visual Weld Inspection", IsActive: true}
	require.NoError(t, db.Create(cert).Error)

	names := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L"}
	for _, n := range names {
		seedOpenPeriod(t, db, n, cert, day(2024, 1, 1), day(2024, 6, 26), 20)
	}

	ranked, err := s.Triage(context.Background(), day(2024, 6, 14))
	require.NoError(t, err)
	assert.Len(t, ranked, criticality.TriageLimit)
}

func TestTriage_CachesSnapshotPerDay(t *testing.T) {
	s, db := setupDashboardTest(t)
	mr := miniredis.RunT(t)
	s.Cache = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s.CacheTTL = time.Minute

	cert := &domain.Certification{Name: "Visual Weld Inspection", IsActive: true}
	require.NoError(t, db.Create(cert).Error)
	seedOpenPeriod(t, db, "Ana", cert, day(2024, 1, 1), day(2024, 6, 19), 20)

	today := day(2024, 6, 14)
	first, err := s.Triage(context.Background(), today)
	require.NoError(t, err)
	require.Len(t, first, 1)

	key := "dashboard:triage:2024-06-14"
	assert.True(t, mr.Exists(key))
	assert.Greater(t, mr.TTL(key), time.Duration(0))

	// A DB change inside the TTL window is not reflected: the snapshot is
	// served from cache.
	require.NoError(t, db.Model(&domain.ValidationPeriod{}).
		Where("1 = 1").Update("accumulated_units", 29).Error)
	second, err := s.Triage(context.Background(), today)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].PeriodID, second[0].PeriodID)
	assert.Equal(t, first[0].Level, second[0].Level)

	// A different evaluation date misses the cache.
	assert.False(t, mr.Exists("dashboard:triage:2024-06-17"))
}

func TestOpenPeriods_IncludesHealthyRows(t *testing.T) {
	s, db := setupDashboardTest(t)
	cert := &domain.Certification{Name: "Visual Weld Inspection", IsActive: true}
	require.NoError(t, db.Create(cert).Error)

	flagged := seedOpenPeriod(t, db, "Ana", cert, day(2024, 1, 1), day(2024, 6, 19), 20)
	healthy := seedOpenPeriod(t, db, "Carla", cert, day(2024, 1, 1), day(2024, 12, 31), 28)

	ranked, err := s.OpenPeriods(context.Background(), day(2024, 6, 14))
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	// Severity first, so the flagged row leads.
	assert.Equal(t, flagged.PeriodID, ranked[0].PeriodID)
	assert.Equal(t, healthy.PeriodID, ranked[1].PeriodID)
	assert.Equal(t, criticality.LevelNormal, ranked[1].Level)
	assert.False(t, ranked[1].Flagged)
	assert.Equal(t, 1, ranked[1].UnitsMissing)
}
