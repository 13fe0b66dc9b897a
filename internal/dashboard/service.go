package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"certflow-backend/internal/criticality"
	"certflow-backend/internal/domain"
	"certflow-backend/internal/inspections"
	"certflow-backend/internal/workcal"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Service evaluates open periods for triage. Reads run the expiry sweep first
// so dashboards never rank a period that should already have lapsed.
type Service struct {
	DB       *gorm.DB
	Sweeper  *inspections.Service
	Cache    *redis.Client
	CacheTTL time.Duration
}

const triageCacheKeyPrefix = "dashboard:triage:"

// Triage returns the bounded flagged-period list, most urgent first. The
// snapshot is cached per evaluation date; TTL-based, no write invalidation.
func (s *Service) Triage(ctx context.Context, today time.Time) ([]criticality.Ranked, error) {
	today = workcal.DateOnly(today)
	cacheKey := triageCacheKeyPrefix + today.Format("2006-01-02")

	if s.Cache != nil {
		raw, err := s.Cache.Get(ctx, cacheKey).Result()
		if err == nil {
			var cached []criticality.Ranked
			if jsonErr := json.Unmarshal([]byte(raw), &cached); jsonErr == nil {
				return cached, nil
			}
		} else if err != redis.Nil {
			log.Warn().Err(err).Msg("Triage cache read failed; recomputing")
		}
	}

	all, err := s.evaluateOpen(ctx, today)
	if err != nil {
		return nil, err
	}

	flagged := make([]criticality.Ranked, 0, len(all))
	for _, r := range all {
		if r.Flagged {
			flagged = append(flagged, r)
		}
	}
	criticality.SortTriage(flagged)
	if len(flagged) > criticality.TriageLimit {
		flagged = flagged[:criticality.TriageLimit]
	}

	if s.Cache != nil {
		if payload, jsonErr := json.Marshal(flagged); jsonErr == nil {
			ttl := s.CacheTTL
			if ttl <= 0 {
				ttl = 5 * time.Minute
			}
			if err := s.Cache.Set(ctx, cacheKey, payload, ttl).Err(); err != nil {
				log.Warn().Err(err).Msg("Triage cache write failed")
			}
		}
	}
	return flagged, nil
}

// OpenPeriods returns every open period ranked for the full list view.
func (s *Service) OpenPeriods(ctx context.Context, today time.Time) ([]criticality.Ranked, error) {
	today = workcal.DateOnly(today)
	all, err := s.evaluateOpen(ctx, today)
	if err != nil {
		return nil, err
	}
	criticality.SortOpenList(all)
	return all, nil
}

func (s *Service) evaluateOpen(ctx context.Context, today time.Time) ([]criticality.Ranked, error) {
	// Sweep-on-read: expire overdue periods before ranking what remains.
	if _, err := s.Sweeper.SweepExpired(ctx, today); err != nil {
		return nil, err
	}

	var periods []domain.ValidationPeriod
	err := s.DB.WithContext(ctx).
		Preload("Assignment.Operator").
		Preload("Assignment.Certification").
		Where("is_active = ? AND is_completed = ?", true, false).
		Find(&periods).Error
	if err != nil {
		return nil, err
	}

	ranked := make([]criticality.Ranked, 0, len(periods))
	for i := range periods {
		p := periods[i]
		r := criticality.Ranked{
			PeriodID:     p.PeriodID,
			AssignmentID: p.AssignmentID,
			Sequence:     p.Sequence,
			EndsOn:       p.EndsOn,
			Result: criticality.Evaluate(criticality.PeriodStats{
				StartsOn:         p.StartsOn,
				EndsOn:           p.EndsOn,
				AccumulatedUnits: p.AccumulatedUnits,
				RequiredUnits:    p.RequiredUnits,
			}, today),
		}
		if p.Assignment != nil {
			if p.Assignment.Operator != nil {
				r.OperatorName = p.Assignment.Operator.FullName()
			}
			if p.Assignment.Certification != nil {
				r.CertificationName = p.Assignment.Certification.Name
			}
		}
		ranked = append(ranked, r)
	}
	return ranked, nil
}
