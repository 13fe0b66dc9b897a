package inspections

import (
	"context"
	"time"

	"certflow-backend/internal/assignments"
	"certflow-backend/internal/domain"
	"certflow-backend/internal/periodevents"
	"certflow-backend/internal/pkg/clock"
	"certflow-backend/internal/policy"
	"certflow-backend/internal/workcal"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Service records inspections against active validation periods and drives
// the period lifecycle: unit accumulation, completion with rollover to the
// next period, and expiry with certification lapse.
type Service struct {
	DB     *gorm.DB
	Policy *policy.Provider
	Clock  clock.Clock
	Events periodevents.Recorder
}

type RecordInput struct {
	AssignmentID uuid.UUID
	// PeriodID optionally pins the period the caller observed. When it no
	// longer is the active period the submission is rejected so the caller
	// re-fetches instead of accumulating into a closed window.
	PeriodID    *uuid.UUID
	AuditTypeID uuid.UUID
	AuditorID   uuid.UUID
	InspectedOn time.Time
	Units       int
	Result      *string
	OrderRef    *string
	Notes       *string
}

// Record runs the full submission sequence in one transaction: accumulate the
// inspection's units into the active period, complete and roll over when the
// quota is reached, otherwise check the period for expiry. Either every step
// commits or none does.
func (s *Service) Record(ctx context.Context, in RecordInput) (*domain.Inspection, *domain.ValidationPeriod, error) {
	if in.Units <= 0 {
		return nil, nil, ErrInvalidUnitCount
	}
	inspectedOn := workcal.DateOnly(in.InspectedOn)

	var (
		inspection   *domain.Inspection
		activePeriod *domain.ValidationPeriod
	)

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var assignment domain.Assignment
		if err := tx.Where("assignment_id = ?", in.AssignmentID).First(&assignment).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrAssignmentNotFound
			}
			return err
		}

		var auditType domain.ProductAuditType
		if err := tx.Where("audit_type_id = ?", in.AuditTypeID).First(&auditType).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrAuditTypeNotFound
			}
			return err
		}

		var auditor domain.Auditor
		if err := tx.Where("auditor_id = ?", in.AuditorID).First(&auditor).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrAuditorNotFound
			}
			return err
		}

		var period domain.ValidationPeriod
		err := tx.Where("assignment_id = ? AND is_active = ?", in.AssignmentID, true).First(&period).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrPeriodNotActive
			}
			return err
		}
		if in.PeriodID != nil && *in.PeriodID != period.PeriodID {
			return ErrPeriodNotActive
		}
		if inspectedOn.Before(period.StartsOn) || inspectedOn.After(period.EndsOn) {
			return ErrDateOutOfRange
		}

		inspection = &domain.Inspection{
			AssignmentID: assignment.AssignmentID,
			PeriodID:     period.PeriodID,
			AuditTypeID:  in.AuditTypeID,
			AuditorID:    in.AuditorID,
			InspectedOn:  inspectedOn,
			Units:        in.Units,
			Result:       in.Result,
			OrderRef:     in.OrderRef,
			Notes:        in.Notes,
		}
		if err := tx.Create(inspection).Error; err != nil {
			return err
		}

		// Accumulate audited units, not inspection count.
		period.AccumulatedUnits += in.Units
		if err := tx.Model(&period).Update("accumulated_units", period.AccumulatedUnits).Error; err != nil {
			return err
		}

		if period.AccumulatedUnits >= period.RequiredUnits {
			next, err := s.completeAndRollOver(tx, &assignment, &period, inspectedOn)
			if err != nil {
				return err
			}
			activePeriod = next
			return nil
		}

		if err := s.expireIfDue(tx, &assignment, &period, s.Clock.Today()); err != nil {
			return err
		}
		activePeriod = &period
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return inspection, activePeriod, nil
}

// completeAndRollOver closes the period as completed and opens the successor,
// starting the next working day after the triggering inspection. Runs inside
// the submission transaction so completion and rollover are atomic.
func (s *Service) completeAndRollOver(tx *gorm.DB, assignment *domain.Assignment, period *domain.ValidationPeriod, inspectedOn time.Time) (*domain.ValidationPeriod, error) {
	period.IsCompleted = true
	period.IsActive = false
	period.CompletedOn = &inspectedOn
	if err := tx.Model(period).Updates(map[string]interface{}{
		"is_completed": true,
		"is_active":    false,
		"completed_on": inspectedOn,
	}).Error; err != nil {
		return nil, err
	}

	err := s.Events.Record(tx, assignment.AssignmentID, period.PeriodID, domain.EventPeriodCompleted, map[string]interface{}{
		"sequence":          period.Sequence,
		"accumulated_units": period.AccumulatedUnits,
		"required_units":    period.RequiredUnits,
		"completed_on":      inspectedOn.Format("2006-01-02"),
	})
	if err != nil {
		return nil, err
	}

	return assignments.OpenPeriod(tx, s.Policy, s.Events, assignment, period.Sequence+1, workcal.NextWorkingDay(inspectedOn))
}

// expireIfDue expires an open period whose end date has passed and lapses the
// owning assignment. A no-op on already-closed periods or when the window is
// still open; the end date itself is still in range.
func (s *Service) expireIfDue(tx *gorm.DB, assignment *domain.Assignment, period *domain.ValidationPeriod, today time.Time) error {
	if !period.IsOpen() || !workcal.DateOnly(today).After(period.EndsOn) {
		return nil
	}

	period.IsActive = false
	if err := tx.Model(period).Update("is_active", false).Error; err != nil {
		return err
	}
	if err := assignments.Lapse(tx, assignment, period.EndsOn); err != nil {
		return err
	}

	err := s.Events.Record(tx, assignment.AssignmentID, period.PeriodID, domain.EventPeriodExpired, map[string]interface{}{
		"sequence":          period.Sequence,
		"accumulated_units": period.AccumulatedUnits,
		"required_units":    period.RequiredUnits,
		"ends_on":           period.EndsOn.Format("2006-01-02"),
	})
	if err != nil {
		return err
	}
	return s.Events.Record(tx, assignment.AssignmentID, period.PeriodID, domain.EventAssignmentLapsed, map[string]interface{}{
		"lapsed_on": period.EndsOn.Format("2006-01-02"),
	})
}

// SweepExpired expires every open period whose end date lies before today and
// lapses the owning assignments. Each period runs in its own transaction so
// one failure does not block the rest. Returns the count of newly expired
// periods; a second sweep with the same date returns 0.
func (s *Service) SweepExpired(ctx context.Context, today time.Time) (int, error) {
	today = workcal.DateOnly(today)

	var due []domain.ValidationPeriod
	err := s.DB.WithContext(ctx).
		Where("is_active = ? AND is_completed = ? AND ends_on < ?", true, false, today).
		Find(&due).Error
	if err != nil {
		return 0, err
	}

	expired := 0
	for i := range due {
		period := due[i]
		err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var assignment domain.Assignment
			if err := tx.Where("assignment_id = ?", period.AssignmentID).First(&assignment).Error; err != nil {
				return err
			}
			return s.expireIfDue(tx, &assignment, &period, today)
		})
		if err != nil {
			log.Error().Err(err).
				Str("period_id", period.PeriodID.String()).
				Str("assignment_id", period.AssignmentID.String()).
				Msg("Expiry sweep failed for period")
			continue
		}
		expired++
	}

	if expired > 0 {
		log.Info().Int("expired", expired).Str("today", today.Format("2006-01-02")).Msg("Expiry sweep closed periods")
	}
	return expired, nil
}

type ListFilter struct {
	AssignmentID *uuid.UUID
	PeriodID     *uuid.UUID
}

func (s *Service) GetAll(ctx context.Context, filter ListFilter) ([]domain.Inspection, error) {
	q := s.DB.WithContext(ctx).
		Preload("AuditType").
		Preload("Auditor").
		Order("inspected_on DESC, created_at DESC")
	if filter.AssignmentID != nil {
		q = q.Where("assignment_id = ?", *filter.AssignmentID)
	}
	if filter.PeriodID != nil {
		q = q.Where("period_id = ?", *filter.PeriodID)
	}
	var rows []domain.Inspection
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Service) GetByID(ctx context.Context, inspectionID uuid.UUID) (*domain.Inspection, error) {
	var row domain.Inspection
	err := s.DB.WithContext(ctx).
		Preload("Assignment.Operator").
		Preload("Assignment.Certification").
		Preload("Period").
		Preload("AuditType").
		Preload("Auditor").
		Where("inspection_id = ?", inspectionID).
		First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrInspectionNotFound
		}
		return nil, err
	}
	return &row, nil
}

// Lookup returns the audit types available under an assignment's
// certification plus the assignment's active period, for inspection entry
// forms that populate both from one call.
type LookupResult struct {
	AuditTypes []domain.ProductAuditType `json:"audit_types"`
	Period     *domain.ValidationPeriod  `json:"period"`
}

func (s *Service) Lookup(ctx context.Context, assignmentID uuid.UUID) (*LookupResult, error) {
	var assignment domain.Assignment
	err := s.DB.WithContext(ctx).Where("assignment_id = ?", assignmentID).First(&assignment).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}

	var auditTypes []domain.ProductAuditType
	err = s.DB.WithContext(ctx).
		Where("certification_id = ? AND is_active = ?", assignment.CertificationID, true).
		Order("name ASC").
		Find(&auditTypes).Error
	if err != nil {
		return nil, err
	}

	result := &LookupResult{AuditTypes: auditTypes}

	var period domain.ValidationPeriod
	err = s.DB.WithContext(ctx).
		Where("assignment_id = ? AND is_active = ?", assignmentID, true).
		First(&period).Error
	if err == nil {
		result.Period = &period
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	return result, nil
}
