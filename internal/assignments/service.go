package assignments

import (
	"context"
	"time"

	"certflow-backend/internal/domain"
	"certflow-backend/internal/periodevents"
	"certflow-backend/internal/policy"
	"certflow-backend/internal/workcal"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	DB     *gorm.DB
	Policy *policy.Provider
	Events periodevents.Recorder
}

type CreateInput struct {
	OperatorID      uuid.UUID
	CertificationID uuid.UUID
	AssignedOn      time.Time
	Notes           *string
}

// Create opens a new assignment and its first validation period in one
// transaction. Rejects a second active assignment for the same operator and
// certification. The period snapshots the active policy parameters.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Assignment, *domain.ValidationPeriod, error) {
	var (
		assignment *domain.Assignment
		period     *domain.ValidationPeriod
	)

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var operator domain.Operator
		if err := tx.Where("operator_id = ?", in.OperatorID).First(&operator).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrOperatorNotFound
			}
			return err
		}

		var certification domain.Certification
		if err := tx.Where("certification_id = ?", in.CertificationID).First(&certification).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrCertificationNotFound
			}
			return err
		}

		var existing int64
		if err := tx.Model(&domain.Assignment{}).
			Where("operator_id = ? AND certification_id = ? AND is_active = ?", in.OperatorID, in.CertificationID, true).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrDuplicateActiveAssignment
		}

		assignment = &domain.Assignment{
			OperatorID:      in.OperatorID,
			CertificationID: in.CertificationID,
			AssignedOn:      workcal.DateOnly(in.AssignedOn),
			IsActive:        true,
			Notes:           in.Notes,
		}
		if err := tx.Create(assignment).Error; err != nil {
			return err
		}

		var err error
		period, err = OpenPeriod(tx, s.Policy, s.Events, assignment, 1, assignment.AssignedOn)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return assignment, period, nil
}

// OpenPeriod creates the next validation period for an assignment inside the
// caller's transaction: policy snapshot, end date from working-day arithmetic,
// zero accumulated units, active. Also writes the period_created event.
func OpenPeriod(tx *gorm.DB, provider *policy.Provider, events periodevents.Recorder, assignment *domain.Assignment, sequence int, startsOn time.Time) (*domain.ValidationPeriod, error) {
	params := provider.Active(tx)
	startsOn = workcal.DateOnly(startsOn)

	period := &domain.ValidationPeriod{
		AssignmentID:        assignment.AssignmentID,
		Sequence:            sequence,
		StartsOn:            startsOn,
		EndsOn:              workcal.AddWorkingDays(startsOn, params.RequiredWorkingDays),
		RequiredWorkingDays: params.RequiredWorkingDays,
		RequiredUnits:       params.RequiredUnits,
		AccumulatedUnits:    0,
		IsCompleted:         false,
		IsActive:            true,
	}
	if err := tx.Create(period).Error; err != nil {
		return nil, err
	}

	err := events.Record(tx, assignment.AssignmentID, period.PeriodID, domain.EventPeriodCreated, map[string]interface{}{
		"sequence":              period.Sequence,
		"starts_on":             period.StartsOn.Format("2006-01-02"),
		"ends_on":               period.EndsOn.Format("2006-01-02"),
		"required_working_days": period.RequiredWorkingDays,
		"required_units":        period.RequiredUnits,
	})
	if err != nil {
		return nil, err
	}
	return period, nil
}

// Lapse deactivates an assignment because a period expired. Idempotent: a
// second call on an already-lapsed assignment changes nothing.
func Lapse(tx *gorm.DB, assignment *domain.Assignment, lapsedOn time.Time) error {
	if !assignment.IsActive {
		return nil
	}
	lapsedOn = workcal.DateOnly(lapsedOn)
	assignment.IsActive = false
	assignment.LapsedOn = &lapsedOn
	return tx.Model(assignment).Updates(map[string]interface{}{
		"is_active": false,
		"lapsed_on": lapsedOn,
	}).Error
}

func (s *Service) GetAll(ctx context.Context, operatorID *uuid.UUID) ([]domain.Assignment, error) {
	q := s.DB.WithContext(ctx).
		Preload("Operator").
		Preload("Certification").
		Order("assigned_on DESC")
	if operatorID != nil {
		q = q.Where("operator_id = ?", *operatorID)
	}
	var rows []domain.Assignment
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetByID returns the assignment with its periods, newest first.
func (s *Service) GetByID(ctx context.Context, assignmentID uuid.UUID) (*domain.Assignment, error) {
	var row domain.Assignment
	err := s.DB.WithContext(ctx).
		Preload("Operator").
		Preload("Certification").
		Preload("Periods", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence DESC")
		}).
		Where("assignment_id = ?", assignmentID).
		First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	return &row, nil
}

// ActivePeriod returns the assignment's single active period.
func (s *Service) ActivePeriod(ctx context.Context, assignmentID uuid.UUID) (*domain.ValidationPeriod, error) {
	var period domain.ValidationPeriod
	err := s.DB.WithContext(ctx).
		Where("assignment_id = ? AND is_active = ?", assignmentID, true).
		First(&period).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &period, nil
}
