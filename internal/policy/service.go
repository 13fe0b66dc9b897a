package policy

import (
	"context"
	"errors"
	"time"

	"certflow-backend/internal/domain"

	"gorm.io/gorm"
)

var ErrInvalidPolicyParams = errors.New("Policy parameters must be positive")

type Service struct {
	DB *gorm.DB
}

type CreateInput struct {
	RequiredWorkingDays int
	RequiredUnits       int
	EffectiveFrom       *time.Time
	EffectiveUntil      *time.Time
}

// Create inserts a new policy and makes it the single active one. Periods
// already open keep their snapshots; only periods created afterwards pick up
// the new parameters.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.InspectionPolicy, error) {
	if in.RequiredWorkingDays <= 0 || in.RequiredUnits <= 0 {
		return nil, ErrInvalidPolicyParams
	}

	row := &domain.InspectionPolicy{
		RequiredWorkingDays: in.RequiredWorkingDays,
		RequiredUnits:       in.RequiredUnits,
		IsActive:            true,
		EffectiveFrom:       in.EffectiveFrom,
		EffectiveUntil:      in.EffectiveUntil,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.InspectionPolicy{}).
			Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Create(row).Error
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (s *Service) GetAll(ctx context.Context) ([]domain.InspectionPolicy, error) {
	var rows []domain.InspectionPolicy
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetActive returns the active policy row, or nil when the defaults apply.
func (s *Service) GetActive(ctx context.Context) (*domain.InspectionPolicy, error) {
	var row domain.InspectionPolicy
	err := s.DB.WithContext(ctx).Where("is_active = ?", true).Order("created_at DESC").First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
