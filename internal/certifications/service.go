package certifications

import (
	"context"
	"errors"

	"certflow-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCertificationNotFound = errors.New("Certification not found")
	ErrDuplicateName         = errors.New("A certification with this name already exists")
)

type Service struct {
	DB *gorm.DB
}

type CreateInput struct {
	Name        string
	Description *string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Certification, error) {
	var existing int64
	if err := s.DB.WithContext(ctx).Model(&domain.Certification{}).
		Where("name = ?", in.Name).Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrDuplicateName
	}

	row := &domain.Certification{
		Name:        in.Name,
		Description: in.Description,
		IsActive:    true,
	}
	if err := s.DB.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

type UpdateInput struct {
	Name        *string
	Description *string
	IsActive    *bool
}

func (s *Service) Update(ctx context.Context, certificationID uuid.UUID, in UpdateInput) (*domain.Certification, error) {
	var row domain.Certification
	if err := s.DB.WithContext(ctx).Where("certification_id = ?", certificationID).First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCertificationNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Name != nil && *in.Name != "" && *in.Name != row.Name {
		var clash int64
		if err := s.DB.WithContext(ctx).Model(&domain.Certification{}).
			Where("name = ? AND certification_id <> ?", *in.Name, certificationID).
			Count(&clash).Error; err != nil {
			return nil, err
		}
		if clash > 0 {
			return nil, ErrDuplicateName
		}
		updates["name"] = *in.Name
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}
	if len(updates) == 0 {
		return &row, nil
	}
	if err := s.DB.WithContext(ctx).Model(&row).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Service) GetAll(ctx context.Context) ([]domain.Certification, error) {
	var rows []domain.Certification
	if err := s.DB.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Service) GetByID(ctx context.Context, certificationID uuid.UUID) (*domain.Certification, error) {
	var row domain.Certification
	if err := s.DB.WithContext(ctx).Where("certification_id = ?", certificationID).First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCertificationNotFound
		}
		return nil, err
	}
	return &row, nil
}
