package operators

import (
	"context"
	"errors"

	"certflow-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrOperatorNotFound = errors.New("Operator not found")

type Service struct {
	DB *gorm.DB
}

type CreateInput struct {
	Code      *string
	FirstName string
	LastName  *string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Operator, error) {
	row := &domain.Operator{
		Code:      in.Code,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		IsActive:  true,
	}
	if err := s.DB.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

type UpdateInput struct {
	Code      *string
	FirstName *string
	LastName  *string
	IsActive  *bool
}

func (s *Service) Update(ctx context.Context, operatorID uuid.UUID, in UpdateInput) (*domain.Operator, error) {
	var row domain.Operator
	if err := s.DB.WithContext(ctx).Where("operator_id = ?", operatorID).First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrOperatorNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Code != nil {
		updates["code"] = *in.Code
	}
	if in.FirstName != nil && *in.FirstName != "" {
		updates["first_name"] = *in.FirstName
	}
	if in.LastName != nil {
		updates["last_name"] = *in.LastName
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

func (s *Service) GetAll(ctx context.Context) ([]domain.Operator, error) {
	var rows []domain.Operator
	if err := s.DB.WithContext(ctx).Order("first_name ASC, last_name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Service) GetByID(ctx context.Context, operatorID uuid.UUID) (*domain.Operator, error) {
	var row domain.Operator
	if err := s.DB.WithContext(ctx).Where("operator_id = ?", operatorID).First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrOperatorNotFound
		}
		return nil, err
	}
	return &row, nil
}
