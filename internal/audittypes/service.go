package audittypes

import (
	"context"
	"errors"

	"certflow-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrAuditTypeNotFound     = errors.New("Product audit type not found")
	ErrCertificationNotFound = errors.New("Certification not found")
	ErrDuplicateName         = errors.New("An audit type with this name already exists for the certification")
)

type Service struct {
	DB *gorm.DB
}

type CreateInput struct {
	CertificationID uuid.UUID
	Name            string
	Description     *string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.ProductAuditType, error) {
	var certification domain.Certification
	if err := s.DB.WithContext(ctx).Where("certification_id = ?", in.CertificationID).First(&certification).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCertificationNotFound
		}
		return nil, err
	}

	var existing int64
	if err := s.DB.WithContext(ctx).Model(&domain.ProductAuditType{}).
		Where("certification_id = ? AND name = ?", in.CertificationID, in.Name).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrDuplicateName
	}

	row := &domain.ProductAuditType{
		CertificationID: in.CertificationID,
		Name:            in.Name,
		Description:     in.Description,
		IsActive:        true,
	}
	if err := s.DB.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (s *Service) GetAll(ctx context.Context) ([]domain.ProductAuditType, error) {
	var rows []domain.ProductAuditType
	if err := s.DB.WithContext(ctx).Preload("Certification").Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Service) GetByCertification(ctx context.Context, certificationID uuid.UUID) ([]domain.ProductAuditType, error) {
	var rows []domain.ProductAuditType
	err := s.DB.WithContext(ctx).
		Where("certification_id = ? AND is_active = ?", certificationID, true).
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Service) GetByID(ctx context.Context, auditTypeID uuid.UUID) (*domain.ProductAuditType, error) {
	var row domain.ProductAuditType
	if err := s.DB.WithContext(ctx).Preload("Certification").Where("audit_type_id = ?", auditTypeID).First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrAuditTypeNotFound
		}
		return nil, err
	}
	return &row, nil
}
