package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductAuditType is a kind of product audit available under one certification
// (e.g. "Crowns" under the laboratory certification). Unique per (certification, name).
type ProductAuditType struct {
	AuditTypeID     uuid.UUID      `gorm:"column:audit_type_id;type:uuid;primaryKey" json:"audit_type_id"`
	CertificationID uuid.UUID      `gorm:"column:certification_id;type:uuid;not null;uniqueIndex:uniq_audit_type_per_cert" json:"certification_id"`
	Name            string         `gorm:"column:name;type:varchar(100);not null;uniqueIndex:uniq_audit_type_per_cert" json:"name"`
	Description     *string        `gorm:"column:description" json:"description"`
	IsActive        bool           `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Certification *Certification `gorm:"foreignKey:CertificationID;references:CertificationID" json:"certification,omitempty"`
}

func (ProductAuditType) TableName() string {
	return "product_audit_types"
}

func (t *ProductAuditType) BeforeCreate(tx *gorm.DB) error {
	if t.AuditTypeID == uuid.Nil {
		t.AuditTypeID = uuid.New()
	}
	return nil
}
