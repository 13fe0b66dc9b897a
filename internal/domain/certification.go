package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Certification is a quality-program credential an operator can be assigned.
type Certification struct {
	CertificationID uuid.UUID      `gorm:"column:certification_id;type:uuid;primaryKey" json:"certification_id"`
	Name            string         `gorm:"column:name;type:varchar(100);not null;uniqueIndex" json:"name"`
	Description     *string        `gorm:"column:description" json:"description"`
	IsActive        bool           `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Certification) TableName() string {
	return "certifications"
}

func (c *Certification) BeforeCreate(tx *gorm.DB) error {
	if c.CertificationID == uuid.Nil {
		c.CertificationID = uuid.New()
	}
	return nil
}
