package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Auditor is the quality-control person who performs product inspections.
type Auditor struct {
	AuditorID uuid.UUID      `gorm:"column:auditor_id;type:uuid;primaryKey" json:"auditor_id"`
	Code      *string        `gorm:"column:code;type:varchar(50)" json:"code"`
	FirstName string         `gorm:"column:first_name;type:varchar(100);not null" json:"first_name"`
	LastName  *string        `gorm:"column:last_name;type:varchar(100)" json:"last_name"`
	IsActive  bool           `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Auditor) TableName() string {
	return "auditors"
}

func (a *Auditor) BeforeCreate(tx *gorm.DB) error {
	if a.AuditorID == uuid.Nil {
		a.AuditorID = uuid.New()
	}
	return nil
}
