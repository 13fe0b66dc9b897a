package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InspectionPolicy parameterizes new validation periods: how many working days
// a window spans and how many audited units it must accumulate. Read at
// period-creation time only; already-created periods keep their snapshots.
type InspectionPolicy struct {
	PolicyID            uuid.UUID      `gorm:"column:policy_id;type:uuid;primaryKey" json:"policy_id"`
	RequiredWorkingDays int            `gorm:"column:required_working_days;not null;default:180" json:"required_working_days"`
	RequiredUnits       int            `gorm:"column:required_units;not null;default:29" json:"required_units"`
	IsActive            bool           `gorm:"column:is_active;not null;default:true" json:"is_active"`
	EffectiveFrom       *time.Time     `gorm:"column:effective_from;type:date" json:"effective_from"`
	EffectiveUntil      *time.Time     `gorm:"column:effective_until;type:date" json:"effective_until"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
}

func (InspectionPolicy) TableName() string {
	return "inspection_policies"
}

func (p *InspectionPolicy) BeforeCreate(tx *gorm.DB) error {
	if p.PolicyID == uuid.Nil {
		p.PolicyID = uuid.New()
	}
	return nil
}
