package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ValidationPeriod is one validation window within an assignment's history.
// Exactly one active period exists per assignment at any time; the partial
// unique index backstops what the inspections service enforces transactionally.
//
// A period is either active-and-open, or closed because it completed, or closed
// because it expired. Required parameters are snapshots taken at creation and
// never change afterwards.
type ValidationPeriod struct {
	PeriodID            uuid.UUID      `gorm:"column:period_id;type:uuid;primaryKey" json:"period_id"`
	AssignmentID        uuid.UUID      `gorm:"column:assignment_id;type:uuid;not null;uniqueIndex:uniq_period_sequence;index:uniq_active_period,unique,where:is_active" json:"assignment_id"`
	Sequence            int            `gorm:"column:sequence;not null;uniqueIndex:uniq_period_sequence" json:"sequence"`
	StartsOn            time.Time      `gorm:"column:starts_on;type:date;not null" json:"starts_on"`
	EndsOn              time.Time      `gorm:"column:ends_on;type:date;not null" json:"ends_on"`
	RequiredWorkingDays int            `gorm:"column:required_working_days;not null;default:180" json:"required_working_days"`
	RequiredUnits       int            `gorm:"column:required_units;not null;default:29" json:"required_units"`
	AccumulatedUnits    int            `gorm:"column:accumulated_units;not null;default:0" json:"accumulated_units"`
	IsCompleted         bool           `gorm:"column:is_completed;not null;default:false" json:"is_completed"`
	CompletedOn         *time.Time     `gorm:"column:completed_on;type:date" json:"completed_on"`
	IsActive            bool           `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`

	Assignment *Assignment `gorm:"foreignKey:AssignmentID;references:AssignmentID" json:"assignment,omitempty"`
}

func (ValidationPeriod) TableName() string {
	return "validation_periods"
}

func (p *ValidationPeriod) BeforeCreate(tx *gorm.DB) error {
	if p.PeriodID == uuid.Nil {
		p.PeriodID = uuid.New()
	}
	return nil
}

// IsOpen reports whether the period is still accepting inspections.
func (p *ValidationPeriod) IsOpen() bool {
	return p.IsActive && !p.IsCompleted
}
