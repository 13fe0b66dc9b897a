package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Period lifecycle event types.
const (
	EventPeriodCreated    = "period_created"
	EventPeriodCompleted  = "period_completed"
	EventPeriodExpired    = "period_expired"
	EventAssignmentLapsed = "assignment_lapsed"
)

// PeriodEvent is one row in the period lifecycle log. Written inside the same
// transaction as the state change it describes.
type PeriodEvent struct {
	EventID      uuid.UUID      `gorm:"column:event_id;type:uuid;primaryKey" json:"event_id"`
	AssignmentID uuid.UUID      `gorm:"column:assignment_id;type:uuid;not null;index" json:"assignment_id"`
	PeriodID     uuid.UUID      `gorm:"column:period_id;type:uuid;not null;index" json:"period_id"`
	EventType    string         `gorm:"column:event_type;type:varchar(30);not null" json:"event_type"`
	EventData    datatypes.JSON `gorm:"column:event_data;type:jsonb;not null" json:"event_data"`
	CreatedAt    time.Time      `json:"createdAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (PeriodEvent) TableName() string {
	return "period_events"
}

func (e *PeriodEvent) BeforeCreate(tx *gorm.DB) error {
	if e.EventID == uuid.Nil {
		e.EventID = uuid.New()
	}
	return nil
}
