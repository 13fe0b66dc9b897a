package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Inspection result values. An empty result means the outcome was not recorded.
const (
	InspectionResultOK    = "OK"
	InspectionResultNotOK = "NOT_OK"
)

// Inspection is one quality-control event: some number of product units audited
// against an assignment's active validation period. Immutable once recorded.
type Inspection struct {
	InspectionID uuid.UUID      `gorm:"column:inspection_id;type:uuid;primaryKey" json:"inspection_id"`
	AssignmentID uuid.UUID      `gorm:"column:assignment_id;type:uuid;not null;index:idx_inspections_assignment_date" json:"assignment_id"`
	PeriodID     uuid.UUID      `gorm:"column:period_id;type:uuid;not null;index:idx_inspections_period_date" json:"period_id"`
	AuditTypeID  uuid.UUID      `gorm:"column:audit_type_id;type:uuid;not null" json:"audit_type_id"`
	AuditorID    uuid.UUID      `gorm:"column:auditor_id;type:uuid;not null" json:"auditor_id"`
	InspectedOn  time.Time      `gorm:"column:inspected_on;type:date;not null;index:idx_inspections_assignment_date;index:idx_inspections_period_date" json:"inspected_on"`
	Units        int            `gorm:"column:units;not null" json:"units"`
	Result       *string        `gorm:"column:result;type:varchar(10)" json:"result"`
	OrderRef     *string        `gorm:"column:order_ref;type:varchar(100)" json:"order_ref"`
	Notes        *string        `gorm:"column:notes" json:"notes"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Assignment *Assignment       `gorm:"foreignKey:AssignmentID;references:AssignmentID" json:"assignment,omitempty"`
	Period     *ValidationPeriod `gorm:"foreignKey:PeriodID;references:PeriodID" json:"period,omitempty"`
	AuditType  *ProductAuditType `gorm:"foreignKey:AuditTypeID;references:AuditTypeID" json:"audit_type,omitempty"`
	Auditor    *Auditor          `gorm:"foreignKey:AuditorID;references:AuditorID" json:"auditor,omitempty"`
}

func (Inspection) TableName() string {
	return "inspections"
}

func (i *Inspection) BeforeCreate(tx *gorm.DB) error {
	if i.InspectionID == uuid.Nil {
		i.InspectionID = uuid.New()
	}
	return nil
}
