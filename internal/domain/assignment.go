package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Assignment pairs an operator with a certification they are pursuing or holding.
// At most one active assignment may exist per (operator, certification) pair;
// enforced at creation time by the assignments service.
type Assignment struct {
	AssignmentID    uuid.UUID      `gorm:"column:assignment_id;type:uuid;primaryKey" json:"assignment_id"`
	OperatorID      uuid.UUID      `gorm:"column:operator_id;type:uuid;not null;index" json:"operator_id"`
	CertificationID uuid.UUID      `gorm:"column:certification_id;type:uuid;not null;index" json:"certification_id"`
	AssignedOn      time.Time      `gorm:"column:assigned_on;type:date;not null" json:"assigned_on"`
	IsActive        bool           `gorm:"column:is_active;not null;default:true" json:"is_active"`
	LapsedOn        *time.Time     `gorm:"column:lapsed_on;type:date" json:"lapsed_on"`
	Notes           *string        `gorm:"column:notes" json:"notes"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Operator      *Operator          `gorm:"foreignKey:OperatorID;references:OperatorID" json:"operator,omitempty"`
	Certification *Certification     `gorm:"foreignKey:CertificationID;references:CertificationID" json:"certification,omitempty"`
	Periods       []ValidationPeriod `gorm:"foreignKey:AssignmentID;references:AssignmentID" json:"periods,omitempty"`
}

func (Assignment) TableName() string {
	return "assignments"
}

func (a *Assignment) BeforeCreate(tx *gorm.DB) error {
	if a.AssignmentID == uuid.Nil {
		a.AssignmentID = uuid.New()
	}
	return nil
}
