package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Operator is a shop-floor worker who can hold certifications.
type Operator struct {
	OperatorID uuid.UUID      `gorm:"column:operator_id;type:uuid;primaryKey" json:"operator_id"`
	Code       *string        `gorm:"column:code;type:varchar(50)" json:"code"`
	FirstName  string         `gorm:"column:first_name;type:varchar(100);not null" json:"first_name"`
	LastName   *string        `gorm:"column:last_name;type:varchar(100)" json:"last_name"`
	IsActive   bool           `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Operator) TableName() string {
	return "operators"
}

func (o *Operator) BeforeCreate(tx *gorm.DB) error {
	if o.OperatorID == uuid.Nil {
		o.OperatorID = uuid.New()
	}
	return nil
}

// FullName joins first and last name the way list views display operators.
func (o *Operator) FullName() string {
	if o.LastName != nil && *o.LastName != "" {
		return o.FirstName + " " + *o.LastName
	}
	return o.FirstName
}
