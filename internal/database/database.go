package database

import (
	"certflow-backend/internal/domain"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open opens a GORM DB from DSN. PreferSimpleProtocol disables prepared
// statement caching to avoid 42P05 ("prepared statement already exists") when
// using connection poolers (e.g. PgBouncer).
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
}

// AutoMigrate runs migrations for all domain models. Ordered so foreign keys
// resolve: reference data first, then assignments, periods, inspections.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Operator{},
		&domain.Certification{},
		&domain.Auditor{},
		&domain.ProductAuditType{},
		&domain.InspectionPolicy{},
		&domain.Assignment{},
		&domain.ValidationPeriod{},
		&domain.Inspection{},
		&domain.PeriodEvent{},
	)
}
