package inspections

import "errors"

var (
	ErrPeriodNotActive    = errors.New("Period is not active; re-fetch the current active period")
	ErrDateOutOfRange     = errors.New("Inspection date is outside the period window")
	ErrInvalidUnitCount   = errors.New("Unit count must be a positive integer")
	ErrAssignmentNotFound = errors.New("Assignment not found")
	ErrAuditTypeNotFound  = errors.New("Product audit type not found")
	ErrAuditorNotFound    = errors.New("Auditor not found")
	ErrInspectionNotFound = errors.New("Inspection not found")
)
