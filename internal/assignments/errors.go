package assignments

import "errors"

var (
	ErrDuplicateActiveAssignment = errors.New("An active assignment already exists for this operator and certification")
	ErrOperatorNotFound          = errors.New("Operator not found")
	ErrCertificationNotFound     = errors.New("Certification not found")
	ErrAssignmentNotFound        = errors.New("Assignment not found")
)
