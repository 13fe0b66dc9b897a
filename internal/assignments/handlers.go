package assignments

import (
	"time"

	"certflow-backend/internal/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service  *Service
	Validate *validator.Validate
}

type createAssignmentRequest struct {
	OperatorID      string  `json:"operator_id" validate:"required,uuid4"`
	CertificationID string  `json:"certification_id" validate:"required,uuid4"`
	AssignedOn      string  `json:"assigned_on" validate:"required,datetime=2006-01-02"`
	Notes           *string `json:"notes"`
}

// POST /api/v1/assignments/create-assignment
func (h *Handlers) CreateAssignment(c *fiber.Ctx) error {
	var body createAssignmentRequest
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	if err := h.Validate.Struct(body); err != nil {
		return response.Error(c, "Validation failed", 400, fiber.Map{"fields": err.Error()})
	}

	operatorID, _ := uuid.Parse(body.OperatorID)
	certificationID, _ := uuid.Parse(body.CertificationID)
	assignedOn, _ := time.Parse("2006-01-02", body.AssignedOn)

	assignment, period, err := h.Service.Create(c.Context(), CreateInput{
		OperatorID:      operatorID,
		CertificationID: certificationID,
		AssignedOn:      assignedOn,
		Notes:           body.Notes,
	})
	if err != nil {
		switch err {
		case ErrDuplicateActiveAssignment:
			return response.Error(c, err.Error(), 409, nil)
		case ErrOperatorNotFound, ErrCertificationNotFound:
			return response.Error(c, err.Error(), 404, nil)
		default:
			return response.Error(c, err.Error(), 500, nil)
		}
	}

	return response.SuccessCreated(c, "Assignment created successfully", fiber.Map{
		"assignment": assignment,
		"period":     period,
	}, nil)
}

// GET /api/v1/assignments/get-all-assignments?operator_id=
func (h *Handlers) GetAllAssignments(c *fiber.Ctx) error {
	var operatorID *uuid.UUID
	if s := c.Query("operator_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return response.Error(c, "Invalid operator_id", 400, nil)
		}
		operatorID = &id
	}

	rows, err := h.Service.GetAll(c.Context(), operatorID)
	if err != nil {
		return response.Error(c, err.Error(), 500, nil)
	}
	return response.Success(c, "Assignments fetched successfully", fiber.Map{"assignments": rows}, nil)
}

// GET /api/v1/assignments/get-assignment/:assignment_id
func (h *Handlers) GetAssignment(c *fiber.Ctx) error {
	assignmentID, err := uuid.Parse(c.Params("assignment_id"))
	if err != nil {
		return response.Error(c, "Invalid assignment_id", 400, nil)
	}

	row, err := h.Service.GetByID(c.Context(), assignmentID)
	if err != nil {
		if err == ErrAssignmentNotFound {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, err.Error(), 500, nil)
	}
	return response.Success(c, "Assignment fetched successfully", fiber.Map{"assignment": row}, nil)
}

// GET /api/v1/assignments/get-active-period/:assignment_id
func (h *Handlers) GetActivePeriod(c *fiber.Ctx) error {
	assignmentID, err := uuid.Parse(c.Params("assignment_id"))
	if err != nil {
		return response.Error(c, "Invalid assignment_id", 400, nil)
	}

	period, err := h.Service.ActivePeriod(c.Context(), assignmentID)
	if err != nil {
		return response.Error(c, err.Error(), 500, nil)
	}
	if period == nil {
		return response.Error(c, "No active period for this assignment", 404, nil)
	}
	return response.Success(c, "Active period fetched successfully", fiber.Map{"period": period}, nil)
}
