package inspections

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

type createInspectionRequest struct {
	AssignmentID string  `json:"assignment_id" validate:"required,uuid4"`
	PeriodID     *string `json:"period_id" validate:"omitempty,uuid4"`
	AuditTypeID  string  `json:"audit_type_id" validate:"required,uuid4"`
	AuditorID    string  `json:"auditor_id" validate:"required,uuid4"`
	InspectedOn  string  `json:"inspected_on" validate:"required,datetime=2006-01-02"`
	Units        int     `json:"units" validate:"required,gt=0"`
	Result       *string `json:"result" validate:"omitempty,oneof=OK NOT_OK"`
	OrderRef     *string `json:"order_ref"`
	Notes        *string `json:"notes"`
}

// POST /api/v1/inspections/create-inspection
func (h *Handlers) CreateInspection(c *fiber.Ctx) error {
	var body createInspectionRequest
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	if err := h.Validate.Struct(body); err != nil {
		return response.Error(c, "Validation failed", 400, fiber.Map{"fields": err.Error()})
	}

	assignmentID, _ := uuid.Parse(body.AssignmentID)
	auditTypeID, _ := uuid.Parse(body.AuditTypeID)
	auditorID, _ := uuid.Parse(body.AuditorID)
	inspectedOn, _ := time.Parse("2006-01-02", body.InspectedOn)

	in := RecordInput{
		AssignmentID: assignmentID,
		AuditTypeID:  auditTypeID,
		AuditorID:    auditorID,
		InspectedOn:  inspectedOn,
		Units:        body.Units,
		Result:       body.Result,
		OrderRef:     body.OrderRef,
		Notes:        body.Notes,
	}
	if body.PeriodID != nil {
		id, _ := uuid.Parse(*body.PeriodID)
		in.PeriodID = &id
	}

	inspection, period, err := h.Service.Record(c.Context(), in)
	if err != nil {
		switch err {
		case ErrPeriodNotActive:
			return response.Error(c, err.Error(), 409, nil)
		case ErrDateOutOfRange, ErrInvalidUnitCount:
			return response.Error(c, err.Error(), 400, nil)
		case ErrAssignmentNotFound, ErrAuditTypeNotFound, ErrAuditorNotFound:
			return response.Error(c, err.Error(), 404, nil)
		default:
			return response.Error(c, err.Error(), 500, nil)
		}
	}

	return response.SuccessCreated(c, "Inspection recorded successfully", fiber.Map{
		"inspection":    inspection,
		"active_period": period,
	}, nil)
}

// GET /api/v1/inspections/get-all-inspections?assignment_id=&period_id=
func (h *Handlers) GetAllInspections(c *fiber.Ctx) error {
	var filter ListFilter
	if s := c.Query("assignment_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return response.Error(c, "Invalid assignment_id", 400, nil)
		}
		filter.AssignmentID = &id
	}
	if s := c.Query("period_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return response.Error(c, "Invalid period_id", 400, nil)
		}
		filter.PeriodID = &id
	}

	rows, err := h.Service.GetAll(c.Context(), filter)
	if err != nil {
		return response.Error(c, err.Error(), 500, nil)
	}
	return response.Success(c, "Inspections fetched successfully", fiber.Map{"inspections": rows}, nil)
}

// GET /api/v1/inspections/get-inspection/:inspection_id
func (h *Handlers) GetInspection(c *fiber.Ctx) error {
	inspectionID, err := uuid.Parse(c.Params("inspection_id"))
	if err != nil {
		return response.Error(c, "Invalid inspection_id", 400, nil)
	}

	row, err := h.Service.GetByID(c.Context(), inspectionID)
	if err != nil {
		if err == ErrInspectionNotFound {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, err.Error(), 500, nil)
	}
	return response.Success(c, "Inspection fetched successfully", fiber.Map{"inspection": row}, nil)
}

// GET /api/v1/inspections/lookup/:assignment_id
func (h *Handlers) Lookup(c *fiber.Ctx) error {
	assignmentID, err := uuid.Parse(c.Params("assignment_id"))
	if err != nil {
		return response.Error(c, "Invalid assignment_id", 400, nil)
	}

	result, err := h.Service.Lookup(c.Context(), assignmentID)
	if err != nil {
		if err == ErrAssignmentNotFound {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, err.Error(), 500, nil)
	}
	return response.Success(c, "Lookup fetched successfully", fiber.Map{
		"audit_types": result.AuditTypes,
		"period":      result.Period,
	}, nil)
}

// POST /api/v1/inspections/sweep-expired
func (h *Handlers) SweepExpired(c *fiber.Ctx) error {
	today := h.Service.Clock.Today()
	if s := c.Query("date"); s != "" {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			return response.Error(c, "Invalid date", 400, nil)
		}
		today = d
	}

	count, err := h.Service.SweepExpired(c.Context(), today)
	if err != nil {
		return response.Error(c, err.Error(), 500, nil)
	}
	return response.Success(c, "Expiry sweep completed", fiber.Map{"expired": count}, nil)
}
