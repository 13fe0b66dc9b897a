package auditors

import (
	"certflow-backend/internal/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service  *Service
	Validate *validator.Validate
}

type createAuditorRequest struct {
	Code      *string `json:"code"`
	FirstName string  `json:"first_name" validate:"required"`
	LastName  *string `json:"last_name"`
}

// POST /api/v1/auditors/create-auditor
func (h *Handlers) CreateAuditor(c *fiber.Ctx) error {
	var body createAuditorRequest
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	if err := h.Validate.Struct(body); err != nil {
		return response.Error(c, "Validation failed", 400, fiber.Map{"fields": err.Error()})
	}

	row, err := h.Service.Create(c.Context(), CreateInput{
		Code:      body.Code,
		FirstName: body.FirstName,
		LastName:  body.LastName,
	})
	if err != nil {
		return response.Error(c, err.Error(), 500, nil)
	}
	return response.SuccessCreated(c, "Auditor created successfully", fiber.Map{"auditor": row}, nil)
}

type updateAuditorRequest struct {
	Code      *string `json:"code"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	IsActive  *bool   `json:"is_active"`
}

// PUT /api/v1/auditors/update-auditor/:auditor_id
func (h *Handlers) UpdateAuditor(c *fiber.Ctx) error {
	auditorID, err := uuid.Parse(c.Params("auditor_id"))
	if err != nil {
		return response.Error(c, "Invalid auditor_id", 400, nil)
	}

	var body updateAuditorRequest
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}

	row, err := h.Service.Update(c.Context(), auditorID, UpdateInput{
		Code:      body.Code,
		FirstName: body.FirstName,
		LastName:  body.LastName,
		IsActive:  body.IsActive,
	})
	if err != nil {
		if err == ErrAuditorNotFound {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, err.Error(), 500, nil)
	}
	return response.Success(c, "Auditor updated successfully", fiber.Map{"auditor": row}, nil)
}

// GET /api/v1/auditors/get-all-auditors
func (h *Handlers) GetAllAuditors(c *fiber.Ctx) error {
	rows, err := h.Service.GetAll(c.Context())
	if err != nil {
		return response.Error(c, err.Error(), 500, nil)
	}
	return response.Success(c, "Auditors fetched successfully", fiber.Map{"auditors": rows}, nil)
}

// GET /api/v1/auditors/get-auditor/:auditor_id
func (h *Handlers) GetAuditor(c *fiber.Ctx) error {
	auditorID, err := uuid.Parse(c.Params("auditor_id"))
	if err != nil {
		return response.Error(c, "Invalid auditor_id", 400, nil)
	}

	row, err := h.Service.GetByID(c.Context(), auditorID)
	if err != nil {
		if err == ErrAuditorNotFound {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, err.Error(), 500, nil)
	}
	return response.Success(c, "Auditor fetched successfully", fiber.Map{"auditor": row}, nil)
}
