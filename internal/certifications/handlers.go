package certifications

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

type createCertificationRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
}

// POST /api/v1/certifications/create-certification
func (h *Handlers) CreateCertification(c *fiber.Ctx) error {
	var body createCertificationRequest
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	if err := h.Validate.Struct(body); err != nil {
		return response.Error(c, "Validation failed", 400, fiber.Map{"fields": err.Error()})
	}

	row, err := h.Service.Create(c.Context(), CreateInput{
		Name:        body.Name,
		Description: body.Description,
	})
	if err != nil {
		if err == ErrDuplicateName {
			return response.Error(c, err.Error(), 409, nil)
		}
		return response.Error(c, err.Error(), 500, nil)
	}
	return response.SuccessCreated(c, "Certification created successfully", fiber.Map{"certification": row}, nil)
}

type updateCertificationRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// PUT /api/v1/certifications/update-certification/:certification_id
func (h *Handlers) UpdateCertification(c *fiber.Ctx) error {
	certificationID, err := uuid.Parse(c.Params("certification_id"))
	if err != nil {
		return response.Error(c, "Invalid certification_id", 400, nil)
	}

	var body updateCertificationRequest
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}

	row, err := h.Service.Update(c.Context(), certificationID, UpdateInput{
		Name:        body.Name,
		Description: body.Description,
		IsActive:    body.IsActive,
	})
	if err != nil {
		switch err {
		case ErrCertificationNotFound:
			return response.Error(c, err.Error(), 404, nil)
		case ErrDuplicateName:
			return response.Error(c, err.Error(), 409, nil)
		default:
			return response.Error(c, err.Error(), 500, nil)
		}
	}
	return response.Success(c, "Certification updated successfully", fiber.Map{"certification": row}, nil)
}

// GET /api/v1/certifications/get-all-certifications
func (h *Handlers) GetAllCertifications(c *fiber.Ctx) error {
	rows, err := h.Service.GetAll(c.Context())
	if err != nil {
		return response.Error(c, err.Error(), 500, nil)
	}
	return response.Success(c, "Certifications fetched successfully", fiber.Map{"certifications": rows}, nil)
}

// GET /api/v1/certifications/get-certification/:certification_id
func (h *Handlers) GetCertification(c *fiber.Ctx) error {
	certificationID, err := uuid.Parse(c.Params("certification_id"))
	if err != nil {
		return response.Error(c, "Invalid certification_id", 400, nil)
	}

	row, err := h.Service.GetByID(c.Context(), certificationID)
	if err != nil {
		if err == ErrCertificationNotFound {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, err.Error(), 500, nil)
	}
	return response.Success(c, "Certification fetched successfully", fiber.Map{"certification": row}, nil)
}
