package audittypes

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

type createAuditTypeRequest struct {
	CertificationID string  `json:"certification_id" validate:"required,uuid4"`
	Name            string  `json:"name" validate:"required"`
	Description     *string `json:"description"`
}

// POST /api/v1/audit-types/create-audit-type
func (h *Handlers) CreateAuditType(c *fiber.Ctx) error {
	var body createAuditTypeRequest
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	if err := h.Validate.Struct(body); err != nil {
		return response.Error(c, "Validation failed", 400, fiber.Map{"fields": err.Error()})
	}

	certificationID, _ := uuid.Parse(body.CertificationID)
	row, err := h.Service.Create(c.Context(), CreateInput{
		CertificationID: certificationID,
		Name:            body.Name,
		Description:     body.Description,
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
	return response.SuccessCreated(c, "Audit type created successfully", fiber.Map{"audit_type": row}, nil)
}

// GET /api/v1/audit-types/get-all-audit-types
func (h *Handlers) GetAllAuditTypes(c *fiber.Ctx) error {
	rows, err := h.Service.GetAll(c.Context())
	if err != nil {
		return response.Error(c, err.Error(), 500, nil)
	}
	return response.Success(c, "Audit types fetched successfully", fiber.Map{"audit_types": rows}, nil)
}

// GET /api/v1/audit-types/by-certification/:certification_id
func (h *Handlers) GetByCertification(c *fiber.Ctx) error {
	certificationID, err := uuid.Parse(c.Params("certification_id"))
	if err != nil {
		return response.Error(c, "Invalid certification_id", 400, nil)
	}

	rows, err := h.Service.GetByCertification(c.Context(), certificationID)
	if err != nil {
		return response.Error(c, err.Error(), 500, nil)
	}
	return response.Success(c, "Audit types fetched successfully", fiber.Map{"audit_types": rows}, nil)
}

// GET /api/v1/audit-types/get-audit-type/:audit_type_id
func (h *Handlers) GetAuditType(c *fiber.Ctx) error {
	auditTypeID, err := uuid.Parse(c.Params("audit_type_id"))
	if err != nil {
		return response.Error(c, "Invalid audit_type_id", 400, nil)
	}

	row, err := h.Service.GetByID(c.Context(), auditTypeID)
	if err != nil {
		if err == ErrAuditTypeNotFound {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, err.Error(), 500, nil)
	}
	return response.Success(c, "Audit type fetched successfully", fiber.Map{"audit_type": row}, nil)
}
