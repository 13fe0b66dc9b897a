package operators

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

type createOperatorRequest struct {
	Code      *string `json:"code"`
	FirstName string  `json:"first_name" validate:"required"`
	LastName  *string `json:"last_name"`
}

// POST /api/v1/operators/create-operator
func (h *Handlers) CreateOperator(c *fiber.Ctx) error {
	var body createOperatorRequest
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
	return response.SuccessCreated(c, "Operator created successfully", fiber.Map{"operator": row}, nil)
}

type updateOperatorRequest struct {
	Code      *string `json:"code"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	IsActive  *bool   `json:"is_active"`
}

// PUT /api/v1/operators/update-operator/:operator_id
func (h *Handlers) UpdateOperator(c *fiber.Ctx) error {
	operatorID, err := uuid.Parse(c.Params("operator_id"))
	if err != nil {
		return response.Error(c, "Invalid operator_id", 400, nil)
	}

	var body updateOperatorRequest
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}

	row, err := h.Service.Update(c.Context(), operatorID, UpdateInput{
		Code:      body.Code,
		FirstName: body.FirstName,
		LastName:  body.LastName,
		IsActive:  body.IsActive,
	})
	if err != nil {
		if err == ErrOperatorNotFound {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, err.Error(), 500, nil)
	}
	return response.Success(c, "Operator updated successfully", fiber.Map{"operator": row}, nil)
}

// GET /api/v1/operators/get-all-operators
func (h *Handlers) GetAllOperators(c *fiber.Ctx) error {
	rows, err := h.Service.GetAll(c.Context())
	if err != nil {
		return response.Error(c, err.Error(), 500, nil)
	}
	return response.Success(c, "Operators fetched successfully", fiber.Map{"operators": rows}, nil)
}

// GET /api/v1/operators/get-operator/:operator_id
func (h *Handlers) GetOperator(c *fiber.Ctx) error {
	operatorID, err := uuid.Parse(c.Params("operator_id"))
	if err != nil {
		return response.Error(c, "Invalid operator_id", 400, nil)
	}

	row, err := h.Service.GetByID(c.Context(), operatorID)
	if err != nil {
		if err == ErrOperatorNotFound {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, err.Error(), 500, nil)
	}
	return response.Success(c, "Operator fetched successfully", fiber.Map{"operator": row}, nil)
}
