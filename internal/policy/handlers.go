package policy

import (
	"time"

	"certflow-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
}

type createPolicyRequest struct {
	RequiredWorkingDays int     `json:"required_working_days"`
	RequiredUnits       int     `json:"required_units"`
	EffectiveFrom       *string `json:"effective_from"`
	EffectiveUntil      *string `json:"effective_until"`
}

// POST /api/v1/policies/create-policy
func (h *Handlers) CreatePolicy(c *fiber.Ctx) error {
	var body createPolicyRequest
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}

	in := CreateInput{
		RequiredWorkingDays: body.RequiredWorkingDays,
		RequiredUnits:       body.RequiredUnits,
	}
	if body.EffectiveFrom != nil {
		d, err := time.Parse("2006-01-02", *body.EffectiveFrom)
		if err != nil {
			return response.Error(c, "Invalid effective_from date", 400, nil)
		}
		in.EffectiveFrom = &d
	}
	if body.EffectiveUntil != nil {
		d, err := time.Parse("2006-01-02", *body.EffectiveUntil)
		if err != nil {
			return response.Error(c, "Invalid effective_until date", 400, nil)
		}
		in.EffectiveUntil = &d
	}

	row, err := h.Service.Create(c.Context(), in)
	if err != nil {
		if err == ErrInvalidPolicyParams {
			return response.Error(c, err.Error(), 400, nil)
		}
		return response.Error(c, err.Error(), 500, nil)
	}
	return response.SuccessCreated(c, "Policy created successfully", fiber.Map{"policy": row}, nil)
}

// GET /api/v1/policies/get-active-policy
func (h *Handlers) GetActivePolicy(c *fiber.Ctx) error {
	row, err := h.Service.GetActive(c.Context())
	if err != nil {
		return response.Error(c, err.Error(), 500, nil)
	}
	if row == nil {
		// Defaults apply when nothing is configured.
		return response.Success(c, "No active policy; defaults apply", fiber.Map{
			"policy":   nil,
			"defaults": Defaults(),
		}, nil)
	}
	return response.Success(c, "Active policy fetched successfully", fiber.Map{"policy": row}, nil)
}

// GET /api/v1/policies/get-all-policies
func (h *Handlers) GetAllPolicies(c *fiber.Ctx) error {
	rows, err := h.Service.GetAll(c.Context())
	if err != nil {
		return response.Error(c, err.Error(), 500, nil)
	}
	return response.Success(c, "Policies fetched successfully", fiber.Map{"policies": rows}, nil)
}
