package periodevents

import (
	"certflow-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

// GET /api/v1/period-events/by-assignment/:assignment_id
func (h *Handlers) GetByAssignment(c *fiber.Ctx) error {
	assignmentID, err := uuid.Parse(c.Params("assignment_id"))
	if err != nil {
		return response.Error(c, "Invalid assignment_id", 400, nil)
	}

	events, err := h.Service.GetByAssignment(c.Context(), assignmentID)
	if err != nil {
		switch err.Error() {
		case "Assignment not found":
			return response.Error(c, err.Error(), 404, nil)
		default:
			return response.Error(c, err.Error(), 500, nil)
		}
	}
	return response.Success(c, "Period events fetched successfully", fiber.Map{"events": events}, nil)
}
