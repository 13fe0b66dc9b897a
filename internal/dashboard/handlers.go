package dashboard

import (
	"time"

	"certflow-backend/internal/pkg/clock"
	"certflow-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
	Clock   clock.Clock
}

func (h *Handlers) evaluationDate(c *fiber.Ctx) (time.Time, error) {
	if s := c.Query("date"); s != "" {
		return time.Parse("2006-01-02", s)
	}
	return h.Clock.Today(), nil
}

// GET /api/v1/dashboard/triage?date=
func (h *Handlers) Triage(c *fiber.Ctx) error {
	today, err := h.evaluationDate(c)
	if err != nil {
		return response.Error(c, "Invalid date", 400, nil)
	}

	ranked, err := h.Service.Triage(c.Context(), today)
	if err != nil {
		return response.Error(c, err.Error(), 500, nil)
	}
	return response.Success(c, "Triage fetched successfully", fiber.Map{"periods": ranked}, fiber.Map{
		"count": len(ranked),
		"date":  today.Format("2006-01-02"),
	})
}

// GET /api/v1/dashboard/open-periods?date=
func (h *Handlers) OpenPeriods(c *fiber.Ctx) error {
	today, err := h.evaluationDate(c)
	if err != nil {
		return response.Error(c, "Invalid date", 400, nil)
	}

	ranked, err := h.Service.OpenPeriods(c.Context(), today)
	if err != nil {
		return response.Error(c, err.Error(), 500, nil)
	}
	return response.Success(c, "Open periods fetched successfully", fiber.Map{"periods": ranked}, fiber.Map{
		"count": len(ranked),
		"date":  today.Format("2006-01-02"),
	})
}
