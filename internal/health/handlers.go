package health

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Handlers holds dependencies for health endpoints.
type Handlers struct {
	Rdb *redis.Client
	DB  DBPinger
}

// JSON returns health data: service identity, status, dependency pings.
func (h *Handlers) JSON(c *fiber.Ctx) error {
	result := CollectHealth(context.Background(), h.Rdb, h.DB)
	return c.JSON(fiber.Map{
		"service":       "certflow-api",
		"status":        result.Status,
		"uptimeSeconds": result.UptimeSeconds,
		"goVersion":     result.GoVersion,
		"dependencies":  result.Dependencies,
	})
}
