package health

import (
	"crypto/subtle"

	healthsvc "axiso-backend/internal/application/health"
	"axiso-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const serviceName = "axiso-backend"

// Handlers holds dependencies for health endpoints.
type Handlers struct {
	Rdb            *redis.Client
	DB             healthsvc.DBPinger
	HealthAdminKey string
}

// Reset clears health stats in Redis. Requires ?key=HEALTH_ADMIN_KEY.
func (h *Handlers) Reset(c *fiber.Ctx) error {
	key := c.Query("key")
	if h.HealthAdminKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(h.HealthAdminKey)) != 1 {
		return response.Error(c, "Unauthorized", fiber.StatusForbidden, nil)
	}
	if err := healthsvc.Reset(c.UserContext(), h.Rdb); err != nil {
		log.Error().Err(err).Msg("reset health stats failed")
		return response.Error(c, "Could not reset stats", fiber.StatusServiceUnavailable, nil)
	}
	return response.Success(c, "Stats reset successfully", fiber.Map{"success": true}, nil)
}

// JSON returns service status, runtime, traffic and dependency pings.
func (h *Handlers) JSON(c *fiber.Ctx) error {
	result := healthsvc.CollectHealth(c.UserContext(), h.Rdb, h.DB)
	status := fiber.StatusOK
	if result.Status != "ok" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{
		"service":      serviceName,
		"status":       result.Status,
		"runtime":      result.Runtime,
		"traffic":      result.Traffic,
		"dependencies": result.Dependencies,
	})
}

// Errors returns the most recent server errors, newest first.
func (h *Handlers) Errors(c *fiber.Ctx) error {
	entries, err := healthsvc.RecentErrors(c.UserContext(), h.Rdb)
	if err != nil {
		log.Error().Err(err).Msg("read error log failed")
		return c.Status(fiber.StatusServiceUnavailable).JSON([]interface{}{})
	}
	return c.JSON(entries)
}

// Dashboard renders the HTML status page.
func (h *Handlers) Dashboard(c *fiber.Ctx) error {
	result := healthsvc.CollectHealth(c.UserContext(), h.Rdb, h.DB)
	html, err := healthsvc.RenderDashboardHTML(result)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(html)
}
