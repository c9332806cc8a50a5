package finance

import (
	"strconv"

	financesvc "axiso-backend/internal/application/finance"
	"axiso-backend/internal/middleware"
	"axiso-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *financesvc.Service
}

// GET /api/v1/finance?year=2024 — finance desk only.
func (h *Handlers) Summary(c *fiber.Ctx) error {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	year := 0
	if v := c.Query("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			return response.Error(c, "Invalid year", fiber.StatusBadRequest, nil)
		}
		year = y
	}
	s, err := h.Service.Summary(c.UserContext(), sess, year)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Finance summary fetched successfully", s, nil)
}
