package tickets

import (
	ticketsvc "axiso-backend/internal/application/tickets"
	"axiso-backend/internal/middleware"
	"axiso-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *ticketsvc.Service
}

// GET /api/v1/service-tickets?status=open
func (h *Handlers) List(c *fiber.Ctx) error {
	list, err := h.Service.List(c.UserContext(), c.Query("status"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Service tickets fetched successfully", list, fiber.Map{"count": len(list)})
}

// POST /api/v1/service-tickets
func (h *Handlers) Create(c *fiber.Ctx) error {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	var in ticketsvc.CreateInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	t, err := h.Service.Create(c.UserContext(), sess, in)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessCreated(c, "Service ticket created successfully", t, nil)
}

// POST /api/v1/service-tickets/:id/start
func (h *Handlers) Start(c *fiber.Ctx) error {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	t, err := h.Service.Start(c.UserContext(), sess, c.Params("id"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Service ticket started", t, nil)
}

// POST /api/v1/service-tickets/:id/complete
func (h *Handlers) Complete(c *fiber.Ctx) error {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	t, err := h.Service.Complete(c.UserContext(), sess, c.Params("id"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Service ticket completed", t, nil)
}

// GET /api/v1/service-tickets/customers
func (h *Handlers) Customers(c *fiber.Ctx) error {
	list, err := h.Service.Customers(c.UserContext())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Customers fetched successfully", list, fiber.Map{"count": len(list)})
}
