package payments

import (
	paymentsvc "axiso-backend/internal/application/payments"
	"axiso-backend/internal/middleware"
	"axiso-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *paymentsvc.Service
}

// POST /api/v1/projects/:id/payments — 201 with the updated project and the new payment.
func (h *Handlers) Record(c *fiber.Ctx) error {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	var in paymentsvc.RecordInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	project, payment, err := h.Service.Record(c.UserContext(), sess, c.Params("id"), in)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessCreated(c, "Payment recorded successfully", fiber.Map{
		"project": project,
		"payment": payment,
	}, nil)
}

// GET /api/v1/projects/:id/payments — advance entry first.
func (h *Handlers) List(c *fiber.Ctx) error {
	entries, err := h.Service.List(c.UserContext(), c.Params("id"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Payments fetched successfully", entries, nil)
}

// DELETE /api/v1/payments/:id — returns the updated project.
func (h *Handlers) Delete(c *fiber.Ctx) error {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	project, err := h.Service.Delete(c.UserContext(), sess, c.Params("id"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Payment deleted successfully", project, nil)
}
