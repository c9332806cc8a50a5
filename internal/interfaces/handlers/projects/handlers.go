package projects

import (
	projectsvc "axiso-backend/internal/application/projects"
	"axiso-backend/internal/middleware"
	"axiso-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *projectsvc.Service
}

// GET /api/v1/projects?customer_name=...&status=... — newest first, deleted excluded.
func (h *Handlers) List(c *fiber.Ctx) error {
	filters := map[string]string{}
	c.Context().QueryArgs().VisitAll(func(k, v []byte) {
		if len(v) > 0 {
			filters[string(k)] = string(v)
		}
	})
	list, err := h.Service.List(c.UserContext(), filters)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Projects fetched successfully", list, fiber.Map{"count": len(list)})
}

// POST /api/v1/projects
func (h *Handlers) Create(c *fiber.Ctx) error {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	var in projectsvc.CreateInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	p, err := h.Service.Create(c.UserContext(), sess, in)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessCreated(c, "Project created successfully", p, nil)
}

// GET /api/v1/projects/:id — includes payment history.
func (h *Handlers) Get(c *fiber.Ctx) error {
	p, err := h.Service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Project fetched successfully", p, nil)
}

// PATCH /api/v1/projects/:id — customer details; loan_amount needs edit_loan_amount.
func (h *Handlers) UpdateCustomer(c *fiber.Ctx) error {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	var in projectsvc.UpdateCustomerInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	p, err := h.Service.UpdateCustomer(c.UserContext(), sess, c.Params("id"), in)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Customer details updated", p, nil)
}

// DELETE /api/v1/projects/:id — soft delete.
func (h *Handlers) Delete(c *fiber.Ctx) error {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	if err := h.Service.Delete(c.UserContext(), sess, c.Params("id")); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Project deleted successfully", nil, nil)
}

// POST /api/v1/projects/:id/stage/advance
func (h *Handlers) AdvanceStage(c *fiber.Ctx) error {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	p, err := h.Service.AdvanceStage(c.UserContext(), sess, c.Params("id"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Stage updated", p, nil)
}

// POST /api/v1/projects/:id/stage/retreat
func (h *Handlers) RetreatStage(c *fiber.Ctx) error {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	p, err := h.Service.RetreatStage(c.UserContext(), sess, c.Params("id"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Stage updated", p, nil)
}
