package receipts

import (
	"context"
	"fmt"
	"net/url"

	"axiso-backend/internal/application/access"
	receiptsvc "axiso-backend/internal/application/receipts"
	"axiso-backend/internal/middleware"
	"axiso-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *receiptsvc.Service
}

type loader func(ctx context.Context, sess access.Session, id string) (receiptsvc.Receipt, error)

// GET /api/v1/payments/:id/receipt — PDF attachment, or the receipt fields with ?format=json.
func (h *Handlers) Payment(c *fiber.Ctx) error {
	return h.download(c, h.Service.ForPayment)
}

// GET /api/v1/projects/:id/receipts/advance
func (h *Handlers) Advance(c *fiber.Ctx) error {
	return h.download(c, h.Service.ForAdvance)
}

// POST /api/v1/payments/:id/receipt/email — sends the PDF to the customer's email.
func (h *Handlers) EmailPayment(c *fiber.Ctx) error {
	return h.email(c, h.Service.ForPayment)
}

// POST /api/v1/projects/:id/receipts/advance/email
func (h *Handlers) EmailAdvance(c *fiber.Ctx) error {
	return h.email(c, h.Service.ForAdvance)
}

func (h *Handlers) load(c *fiber.Ctx, load loader) (receiptsvc.Receipt, bool, error) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		return receiptsvc.Receipt{}, false, response.Unauthorized(c, "Unauthorized")
	}
	r, err := load(c.UserContext(), sess, c.Params("id"))
	if err != nil {
		return receiptsvc.Receipt{}, false, response.FromError(c, err)
	}
	return r, true, nil
}

func (h *Handlers) download(c *fiber.Ctx, load loader) error {
	r, ok, err := h.load(c, load)
	if !ok {
		return err
	}
	if c.Query("format") == "json" {
		return response.Success(c, "Receipt fetched successfully", fiber.Map{
			"receipt":  r,
			"date":     r.DisplayDate(),
			"filename": r.Filename(),
		}, nil)
	}
	pdf, err := h.Service.Render(r)
	if err != nil {
		return err
	}
	name := r.Filename()
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, name, url.PathEscape(name)))
	return c.Send(pdf)
}

func (h *Handlers) email(c *fiber.Ctx, load loader) error {
	r, ok, err := h.load(c, load)
	if !ok {
		return err
	}
	to, err := h.Service.Email(c.UserContext(), r)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Receipt emailed successfully", fiber.Map{
		"sent_to":          to,
		"reference_number": r.ReferenceNumber,
	}, nil)
}
