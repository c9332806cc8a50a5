package reports

import (
	"fmt"
	"strconv"

	reportsvc "axiso-backend/internal/application/reports"
	"axiso-backend/internal/middleware"
	"axiso-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handlers struct {
	Service *reportsvc.Service
}

// GET /api/v1/dashboard?sort=date|amount|stage&order=asc|desc
func (h *Handlers) Dashboard(c *fiber.Ctx) error {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	d, err := h.Service.Dashboard(c.UserContext(), sess, c.Query("sort"), c.Query("order"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Dashboard fetched successfully", d, nil)
}

// GET /api/v1/reports?year=2024
func (h *Handlers) Report(c *fiber.Ctx) error {
	r, err := h.load(c)
	if err != nil || r == nil {
		return err
	}
	return response.Success(c, "Report fetched successfully", r, nil)
}

// GET /api/v1/reports/export?year=2024 — xlsx download.
func (h *Handlers) Export(c *fiber.Ctx) error {
	r, err := h.load(c)
	if err != nil || r == nil {
		return err
	}
	b, err := reportsvc.Workbook(r)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, reportsvc.ExportFilename(r.Year)))
	return c.Send(b)
}

// load writes the error response itself and returns a nil report when the
// request cannot be served.
func (h *Handlers) load(c *fiber.Ctx) (*reportsvc.Report, error) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		return nil, response.Unauthorized(c, "Unauthorized")
	}
	year, err := queryYear(c)
	if err != nil {
		return nil, response.Error(c, "Invalid year", fiber.StatusBadRequest, nil)
	}
	r, err := h.Service.Report(c.UserContext(), sess, year)
	if err != nil {
		return nil, response.FromError(c, err)
	}
	return r, nil
}

// queryYear reads ?year, where empty means the current year.
func queryYear(c *fiber.Ctx) (int, error) {
	v := c.Query("year")
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}
