package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"fieldstock/internal/services"
	"fieldstock/internal/validate"
)

type ReportHandler struct {
	Reports *services.ReportService
}

func (h *ReportHandler) window(c *fiber.Ctx) (from, to time.Time, ok bool) {
	ok = true
	if s := c.Query("from"); s != "" {
		if from, ok = validate.Date(s); !ok {
			return
		}
	}
	if s := c.Query("to"); s != "" {
		if to, ok = validate.Date(s); !ok {
			return
		}
	}
	return
}

// GET /api/v1/reports/usage?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *ReportHandler) Usage(c *fiber.Ctx) error {
	from, to, ok := h.window(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "dates must be YYYY-MM-DD"})
	}
	rep, err := h.Reports.Usage(from, to)
	if err != nil {
		return fail(c, "reports.usage.fail", err)
	}
	return c.JSON(rep)
}

// GET /api/v1/reports/usage.xlsx
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	from, to, ok := h.window(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "dates must be YYYY-MM-DD"})
	}
	rep, err := h.Reports.Usage(from, to)
	if err != nil {
		return fail(c, "reports.export.fail", err)
	}
	f, err := h.Reports.ExportXLSX(rep)
	if err != nil {
		return fail(c, "reports.export.fail", err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="usage_%s_%s.xlsx"`, rep.From, rep.To))
	return f.Write(c.Response().BodyWriter())
}
