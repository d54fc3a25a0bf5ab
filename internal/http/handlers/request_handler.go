package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "fieldstock/internal/log"
	"fieldstock/internal/services"
	"fieldstock/internal/validate"
)

type RequestHandler struct {
	Requests *services.RequestService
}

// GET /api/v1/requests
func (h *RequestHandler) List(c *fiber.Ctx) error {
	reqs, err := h.Requests.List(100)
	if err != nil {
		return fail(c, "requests.list.fail", err)
	}
	return c.JSON(fiber.Map{"requests": reqs})
}

// POST /api/v1/requests (Technician)
func (h *RequestHandler) Submit(c *fiber.Ctx) error {
	var in struct {
		MaterialID string `json:"material_id"`
		Quantity   int    `json:"quantity"`
		Notes      string `json:"notes"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad body"})
	}
	mid, ok := validate.ID(in.MaterialID)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid material id"})
	}
	if !validate.QtyInt(in.Quantity) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "quantity must be a positive integer"})
	}
	req, err := h.Requests.Submit(mid, currentUser(c).ID, in.Quantity, validate.Note(in.Notes))
	if err != nil {
		return fail(c, "requests.submit.fail", err)
	}
	applog.Audit(c, "requests.submit", map[string]any{"request": req.ID, "material": mid, "qty": in.Quantity})
	return c.Status(fiber.StatusCreated).JSON(req)
}

type decisionInput struct {
	Note string `json:"note"`
}

// POST /api/v1/requests/:id/approve (Admin)
func (h *RequestHandler) Approve(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	var in decisionInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad body"})
	}
	req, m, err := h.Requests.Approve(id, validate.Note(in.Note))
	if err != nil {
		return fail(c, "requests.approve.fail", err)
	}
	applog.Audit(c, "requests.approve", map[string]any{"request": id, "material": m.ID, "remaining": m.Quantity})
	return c.JSON(fiber.Map{"request": req, "material": m})
}

// POST /api/v1/requests/:id/reject (Admin)
func (h *RequestHandler) Reject(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	var in decisionInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad body"})
	}
	req, err := h.Requests.Reject(id, validate.Note(in.Note))
	if err != nil {
		return fail(c, "requests.reject.fail", err)
	}
	applog.Audit(c, "requests.reject", map[string]any{"request": id})
	return c.JSON(req)
}

// POST /api/v1/requests/:id/note (Admin)
func (h *RequestHandler) SaveNote(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	var in decisionInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad body"})
	}
	req, err := h.Requests.SaveNote(id, validate.Note(in.Note))
	if err != nil {
		return fail(c, "requests.note.fail", err)
	}
	return c.JSON(req)
}

// DELETE /api/v1/requests/:id (Admin)
func (h *RequestHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	if err := h.Requests.Delete(id); err != nil {
		return fail(c, "requests.delete.fail", err)
	}
	applog.Audit(c, "requests.delete", map[string]any{"request": id})
	return c.SendStatus(fiber.StatusNoContent)
}
