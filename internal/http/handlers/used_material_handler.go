package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "fieldstock/internal/log"
	"fieldstock/internal/services"
	"fieldstock/internal/validate"
)

type UsedMaterialHandler struct {
	Used *services.UsedMaterialService
}

// GET /api/v1/used-materials — visible to all roles.
func (h *UsedMaterialHandler) List(c *fiber.Ctx) error {
	items, err := h.Used.List(100)
	if err != nil {
		return fail(c, "used.list.fail", err)
	}
	return c.JSON(fiber.Map{"used_materials": items})
}

type usedInput struct {
	MaterialID string `json:"material_id"`
	Quantity   int    `json:"quantity"`
}

// POST /api/v1/used-materials (Technician)
func (h *UsedMaterialHandler) Submit(c *fiber.Ctx) error {
	var in usedInput
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
	um, err := h.Used.Submit(currentUser(c).ID, mid, in.Quantity)
	if err != nil {
		return fail(c, "used.submit.fail", err)
	}
	applog.Audit(c, "used.submit", map[string]any{"used": um.ID, "material": mid, "qty": in.Quantity})
	return c.Status(fiber.StatusCreated).JSON(um)
}

// PUT /api/v1/used-materials/:id (owning Technician, pending only)
func (h *UsedMaterialHandler) Amend(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	var in usedInput
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
	um, err := h.Used.Amend(id, currentUser(c).ID, mid, in.Quantity)
	if err != nil {
		return fail(c, "used.amend.fail", err)
	}
	return c.JSON(um)
}

// POST /api/v1/used-materials/:id/accept (Admin)
func (h *UsedMaterialHandler) Accept(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	var in decisionInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad body"})
	}
	um, m, err := h.Used.Accept(id, validate.Note(in.Note))
	if err != nil {
		return fail(c, "used.accept.fail", err)
	}
	applog.Audit(c, "used.accept", map[string]any{"used": id, "material": m.ID, "remaining": m.Quantity})
	return c.JSON(fiber.Map{"used_material": um, "material": m})
}

// POST /api/v1/used-materials/:id/reject (Admin)
func (h *UsedMaterialHandler) Reject(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	var in decisionInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad body"})
	}
	um, err := h.Used.Reject(id, validate.Note(in.Note))
	if err != nil {
		return fail(c, "used.reject.fail", err)
	}
	applog.Audit(c, "used.reject", map[string]any{"used": id})
	return c.JSON(um)
}
