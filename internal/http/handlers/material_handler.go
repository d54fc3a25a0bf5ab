package handlers

import (
	"github.com/gofiber/fiber/v2"

	"fieldstock/internal/domain"
	applog "fieldstock/internal/log"
	"fieldstock/internal/repos"
	"fieldstock/internal/services"
	"fieldstock/internal/validate"
)

type MaterialHandler struct {
	Stock *services.StockService
}

type materialInput struct {
	Name          string `json:"name"`
	Category      string `json:"category"`
	Quantity      int    `json:"quantity"`
	MinStockLevel int    `json:"min_stock_level"`
	Notes         string `json:"notes"`
}

// GET /api/v1/materials?search=&stock_status=
func (h *MaterialHandler) List(c *fiber.Ctx) error {
	f := repos.ListFilter{
		Search:      c.Query("search"),
		StockStatus: c.Query("stock_status"),
	}
	mats, err := h.Stock.List(f, currentUser(c))
	if err != nil {
		return fail(c, "materials.list.fail", err)
	}
	return c.JSON(fiber.Map{"materials": mats})
}

// GET /api/v1/materials/:id
func (h *MaterialHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	m, err := h.Stock.Get(id)
	if err != nil {
		return fail(c, "materials.get.fail", err)
	}
	u := currentUser(c)
	if u.Role == domain.RoleTechnician && m.AddedBy != u.Username {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden"})
	}
	return c.JSON(m)
}

// POST /api/v1/materials (Storekeeper)
func (h *MaterialHandler) Create(c *fiber.Ctx) error {
	var in materialInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad body"})
	}
	name, okName := validate.Name(in.Name)
	cat, okCat := validate.Category(in.Category)
	if !okName || !okCat {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid name or category"})
	}
	m := &domain.Material{
		Name:          name,
		Category:      cat,
		Quantity:      in.Quantity,
		MinStockLevel: in.MinStockLevel,
		Notes:         validate.Note(in.Notes),
	}
	out, err := h.Stock.Create(m, currentUser(c))
	if err != nil {
		return fail(c, "materials.create.fail", err)
	}
	applog.Audit(c, "materials.create", map[string]any{"material": out.ID, "qty": out.Quantity})
	return c.Status(fiber.StatusCreated).JSON(out)
}

// PUT /api/v1/materials/:id
func (h *MaterialHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	var in materialInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad body"})
	}
	name, okName := validate.Name(in.Name)
	cat, okCat := validate.Category(in.Category)
	if !okName || !okCat {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid name or category"})
	}
	m := &domain.Material{
		ID:            id,
		Name:          name,
		Category:      cat,
		Quantity:      in.Quantity,
		MinStockLevel: in.MinStockLevel,
		Notes:         validate.Note(in.Notes),
	}
	out, err := h.Stock.Update(m, currentUser(c))
	if err != nil {
		return fail(c, "materials.update.fail", err)
	}
	applog.Audit(c, "materials.update", map[string]any{"material": id})
	return c.JSON(out)
}

// DELETE /api/v1/materials/:id
func (h *MaterialHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	if err := h.Stock.Delete(id, currentUser(c)); err != nil {
		return fail(c, "materials.delete.fail", err)
	}
	applog.Audit(c, "materials.delete", map[string]any{"material": id})
	return c.SendStatus(fiber.StatusNoContent)
}

// POST /api/v1/materials/:id/use (Technician)
func (h *MaterialHandler) Use(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	var in struct {
		Quantity int `json:"quantity"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad body"})
	}
	if !validate.QtyInt(in.Quantity) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "quantity must be a positive integer"})
	}
	m, err := h.Stock.UseMaterial(id, in.Quantity, currentUser(c).Role)
	if err != nil {
		return fail(c, "materials.use.fail", err)
	}
	applog.Audit(c, "materials.use", map[string]any{"material": id, "qty": in.Quantity, "remaining": m.Quantity})
	return c.JSON(m)
}

// POST /api/v1/materials/:id/receive (Storekeeper/Admin)
func (h *MaterialHandler) Receive(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	var in struct {
		Quantity int `json:"quantity"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad body"})
	}
	if !validate.QtyInt(in.Quantity) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "quantity must be a positive integer"})
	}
	m, err := h.Stock.Receive(id, in.Quantity)
	if err != nil {
		return fail(c, "materials.receive.fail", err)
	}
	applog.Audit(c, "materials.receive", map[string]any{"material": id, "qty": in.Quantity})
	return c.JSON(m)
}

// POST /api/v1/materials/:id/status (Admin) — manual Reserved/Deprecated pin,
// or "auto" to return the material to quantity-derived status.
func (h *MaterialHandler) SetStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	var in struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad body"})
	}
	st, ok := validate.PinnedStatus(in.Status)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "status must be Reserved, Deprecated or auto"})
	}
	m, err := h.Stock.SetPinned(id, st)
	if err != nil {
		return fail(c, "materials.status.fail", err)
	}
	applog.Audit(c, "materials.status", map[string]any{"material": id, "status": string(m.Status)})
	return c.JSON(m)
}
