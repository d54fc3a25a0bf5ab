package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"fieldstock/internal/domain"
	applog "fieldstock/internal/log"
	"fieldstock/internal/repos"
	"fieldstock/internal/validate"
)

// VendorHandler talks to the repo directly; vendor records carry no business
// rules beyond role gating.
type VendorHandler struct {
	Vendors *repos.VendorRepo
}

// GET /api/v1/vendors (Admin)
func (h *VendorHandler) List(c *fiber.Ctx) error {
	vendors, err := h.Vendors.List()
	if err != nil {
		return fail(c, "vendors.list.fail", err)
	}
	return c.JSON(fiber.Map{"vendors": vendors})
}

// POST /api/v1/vendors (Admin)
func (h *VendorHandler) Create(c *fiber.Ctx) error {
	var in struct {
		Name          string `json:"name"`
		ContactPerson string `json:"contact_person"`
		Email         string `json:"email"`
		Phone         string `json:"phone"`
		Address       string `json:"address"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad body"})
	}
	name, ok := validate.Name(in.Name)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid name"})
	}
	if in.Email != "" {
		if _, ok := validate.Email(in.Email); !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid email"})
		}
	}
	v := &domain.Vendor{
		ID:            uuid.NewString(),
		Name:          name,
		ContactPerson: validate.Note(in.ContactPerson),
		Email:         in.Email,
		Phone:         validate.Note(in.Phone),
		Address:       validate.Note(in.Address),
		CreatedBy:     currentUser(c).Username,
	}
	if err := h.Vendors.Create(v); err != nil {
		return fail(c, "vendors.create.fail", err)
	}
	applog.Audit(c, "vendors.create", map[string]any{"vendor": v.ID})
	return c.Status(fiber.StatusCreated).JSON(v)
}

// DELETE /api/v1/vendors/:id (Admin)
func (h *VendorHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	if err := h.Vendors.Delete(id); err != nil {
		return fail(c, "vendors.delete.fail", err)
	}
	applog.Audit(c, "vendors.delete", map[string]any{"vendor": id})
	return c.SendStatus(fiber.StatusNoContent)
}
