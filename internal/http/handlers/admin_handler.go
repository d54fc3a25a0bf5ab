package handlers

import (
	"github.com/gofiber/fiber/v2"

	"fieldstock/internal/domain"
	applog "fieldstock/internal/log"
	"fieldstock/internal/repos"
	"fieldstock/internal/validate"
)

// AdminHandler covers user administration and the dashboard counters.
type AdminHandler struct {
	Users   *repos.UserRepo
	Tasks   *repos.TaskRepo
	Reports *repos.ReportRepo
}

// GET /api/v1/dashboard — headline counts for the landing cards.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	materials, pending, err := h.Reports.DashboardCounts()
	if err != nil {
		return fail(c, "dashboard.fail", err)
	}
	active, err := h.Tasks.CountActive()
	if err != nil {
		return fail(c, "dashboard.fail", err)
	}
	return c.JSON(fiber.Map{
		"total_materials":  materials,
		"active_tasks":     active,
		"pending_requests": pending,
	})
}

// GET /api/v1/users (Admin)
func (h *AdminHandler) UsersList(c *fiber.Ctx) error {
	users, err := h.Users.List()
	if err != nil {
		return fail(c, "admin.users.list.fail", err)
	}
	return c.JSON(fiber.Map{"users": users})
}

// POST /api/v1/users/:id/role (Admin)
func (h *AdminHandler) ChangeRole(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	var in struct {
		Role string `json:"role"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad body"})
	}
	role := domain.Role(in.Role)
	switch role {
	case domain.RoleAdmin, domain.RoleStorekeeper, domain.RoleTechnician:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid role"})
	}
	if err := h.Users.UpdateRole(id, role); err != nil {
		return fail(c, "admin.users.role.fail", err)
	}
	applog.Audit(c, "admin.users.role", map[string]any{"user_id": id, "role": in.Role})
	u, err := h.Users.ByID(id)
	if err != nil {
		return fail(c, "admin.users.role.fail", err)
	}
	return c.JSON(u)
}
