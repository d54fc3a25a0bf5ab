package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "fieldstock/internal/log"
	"fieldstock/internal/services"
	"fieldstock/internal/validate"
)

type TaskHandler struct {
	Tasks *services.TaskService
}

// GET /api/v1/tasks
func (h *TaskHandler) List(c *fiber.Ctx) error {
	tasks, err := h.Tasks.List(currentUser(c))
	if err != nil {
		return fail(c, "tasks.list.fail", err)
	}
	return c.JSON(fiber.Map{"tasks": tasks})
}

// POST /api/v1/tasks (Admin/Storekeeper)
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	var in struct {
		Title        string `json:"title"`
		Customer     string `json:"customer"`
		Address      string `json:"address"`
		TechnicianID string `json:"technician_id"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad body"})
	}
	title, okTitle := validate.Name(in.Title)
	tid, okTech := validate.ID(in.TechnicianID)
	if !okTitle || !okTech {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid title or technician"})
	}
	t, err := h.Tasks.Create(title, validate.Note(in.Customer), validate.Note(in.Address), tid)
	if err != nil {
		return fail(c, "tasks.create.fail", err)
	}
	applog.Audit(c, "tasks.create", map[string]any{"task": t.ID, "technician": tid})
	return c.Status(fiber.StatusCreated).JSON(t)
}

// POST /api/v1/tasks/:id/status
func (h *TaskHandler) UpdateStatus(c *fiber.Ctx) error {
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
	st, ok := validate.TaskStatus(in.Status)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid status"})
	}
	t, err := h.Tasks.UpdateStatus(id, st, currentUser(c))
	if err != nil {
		return fail(c, "tasks.status.fail", err)
	}
	applog.Audit(c, "tasks.status", map[string]any{"task": id, "status": st})
	return c.JSON(t)
}

// DELETE /api/v1/tasks/:id (Admin)
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	if err := h.Tasks.Delete(id); err != nil {
		return fail(c, "tasks.delete.fail", err)
	}
	applog.Audit(c, "tasks.delete", map[string]any{"task": id})
	return c.SendStatus(fiber.StatusNoContent)
}
