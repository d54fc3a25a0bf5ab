package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"fieldstock/internal/config"
	"fieldstock/internal/domain"
	"fieldstock/internal/http/handlers"
	applog "fieldstock/internal/log"
	"fieldstock/internal/metrics"
	"fieldstock/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	// ---------- Health & metrics ----------
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	if cfg.Metrics {
		app.Get("/metrics", metrics.Handler())
	}

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db)

	api := app.Group("/api/v1", handlers.Authenticate(deps.UserRepo))

	api.Get("/dashboard", deps.AdminHandler.Dashboard)

	// Materials (stock ledger). Ownership rules live in the service layer;
	// the guards here gate by role only.
	api.Get("/materials", deps.MaterialHandler.List)
	api.Post("/materials", handlers.RequireRole(domain.RoleStorekeeper), deps.MaterialHandler.Create)
	api.Get("/materials/:id", deps.MaterialHandler.Get)
	api.Put("/materials/:id", deps.MaterialHandler.Update)
	api.Delete("/materials/:id", deps.MaterialHandler.Delete)
	api.Post("/materials/:id/use", handlers.RequireRole(domain.RoleTechnician), deps.MaterialHandler.Use)
	api.Post("/materials/:id/receive", handlers.RequireRole(domain.RoleAdmin, domain.RoleStorekeeper), deps.MaterialHandler.Receive)
	api.Post("/materials/:id/status", handlers.RequireRole(domain.RoleAdmin), deps.MaterialHandler.SetStatus)

	// Requisitions
	api.Get("/requests", deps.RequestHandler.List)
	api.Post("/requests", handlers.RequireRole(domain.RoleTechnician), deps.RequestHandler.Submit)
	api.Post("/requests/:id/approve", handlers.RequireRole(domain.RoleAdmin), deps.RequestHandler.Approve)
	api.Post("/requests/:id/reject", handlers.RequireRole(domain.RoleAdmin), deps.RequestHandler.Reject)
	api.Post("/requests/:id/note", handlers.RequireRole(domain.RoleAdmin), deps.RequestHandler.SaveNote)
	api.Delete("/requests/:id", handlers.RequireRole(domain.RoleAdmin), deps.RequestHandler.Delete)

	// Usage reports from the field
	api.Get("/used-materials", deps.UsedMaterialHandler.List)
	api.Post("/used-materials", handlers.RequireRole(domain.RoleTechnician), deps.UsedMaterialHandler.Submit)
	api.Put("/used-materials/:id", handlers.RequireRole(domain.RoleTechnician), deps.UsedMaterialHandler.Amend)
	api.Post("/used-materials/:id/accept", handlers.RequireRole(domain.RoleAdmin), deps.UsedMaterialHandler.Accept)
	api.Post("/used-materials/:id/reject", handlers.RequireRole(domain.RoleAdmin), deps.UsedMaterialHandler.Reject)

	// Tasks
	api.Get("/tasks", deps.TaskHandler.List)
	api.Post("/tasks", handlers.RequireRole(domain.RoleAdmin, domain.RoleStorekeeper), deps.TaskHandler.Create)
	api.Post("/tasks/:id/status", deps.TaskHandler.UpdateStatus)
	api.Delete("/tasks/:id", handlers.RequireRole(domain.RoleAdmin), deps.TaskHandler.Delete)

	// Vendors
	vendors := api.Group("/vendors", handlers.RequireRole(domain.RoleAdmin))
	vendors.Get("/", deps.VendorHandler.List)
	vendors.Post("/", deps.VendorHandler.Create)
	vendors.Delete("/:id", deps.VendorHandler.Delete)

	// Reports
	api.Get("/reports/usage", deps.ReportHandler.Usage)
	api.Get("/reports/usage.xlsx", deps.ReportHandler.Export)

	// Users
	api.Get("/users", handlers.RequireRole(domain.RoleAdmin), deps.AdminHandler.UsersList)
	api.Post("/users/:id/role", handlers.RequireRole(domain.RoleAdmin), deps.AdminHandler.ChangeRole)

	log.Fatal(app.Listen(":" + cfg.Port))
}
