package handler

import (
	"github.com/gofiber/fiber/v2"

	authhandler "github.com/nandha2804/TMS/internal/auth/handler"
)

// RegisterRoutes mounts the task routes; every one requires a bearer token.
func RegisterRoutes(app *fiber.App, h *TaskHandler, auth *authhandler.AuthHandler) {
	tasks := app.Group("/tasks", auth.RequireAuth)
	tasks.Post("/", h.Create)
	tasks.Get("/", h.List)
	tasks.Get("/stats", h.Stats)
	tasks.Get("/my-tasks", h.ListMine)
	tasks.Get("/overdue", h.ListOverdue)
	tasks.Get("/:id", h.Get)
	tasks.Patch("/:id", h.Update)
	tasks.Delete("/:id", h.Delete)
}
