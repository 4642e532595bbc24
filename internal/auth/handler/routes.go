package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler) {
	auth := app.Group("/auth")
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
	auth.Post("/refresh", h.Refresh)
	auth.Get("/profile", h.RequireAuth, h.Profile)

	// Admin-only endpoints
	auth.Get("/users", h.RequireAuth, h.RequireRole("admin"), h.ListUsers)
}
