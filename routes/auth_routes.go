package routes

import (
	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, h *Handlers) {
	api := app.Group(h.MainRoutes + "/auth")
	api.Post("/login", h.AuthController.Login)
	api.Get("/me", h.Auth.Authenticate, h.AuthController.Me)
}
