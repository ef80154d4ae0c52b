package routes

import (
	"pos-kemasan/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupFinancialRoutes(app *fiber.App, h *Handlers) {
	api := app.Group(h.MainRoutes+"/financial-logs", h.Auth.Authenticate, h.Auth.RequirePermission(middleware.PermFinanceLogs))

	api.Get("/", h.FinancialController.GetFinancialLogs)
	api.Post("/", h.FinancialController.CreateFinancialLog)
}
