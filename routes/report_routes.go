package routes

import (
	"pos-kemasan/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupReportRoutes(app *fiber.App, h *Handlers) {
	api := app.Group(h.MainRoutes+"/reports", h.Auth.Authenticate, h.Auth.RequirePermission(middleware.PermReportsRead))

	api.Get("/sales-summary", h.ReportController.SalesSummary)
	api.Get("/sales-over-time", h.ReportController.SalesOverTime)
	api.Get("/sales-detail", h.ReportController.SalesDetail)
	api.Get("/financial-transactions", h.ReportController.FinancialTransactions)
}
