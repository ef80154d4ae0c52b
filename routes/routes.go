package routes

import (
	"pos-kemasan/controllers"
	"pos-kemasan/metrics"
	"pos-kemasan/middleware"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles everything the route tables need.
type Handlers struct {
	MainRoutes string
	Auth       *middleware.AuthMiddleware
	Metrics    *metrics.Metrics

	AuthController      *controllers.AuthController
	UserController      *controllers.UserController
	OrderController     *controllers.OrderController
	MaterialController  *controllers.MaterialController
	CategoryController  *controllers.CategoryController
	FinancialController *controllers.FinancialController
	ReportController    *controllers.ReportController
	HealthController    *controllers.HealthController
}

// Setup registers every route of the API.
func Setup(app *fiber.App, h *Handlers) {
	SetupHealthRoutes(app, h)
	SetupAuthRoutes(app, h)
	SetupUserRoutes(app, h)
	SetupOrderRoutes(app, h)
	SetupMaterialRoutes(app, h)
	SetupCategoryRoutes(app, h)
	SetupFinancialRoutes(app, h)
	SetupReportRoutes(app, h)
}

func SetupHealthRoutes(app *fiber.App, h *Handlers) {
	app.Get(h.MainRoutes+"/health", h.HealthController.Health)
	if h.Metrics != nil {
		app.Get("/metrics", h.Metrics.Handler())
	}
}
