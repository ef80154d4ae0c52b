package routes

import (
	"pos-kemasan/middleware"
	"pos-kemasan/models"

	"github.com/gofiber/fiber/v2"
)

func SetupOrderRoutes(app *fiber.App, h *Handlers) {
	api := app.Group(h.MainRoutes+"/orders", h.Auth.Authenticate)
	can := h.Auth.RequirePermission
	c := h.OrderController

	// Queues are registered before /:id so they are not captured by it.
	api.Get("/design-queue", can(middleware.PermOrdersQueueDesign), c.Queue(models.StatusAntrianDesain))
	api.Get("/design-in-progress", can(middleware.PermOrdersQueueDesign), c.Queue(models.StatusProsesDesain))
	api.Get("/production-queue", can(middleware.PermOrdersQueueProduction), c.Queue(models.StatusAntrianProduksi))
	api.Get("/production-in-progress", can(middleware.PermOrdersQueueProduction), c.Queue(models.StatusProsesProduksi))
	api.Get("/pickup-queue", can(middleware.PermOrdersQueuePickup), c.Queue(models.StatusSiapDiambil))

	api.Post("/", can(middleware.PermOrdersCreate), c.CreateOrder)
	api.Get("/", can(middleware.PermOrdersRead), c.GetAllOrders)
	api.Get("/:id", can(middleware.PermOrdersRead), c.GetOrderByID)
	api.Get("/:id/history", can(middleware.PermOrdersRead), c.GetOrderHistory)
	api.Put("/:id/status", can(middleware.PermOrdersStatus), c.UpdateOrderStatus)
}
