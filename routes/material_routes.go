package routes

import (
	"pos-kemasan/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupMaterialRoutes(app *fiber.App, h *Handlers) {
	api := app.Group(h.MainRoutes+"/materials", h.Auth.Authenticate)
	can := h.Auth.RequirePermission
	c := h.MaterialController

	api.Post("/log-usage", can(middleware.PermMaterialsUsage), c.LogUsage)
	api.Post("/import", can(middleware.PermMaterialsManage), c.ImportMaterials)

	api.Get("/", can(middleware.PermMaterialsRead), c.GetAllMaterials)
	api.Post("/", can(middleware.PermMaterialsManage), c.CreateMaterial)
	api.Put("/:id", can(middleware.PermMaterialsManage), c.UpdateMaterial)
	api.Post("/:id/restock", can(middleware.PermMaterialsManage), c.Restock)
	api.Get("/:id/logs", can(middleware.PermMaterialsLogs), c.GetMaterialLogs)
}
