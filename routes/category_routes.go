package routes

import (
	"pos-kemasan/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupCategoryRoutes(app *fiber.App, h *Handlers) {
	api := app.Group(h.MainRoutes+"/material-categories", h.Auth.Authenticate)
	can := h.Auth.RequirePermission
	c := h.CategoryController

	api.Get("/", can(middleware.PermCategoriesRead), c.GetAllCategories)
	api.Post("/", can(middleware.PermCategoriesManage), c.CreateCategory)
	api.Put("/:id", can(middleware.PermCategoriesManage), c.UpdateCategory)
	api.Delete("/:id", can(middleware.PermCategoriesManage), c.DeleteCategory)
}
