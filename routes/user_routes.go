package routes

import (
	"pos-kemasan/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App, h *Handlers) {
	api := app.Group(h.MainRoutes+"/users", h.Auth.Authenticate, h.Auth.RequirePermission(middleware.PermUsersManage))

	api.Get("/", h.UserController.GetAllUsers)
	api.Post("/", h.UserController.CreateUser)
	api.Put("/:id", h.UserController.UpdateUser)
	api.Delete("/:id", h.UserController.DeleteUser)
}
