package controllers

import (
	"pos-kemasan/controllers/helpers"
	"pos-kemasan/services"

	"github.com/gofiber/fiber/v2"
)

type UserController struct {
	Users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{Users: users}
}

func (c *UserController) GetAllUsers(ctx *fiber.Ctx) error {
	users, err := c.Users.List(ctx.UserContext())
	if err != nil {
		return helpers.Fail(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Daftar pengguna", users)
}

func (c *UserController) CreateUser(ctx *fiber.Ctx) error {
	var input services.UserInput
	if err := ctx.BodyParser(&input); err != nil {
		return helpers.BadRequest(ctx, "Body request tidak valid.")
	}

	user, err := c.Users.Create(ctx.UserContext(), input)
	if err != nil {
		return helpers.Fail(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusCreated, "Pengguna berhasil dibuat", user)
}

func (c *UserController) UpdateUser(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.Fail(ctx, err)
	}
	var input services.UserInput
	if err := ctx.BodyParser(&input); err != nil {
		return helpers.BadRequest(ctx, "Body request tidak valid.")
	}

	user, err := c.Users.Update(ctx.UserContext(), id, input)
	if err != nil {
		return helpers.Fail(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Pengguna berhasil diperbarui", user)
}

func (c *UserController) DeleteUser(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.Fail(ctx, err)
	}
	if err := c.Users.Delete(ctx.UserContext(), id, helpers.Actor(ctx)); err != nil {
		return helpers.Fail(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Pengguna berhasil dihapus", nil)
}
