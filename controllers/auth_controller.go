package controllers

import (
	"pos-kemasan/controllers/helpers"
	"pos-kemasan/services"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

func (c *AuthController) Login(ctx *fiber.Ctx) error {
	var input services.LoginInput
	if err := ctx.BodyParser(&input); err != nil {
		return helpers.BadRequest(ctx, "Body request tidak valid.")
	}

	result, err := c.Auth.Login(ctx.UserContext(), input)
	if err != nil {
		return helpers.Fail(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Login berhasil", result)
}

func (c *AuthController) Me(ctx *fiber.Ctx) error {
	profile, err := c.Auth.Me(ctx.UserContext(), helpers.Actor(ctx))
	if err != nil {
		return helpers.Fail(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Data pengguna", profile)
}
