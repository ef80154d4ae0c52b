package controllers

import (
	"pos-kemasan/controllers/helpers"
	"pos-kemasan/services"

	"github.com/gofiber/fiber/v2"
)

type FinancialController struct {
	Financial *services.FinancialService
}

func NewFinancialController(financial *services.FinancialService) *FinancialController {
	return &FinancialController{Financial: financial}
}

func (c *FinancialController) GetFinancialLogs(ctx *fiber.Ctx) error {
	logs, err := c.Financial.List(ctx.UserContext(), ctx.Query("period"))
	if err != nil {
		return helpers.Fail(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Catatan keuangan", logs)
}

func (c *FinancialController) CreateFinancialLog(ctx *fiber.Ctx) error {
	var input services.FinancialLogInput
	if err := ctx.BodyParser(&input); err != nil {
		return helpers.BadRequest(ctx, "Body request tidak valid.")
	}
	entry, err := c.Financial.Create(ctx.UserContext(), input, helpers.Actor(ctx))
	if err != nil {
		return helpers.Fail(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusCreated, "Catatan keuangan berhasil dibuat", entry)
}
