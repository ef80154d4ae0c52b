package controllers

import (
	"pos-kemasan/controllers/helpers"
	"pos-kemasan/services"

	"github.com/gofiber/fiber/v2"
)

type ReportController struct {
	Reports *services.ReportService
}

func NewReportController(reports *services.ReportService) *ReportController {
	return &ReportController{Reports: reports}
}

func (c *ReportController) SalesSummary(ctx *fiber.Ctx) error {
	summary, err := c.Reports.SalesSummary(ctx.UserContext(), ctx.Query("period"))
	if err != nil {
		return helpers.Fail(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Ringkasan penjualan", summary)
}

func (c *ReportController) SalesOverTime(ctx *fiber.Ctx) error {
	points, err := c.Reports.SalesOverTime(ctx.UserContext(), ctx.Query("period"))
	if err != nil {
		return helpers.Fail(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Penjualan per periode", points)
}

func (c *ReportController) SalesDetail(ctx *fiber.Ctx) error {
	rows, err := c.Reports.SalesDetail(ctx.UserContext(), ctx.Query("period"))
	if err != nil {
		return helpers.Fail(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Detail penjualan", rows)
}

func (c *ReportController) FinancialTransactions(ctx *fiber.Ctx) error {
	report, err := c.Reports.FinancialTransactions(ctx.UserContext(), ctx.Query("period"))
	if err != nil {
		return helpers.Fail(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Transaksi keuangan", report)
}
