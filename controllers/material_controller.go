package controllers

import (
	"strings"

	"pos-kemasan/apperr"
	"pos-kemasan/controllers/helpers"
	"pos-kemasan/services"

	"github.com/gofiber/fiber/v2"
)

type MaterialController struct {
	Materials *services.MaterialService
}

func NewMaterialController(materials *services.MaterialService) *MaterialController {
	return &MaterialController{Materials: materials}
}

func (c *MaterialController) GetAllMaterials(ctx *fiber.Ctx) error {
	materials, err := c.Materials.List(ctx.UserContext())
	if err != nil {
		return helpers.Fail(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Daftar bahan", materials)
}

func (c *MaterialController) CreateMaterial(ctx *fiber.Ctx) error {
	var input services.MaterialInput
	if err := ctx.BodyParser(&input); err != nil {
		return helpers.BadRequest(ctx, "Body request tidak valid.")
	}

	material, err := c.Materials.Create(ctx.UserContext(), input, helpers.Actor(ctx))
	if err != nil {
		return helpers.Fail(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusCreated, "Bahan berhasil dibuat", material)
}

func (c *MaterialController) UpdateMaterial(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.Fail(ctx, err)
	}
	var input services.MaterialInput
	if err := ctx.BodyParser(&input); err != nil {
		return helpers.BadRequest(ctx, "Body request tidak valid.")
	}

	material, err := c.Materials.Update(ctx.UserContext(), id, input)
	if err != nil {
		return helpers.Fail(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Bahan berhasil diperbarui", material)
}

func (c *MaterialController) Restock(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.Fail(ctx, err)
	}
	var input services.RestockInput
	if err := ctx.BodyParser(&input); err != nil {
		return helpers.BadRequest(ctx, "Body request tidak valid.")
	}

	material, err := c.Materials.Restock(ctx.UserContext(), id, input, helpers.Actor(ctx))
	if err != nil {
		return helpers.Fail(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Stok bahan ditambahkan", material)
}

func (c *MaterialController) GetMaterialLogs(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.Fail(ctx, err)
	}
	logs, err := c.Materials.Logs(ctx.UserContext(), id)
	if err != nil {
		return helpers.Fail(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Riwayat bahan", logs)
}

func (c *MaterialController) LogUsage(ctx *fiber.Ctx) error {
	var input services.LogUsageInput
	if err := ctx.BodyParser(&input); err != nil {
		return helpers.BadRequest(ctx, "Body request tidak valid.")
	}

	result, err := c.Materials.LogUsage(ctx.UserContext(), input, helpers.Actor(ctx))
	if err != nil {
		return helpers.Fail(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Pemakaian bahan berhasil dicatat", result)
}

func (c *MaterialController) ImportMaterials(ctx *fiber.Ctx) error {
	file, err := ctx.FormFile("file")
	if err != nil {
		return helpers.Fail(ctx, apperr.Validation("file", "File wajib diunggah."))
	}
	if !strings.HasSuffix(strings.ToLower(file.Filename), ".xlsx") {
		return helpers.Fail(ctx, apperr.Validation("file", "Hanya file Excel (.xlsx) yang diperbolehkan."))
	}

	fileContent, err := file.Open()
	if err != nil {
		return helpers.Fail(ctx, apperr.Storage("open upload", err))
	}
	defer fileContent.Close()

	result, err := c.Materials.Import(ctx.UserContext(), fileContent, helpers.Actor(ctx))
	if err != nil {
		return helpers.Fail(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Import bahan selesai", result)
}
