package controllers

import (
	"pos-kemasan/controllers/helpers"
	"pos-kemasan/services"

	"github.com/gofiber/fiber/v2"
)

type CategoryController struct {
	Categories *services.CategoryService
}

func NewCategoryController(categories *services.CategoryService) *CategoryController {
	return &CategoryController{Categories: categories}
}

func (c *CategoryController) GetAllCategories(ctx *fiber.Ctx) error {
	categories, err := c.Categories.List(ctx.UserContext())
	if err != nil {
		return helpers.Fail(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Daftar kategori", categories)
}

func (c *CategoryController) CreateCategory(ctx *fiber.Ctx) error {
	var input services.CategoryInput
	if err := ctx.BodyParser(&input); err != nil {
		return helpers.BadRequest(ctx, "Body request tidak valid.")
	}
	category, err := c.Categories.Create(ctx.UserContext(), input)
	if err != nil {
		return helpers.Fail(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusCreated, "Kategori berhasil dibuat", category)
}

func (c *CategoryController) UpdateCategory(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.Fail(ctx, err)
	}
	var input services.CategoryInput
	if err := ctx.BodyParser(&input); err != nil {
		return helpers.BadRequest(ctx, "Body request tidak valid.")
	}
	category, err := c.Categories.Update(ctx.UserContext(), id, input)
	if err != nil {
		return helpers.Fail(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Kategori berhasil diperbarui", category)
}

func (c *CategoryController) DeleteCategory(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.Fail(ctx, err)
	}
	if err := c.Categories.Delete(ctx.UserContext(), id); err != nil {
		return helpers.Fail(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Kategori berhasil dihapus", nil)
}
