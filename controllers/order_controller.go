package controllers

import (
	"pos-kemasan/controllers/helpers"
	"pos-kemasan/models"
	"pos-kemasan/services"

	"github.com/gofiber/fiber/v2"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

func (c *OrderController) CreateOrder(ctx *fiber.Ctx) error {
	var input services.CreateOrderInput
	if err := ctx.BodyParser(&input); err != nil {
		return helpers.BadRequest(ctx, "Body request tidak valid.")
	}

	order, err := c.Orders.Create(ctx.UserContext(), input, helpers.Actor(ctx))
	if err != nil {
		return helpers.Fail(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusCreated, "Pesanan berhasil dibuat", fiber.Map{"orderId": order.ID})
}

func (c *OrderController) GetAllOrders(ctx *fiber.Ctx) error {
	orders, err := c.Orders.List(ctx.UserContext())
	if err != nil {
		return helpers.Fail(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Daftar pesanan", orders)
}

// Queue serves one workflow stage, oldest order first.
func (c *OrderController) Queue(status models.OrderStatus) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		orders, err := c.Orders.Queue(ctx.UserContext(), status)
		if err != nil {
			return helpers.Fail(ctx, err)
		}
		return helpers.Success(ctx, fiber.StatusOK, string(status), orders)
	}
}

func (c *OrderController) GetOrderByID(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.Fail(ctx, err)
	}
	order, err := c.Orders.Get(ctx.UserContext(), id)
	if err != nil {
		return helpers.Fail(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Detail pesanan", order)
}

func (c *OrderController) GetOrderHistory(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.Fail(ctx, err)
	}
	history, err := c.Orders.History(ctx.UserContext(), id)
	if err != nil {
		return helpers.Fail(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Riwayat status pesanan", history)
}

func (c *OrderController) UpdateOrderStatus(ctx *fiber.Ctx) error {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		return helpers.Fail(ctx, err)
	}
	var input struct {
		Status string `json:"status"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return helpers.BadRequest(ctx, "Body request tidak valid.")
	}

	order, err := c.Orders.UpdateStatus(ctx.UserContext(), id, input.Status, helpers.Actor(ctx))
	if err != nil {
		return helpers.Fail(ctx, err)
	}
	return helpers.Success(ctx, fiber.StatusOK, "Status pesanan diperbarui", order)
}
