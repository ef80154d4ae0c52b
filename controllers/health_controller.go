package controllers

import (
	"context"
	"time"

	"pos-kemasan/controllers/helpers"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Pinger is an optional dependency checked by the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	DB    *gorm.DB
	Cache Pinger
}

func NewHealthController(db *gorm.DB, cache Pinger) *HealthController {
	return &HealthController{DB: db, Cache: cache}
}

func (c *HealthController) Health(ctx *fiber.Ctx) error {
	pingCtx, cancel := context.WithTimeout(ctx.UserContext(), 2*time.Second)
	defer cancel()

	checks := fiber.Map{"database": "ok"}
	healthy := true

	sqlDB, err := c.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(pingCtx)
	}
	if err != nil {
		checks["database"] = "down"
		healthy = false
	}
	if c.Cache != nil {
		checks["cache"] = "ok"
		if err := c.Cache.Ping(pingCtx); err != nil {
			checks["cache"] = "down"
			healthy = false
		}
	}

	if !healthy {
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"success": false,
			"message": "Service unavailable",
			"data":    checks,
		})
	}
	return helpers.Success(ctx, fiber.StatusOK, "OK", checks)
}
