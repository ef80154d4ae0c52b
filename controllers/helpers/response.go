// Package helpers holds the response envelope and request plumbing shared by
// every controller.
package helpers

import (
	"errors"
	"strconv"

	"pos-kemasan/apperr"
	"pos-kemasan/logger"
	"pos-kemasan/models"
	"pos-kemasan/services"

	"github.com/gofiber/fiber/v2"
)

// Locals keys written by the auth middleware.
const (
	LocalUserID = "userID"
	LocalRole   = "role"
)

// Success writes {"success": true, "message", "data"}.
func Success(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// Fail maps err to its HTTP status and writes {"success": false, "message"}.
// Storage causes are logged, never returned.
func Fail(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{
			"success": false,
			"message": fe.Message,
		})
	}

	status := apperr.HTTPStatus(err)
	if status >= fiber.StatusInternalServerError {
		logger.FromCtx(c.UserContext()).Error("request failed",
			"method", c.Method(), "path", c.Path(), "error", err)
	}

	body := fiber.Map{
		"success": false,
		"message": apperr.PublicMessage(err),
	}
	if field := apperr.FieldOf(err); field != "" {
		body["field"] = field
	}
	return c.Status(status).JSON(body)
}

// BadRequest answers a body that could not be parsed.
func BadRequest(c *fiber.Ctx, message string) error {
	return Fail(c, apperr.Validation("", message))
}

// ParamID reads a positive integer path parameter.
func ParamID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Validation(name, "ID tidak valid.")
	}
	return uint(id), nil
}

// Actor returns the authenticated user stored by the auth middleware.
func Actor(c *fiber.Ctx) services.Actor {
	id, _ := c.Locals(LocalUserID).(uint)
	role, _ := c.Locals(LocalRole).(models.Role)
	return services.Actor{UserID: id, Role: role}
}
