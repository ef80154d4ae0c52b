package middleware

import (
	"log/slog"
	"time"

	"pos-kemasan/logger"

	"github.com/gofiber/fiber/v2"
)

// RequestLogger must run after the requestid middleware. It puts a logger tagged with the request id into the request
// context and logs every finished request.
func RequestLogger(base *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		rid, _ := c.Locals("requestid").(string)
		l := base.With("request_id", rid)
		c.SetUserContext(logger.Inject(c.UserContext(), l))

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		level := slog.LevelInfo
		if status >= fiber.StatusInternalServerError {
			level = slog.LevelError
		}
		l.Log(c.UserContext(), level, "request",
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency", time.Since(start).String(),
		)
		return err
	}
}
