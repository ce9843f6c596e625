package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"

	"house-designer/internal/common/logger"
)

// ============================================================
// Logger Middleware
// ============================================================

// Logger пишет в лог метод, путь, статус и время обработки каждого запроса.
func Logger(log *logger.Logger) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		kv := []interface{}{
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency", time.Since(start).String(),
			"ip", c.IP(),
		}
		switch {
		case status >= 500:
			log.Error("request", append(kv, "error", err)...)
		case status >= 400:
			log.Warn("request", kv...)
		default:
			log.Info("request", kv...)
		}
		return err
	}
}
