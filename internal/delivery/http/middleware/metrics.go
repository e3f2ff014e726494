package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/border-traffic-monitor/internal/pkg/metrics"
)

// Instrument counts requests of one operation by response status.
func Instrument(operation string, next fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := next(c)

		status := c.Response().StatusCode()
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}
		metrics.RequestsTotal.WithLabelValues(operation, strconv.Itoa(status)).Inc()
		return err
	}
}
