package middleware

import (
	"time"

	"go-ferreteria-api/pkg/logger"
	"go-ferreteria-api/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// RequestLogger binds the request id to the user context and writes one
// access log line per request. Errors returned down the chain are handed to
// the app error handler here so the logged status is the one sent.
func RequestLogger(logg *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		rid, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
		ctx := logg.WithRequestID(c.UserContext(), rid)
		c.SetUserContext(ctx)

		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		fields := logger.Fields{
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"ip":         c.IP(),
		}
		entry := logg.WithFields(ctx, fields)
		switch {
		case status >= fiber.StatusInternalServerError:
			logg.Error(entry, "request failed", nil)
		case status >= fiber.StatusBadRequest:
			logg.Warn(entry, "request rejected")
		default:
			logg.Info(entry, "request completed")
		}
		return nil
	}
}

// Metrics records request counts and latency by matched route. It must sit
// outside RequestLogger so it observes the final status.
func Metrics(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		m.ObserveRequest(c.Method(), c.Route().Path, c.Response().StatusCode(), time.Since(start))
		return err
	}
}
