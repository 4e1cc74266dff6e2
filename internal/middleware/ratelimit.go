package middleware

import (
	"fmt"
	"strconv"

	"go-ferreteria-api/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RateLimit throttles per client IP using a formatted rate such as "120-M".
func RateLimit(formatted string, logg *logger.Logger) (fiber.Handler, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("parse rate limit %q: %w", formatted, err)
	}
	instance := limiter.New(memory.NewStore(), rate)

	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		result, err := instance.Get(ctx, c.IP())
		if err != nil {
			// Fail open.
			logg.Error(ctx, "rate limiter lookup failed", err)
			return c.Next()
		}

		c.Set("X-RateLimit-Limit", strconv.FormatInt(result.Limit, 10))
		c.Set("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(result.Reset, 10))

		if result.Reached {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Demasiadas solicitudes, intente más tarde"})
		}
		return c.Next()
	}, nil
}
