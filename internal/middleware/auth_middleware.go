package middleware

import (
	"strings"

	"go-ferreteria-api/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// RequireOperator guards maintenance routes with an operator JWT. With an
// empty secret the guard is disabled and every request passes.
func RequireOperator(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if len(secret) == 0 {
			return c.Next()
		}

		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token de autorización requerido"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Formato de autorización inválido. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(secret, parts[1])
		if err != nil || claims.Role != jwt.RoleOperator {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token inválido o expirado"})
		}

		c.Locals("operator", claims.Subject)
		return c.Next()
	}
}
