package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"catalog/internal/services"
)

// AuthRequired is a Fiber middleware to check for a valid JWT token.
// A missing token and a bad token are distinct outcomes at the API surface:
// absence is 401, anything present but unverifiable is 403.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "No token provided",
			})
		}

		// Expected format: "Bearer <token>"
		var tokenString string
		if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 {
			if parts[0] != "Bearer" {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
					"message": "Invalid token",
				})
			}
			tokenString = parts[1]
		}
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "No token provided",
			})
		}

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Invalid token",
			})
		}

		// Store the identity in Fiber context for subsequent handlers
		c.Locals("username", claims["username"])

		// Continue to the next handler
		return c.Next()
	}
}
