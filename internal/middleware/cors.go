package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CORSConfig allows origins ending with AllowedSuffix, or any origin sending
// the dev-password header.
type CORSConfig struct {
	AllowedSuffix string
	DevPassword   string
}

// CORS answers preflights and sets credentialed CORS headers for allowed origins.
// Disallowed origins get 403.
func CORS(cfg CORSConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		origin := c.Get("Origin")
		if origin == "" {
			return c.Next()
		}
		allowed := isLocalOrigin(origin) && c.Method() == fiber.MethodOptions ||
			cfg.AllowedSuffix != "" && strings.HasSuffix(strings.ToLower(origin), strings.ToLower(cfg.AllowedSuffix)) ||
			cfg.DevPassword != "" && c.Get("dev-password") == cfg.DevPassword
		if !allowed {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"status": "error",
				"error": fiber.Map{
					"message":    "Not allowed by CORS",
					"statusCode": fiber.StatusForbidden,
					"details":    fiber.Map{},
				},
			})
		}
		setCORSHeaders(c, origin)
		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Next()
	}
}

func isLocalOrigin(origin string) bool {
	return strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "http://127.0.0.1:")
}

func setCORSHeaders(c *fiber.Ctx, origin string) {
	c.Set("Access-Control-Allow-Origin", origin)
	c.Set("Access-Control-Allow-Credentials", "true")
	c.Set("Access-Control-Allow-Headers", "Content-Type, dev-password, Idempotency-Key")
	c.Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
	c.Set("Access-Control-Expose-Headers", "Content-Disposition, X-Trace-Id")
	c.Set("Vary", "Origin")
}
