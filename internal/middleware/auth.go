package middleware

import (
	"axiso-backend/internal/application/access"
	"axiso-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const (
	userLocal      = "user"
	principalLocal = "principal"
)

// RequireAuth rejects requests without a signed-in user (401) and exposes
// the access.Session to handlers via CurrentSession.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := access.FromMap(c.Locals(userLocal))
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}
		SetCurrentSession(c, sess)
		return c.Next()
	}
}

// GetUser returns the raw session user (nil if not logged in).
func GetUser(c *fiber.Ctx) interface{} {
	return c.Locals(userLocal)
}

// CurrentSession returns the principal set by RequireAuth.
func CurrentSession(c *fiber.Ctx) (access.Session, bool) {
	sess, ok := c.Locals(principalLocal).(access.Session)
	return sess, ok
}

// SetCurrentSession installs sess as the request principal.
func SetCurrentSession(c *fiber.Ctx, sess access.Session) {
	c.Locals(principalLocal, sess)
}
