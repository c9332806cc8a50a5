package middleware

import (
	"axiso-backend/internal/constants"
	"axiso-backend/internal/domain"
	"axiso-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthorizePermission rejects principals that do not hold permission.
// Must run after RequireAuth. Unknown permissions are a configuration error (500).
func AuthorizePermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := CurrentSession(c)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}
		if _, configured := constants.PermissionRules[permission]; !configured {
			return response.Error(c, "Permission configuration error", fiber.StatusInternalServerError, nil)
		}
		if !sess.Can(permission) {
			return response.Error(c, domain.ErrUnauthorized.Error(), fiber.StatusForbidden, nil)
		}
		return c.Next()
	}
}
