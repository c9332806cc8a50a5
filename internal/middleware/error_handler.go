package middleware

import (
	"errors"
	"time"

	"axiso-backend/internal/application/health"
	"axiso-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ErrorHandler renders errors that escape handlers in the standard error
// format. Fiber errors keep their code; service errors are classified. 5xx
// responses are logged and, when rdb is set, pushed onto the health error log.
func ErrorHandler(rdb *redis.Client) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var code int
		var message string
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code, message = fe.Code, fe.Message
		} else {
			code, message = response.Classify(err)
		}

		if code >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("trace_id", GetTraceID(c)).Str("method", c.Method()).
				Str("path", c.Path()).Int("status", code).Msg("request failed")
			if rdb != nil {
				entry := map[string]interface{}{
					"time":     time.Now().UTC(),
					"method":   c.Method(),
					"path":     c.OriginalURL(),
					"message":  err.Error(),
					"trace_id": GetTraceID(c),
				}
				if lerr := health.LogError(c.UserContext(), rdb, entry); lerr != nil {
					log.Warn().Err(lerr).Msg("health error log write failed")
				}
			}
		}
		return response.Error(c, message, code, nil)
	}
}
