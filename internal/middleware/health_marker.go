package middleware

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"axiso-backend/internal/application/health"
	"axiso-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// HealthMarker counts requests, latency and 5xx responses in Redis.
// Health and root paths are not counted.
func HealthMarker(rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if path == "/" || strings.HasPrefix(path, "/health") || strings.HasPrefix(path, "/favicon") {
			return c.Next()
		}

		start := time.Now()
		// counters must survive a request whose deadline expired
		ctx := context.Background()
		b, _ := json.Marshal(map[string]interface{}{
			"time":   start.UTC(),
			"ip":     c.IP(),
			"path":   c.OriginalURL(),
			"method": c.Method(),
		})
		pipe := rdb.Pipeline()
		pipe.Set(ctx, health.KeyLastReq, b, 0)
		pipe.Incr(ctx, health.KeyReqTotal)
		_, _ = pipe.Exec(ctx)

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// the error handler has not run yet
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status, _ = response.Classify(err)
			}
		}
		pipe = rdb.Pipeline()
		pipe.Incr(ctx, health.KeyResCount)
		pipe.IncrByFloat(ctx, health.KeyResTime, float64(time.Since(start).Milliseconds()))
		if status >= fiber.StatusInternalServerError {
			pipe.Incr(ctx, health.KeyReqErrors)
		}
		_, _ = pipe.Exec(ctx)
		return err
	}
}
