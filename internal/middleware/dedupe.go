package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"axiso-backend/internal/domain"
	"axiso-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	IdempotencyKeyHeader = "Idempotency-Key"
	IdempotencyKeyTTL    = 24 * time.Hour

	dedupePrefix      = "dedupe:"
	idempotencyPrefix = "idem:"
	pendingMarker     = "pending"
)

type storedResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

// Dedupe rejects a repeat of the same mutation inside window with 409.
// A request is identified by its Idempotency-Key header, scoped to the
// principal, method and path, when present,
// otherwise by a hash of principal, path and body. With a key, a completed
// request is replayed instead of rejected. Failed requests release their
// marker so the client may retry. Must run after RequireAuth. Redis errors
// let the request through.
func Dedupe(rdb *redis.Client, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := CurrentSession(c)
		if !ok || window <= 0 {
			return c.Next()
		}
		// markers outlive the request deadline
		ctx := context.Background()

		var key string
		ttl := window
		explicit := c.Get(IdempotencyKeyHeader)
		if explicit != "" {
			key = idempotencyPrefix + sess.UserID + ":" + c.Method() + ":" + c.Path() + ":" + explicit
			ttl = IdempotencyKeyTTL
		} else {
			sum := sha256.Sum256(append([]byte(sess.UserID+"|"+c.Method()+"|"+c.Path()+"|"), c.Body()...))
			key = dedupePrefix + hex.EncodeToString(sum[:])
		}

		acquired, err := rdb.SetNX(ctx, key, pendingMarker, ttl).Result()
		if err != nil {
			log.Warn().Err(err).Str("trace_id", GetTraceID(c)).Msg("dedupe check failed, allowing request")
			return c.Next()
		}
		if !acquired {
			if explicit != "" {
				if replayed, err := replay(ctx, c, rdb, key); replayed || err != nil {
					return err
				}
			}
			log.Info().Str("trace_id", GetTraceID(c)).Str("user_id", sess.UserID).Str("path", c.Path()).Msg("duplicate submission rejected")
			return response.FromError(c, domain.ErrDuplicateRequest)
		}

		err = c.Next()
		status := c.Response().StatusCode()
		if err != nil || status >= fiber.StatusBadRequest {
			rdb.Del(ctx, key)
			return err
		}
		if explicit != "" {
			b, _ := json.Marshal(storedResponse{Status: status, Body: append([]byte(nil), c.Response().Body()...)})
			rdb.Set(ctx, key, b, ttl)
		}
		return nil
	}
}

func replay(ctx context.Context, c *fiber.Ctx, rdb *redis.Client, key string) (bool, error) {
	v, err := rdb.Get(ctx, key).Result()
	if err != nil || v == pendingMarker {
		return false, nil
	}
	var stored storedResponse
	if json.Unmarshal([]byte(v), &stored) != nil {
		return false, nil
	}
	c.Set("X-Idempotency-Replayed", "true")
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return true, c.Status(stored.Status).Send(stored.Body)
}
