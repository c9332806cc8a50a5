package middleware

import (
	"math"
	"strconv"
	"sync"
	"time"

	"axiso-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const limiterEntryTTL = 10 * time.Minute

// IPRateLimiter keeps one token bucket per client IP.
type IPRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	limit    rate.Limit
	burst    int
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewIPRateLimiter allows perMinute requests per IP, bursting up to perMinute.
func NewIPRateLimiter(perMinute int) *IPRateLimiter {
	if perMinute <= 0 {
		perMinute = 1
	}
	return &IPRateLimiter{
		limiters: make(map[string]*limiterEntry),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
	}
}

func (rl *IPRateLimiter) get(ip string, now time.Time) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for k, e := range rl.limiters {
		if now.Sub(e.lastSeen) > limiterEntryTTL {
			delete(rl.limiters, k)
		}
	}
	e, ok := rl.limiters[ip]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[ip] = e
	}
	e.lastSeen = now
	return e.limiter
}

// Middleware answers 429 once an IP runs out of tokens.
func (rl *IPRateLimiter) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !rl.get(c.IP(), time.Now()).Allow() {
			log.Warn().Str("trace_id", GetTraceID(c)).Str("ip", c.IP()).Str("path", c.Path()).Msg("rate limit exceeded")
			c.Set("Retry-After", strconv.Itoa(int(math.Ceil(1/float64(rl.limit)))))
			return response.Error(c, "Too many attempts. Please try again later.", fiber.StatusTooManyRequests, nil)
		}
		return c.Next()
	}
}
