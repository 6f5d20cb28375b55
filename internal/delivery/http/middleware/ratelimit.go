package middleware

import (
	"context"
	"log"
	"math"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"

	"jobify/internal/config"
)

// WindowCounter counts hits in a fixed window. Backed by redis in
// production; the in-memory fake in tests implements the same thing.
type WindowCounter interface {
	IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error)
	TTL(ctx context.Context, key string) (time.Duration, error)
}

// NewRateLimit enforces a fixed-window request budget per client IP
// ahead of every handler. The counter failing (redis down) fails open:
// throttling is protection, not a correctness requirement.
func NewRateLimit(cfg config.RateLimitConfig, counter WindowCounter, logger *log.Logger) fiber.Handler {
	if !cfg.Enabled || counter == nil {
		return func(c fiber.Ctx) error { return c.Next() }
	}

	return func(c fiber.Ctx) error {
		ip := c.IP()
		if ip == "" {
			ip = "unknown"
		}
		key := "rl:ip:" + ip

		count, err := counter.IncrWindow(c.Context(), key, cfg.Window)
		if err != nil {
			if logger != nil {
				logger.Printf("[RateLimit] counter error for key=%s: %v", key, err)
			}
			return c.Next()
		}

		remaining := int64(cfg.Max) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Max))
		c.Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(cfg.Max) {
			retry := int(math.Ceil(cfg.Window.Seconds()))
			if ttl, err := counter.TTL(c.Context(), key); err == nil && ttl > 0 {
				retry = int(math.Ceil(ttl.Seconds()))
			}
			c.Set("Retry-After", strconv.Itoa(retry))
			return NewAppError(fiber.StatusTooManyRequests, "Too many requests, please try again later", nil, nil)
		}

		return c.Next()
	}
}
