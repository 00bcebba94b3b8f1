package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/redis/go-redis/v9"

	"github.com/jakesworld/tracking-api/internal/utils"
)

// RateLimit creates a per-client rate limiter. With a Redis client the
// counters are shared across instances; without one it falls back to Fiber's
// in-memory limiter.
func RateLimit(redisClient *redis.Client, identifier string, max int, window time.Duration) fiber.Handler {
	if max <= 0 {
		max = 10
	}
	if window <= 0 {
		window = time.Second
	}

	if redisClient == nil {
		return limiter.New(limiter.Config{
			Max:        max,
			Expiration: window,
			KeyGenerator: func(c *fiber.Ctx) string {
				return fmt.Sprintf("%s:%s", identifier, c.IP())
			},
		})
	}

	return func(c *fiber.Ctx) error {
		key := fmt.Sprintf("ratelimit:%s:%s", identifier, c.IP())

		count, err := redisClient.Incr(c.Context(), key).Result()
		if err != nil {
			// A broken limiter must not take the tracking path down with it.
			return c.Next()
		}
		if count == 1 {
			redisClient.Expire(c.Context(), key, window)
		}
		if count > int64(max) {
			return utils.SendError(c, fiber.StatusTooManyRequests, "Too many requests")
		}

		return c.Next()
	}
}
