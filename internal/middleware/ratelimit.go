package middleware

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// RateLimitMiddleware caps requests per client IP and path within a fixed
// window. Counters live in redis so the limit holds across API replicas.
// Redis trouble fails open: the limiter must not take the API down with it.
func RateLimitMiddleware(rdb *redis.Client, limit int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := fmt.Sprintf("garagedesk:rl:%s:%s", c.IP(), c.Path())

		count, err := rdb.Incr(c.Context(), key).Result()
		if err != nil {
			return c.Next()
		}

		if count == 1 {
			rdb.Expire(c.Context(), key, window)
		}

		if count > int64(limit) {
			c.Set("Retry-After", strconv.Itoa(int(window.Seconds())))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "rate limit exceeded",
			})
		}

		return c.Next()
	}
}
