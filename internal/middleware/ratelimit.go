package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// RateLimit returns a middleware enforcing a fixed-window per-client
// request budget backed by Redis.  The window is one minute and the
// key is the client IP.  A nil client disables limiting so the service
// keeps accepting traffic when Redis is down.
func RateLimit(client *redis.Client, perMinute int) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if client == nil {
				return next(c)
			}
			window := time.Now().UTC().Unix() / 60
			key := "ratelimit:" + c.RealIP() + ":" + strconv.FormatInt(window, 10)

			ctx, cancel := context.WithTimeout(c.Request().Context(), 150*time.Millisecond)
			defer cancel()

			count, err := client.Incr(ctx, key).Result()
			if err != nil {
				// fail open
				return next(c)
			}
			if count == 1 {
				client.Expire(ctx, key, time.Minute)
			}
			if count > int64(perMinute) {
				return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "rate limit exceeded"})
			}
			return next(c)
		}
	}
}
