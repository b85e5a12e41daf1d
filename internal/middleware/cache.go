package middleware

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// CacheGET returns a middleware that serves successful GET responses
// from Redis for the given TTL.  The cache key is the request path
// plus query string.  A nil client disables caching entirely, so the
// service keeps working when Redis is down.  Only listing endpoints
// are routed through this; conflict checks read the store directly
// and never see cached data.
func CacheGET(client *redis.Client, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if client == nil || c.Request().Method != http.MethodGet {
				return next(c)
			}
			key := "cache:" + c.Request().URL.RequestURI()
			ctx, cancel := context.WithTimeout(c.Request().Context(), 150*time.Millisecond)
			defer cancel()
			if body, err := client.Get(ctx, key).Bytes(); err == nil {
				return c.JSONBlob(http.StatusOK, body)
			}

			rec := &bodyRecorder{ResponseWriter: c.Response().Writer}
			c.Response().Writer = rec
			if err := next(c); err != nil {
				return err
			}
			if rec.status == http.StatusOK {
				// best effort; a failed SET only costs the next caller a query
				_ = client.Set(context.Background(), key, rec.buf.Bytes(), ttl).Err()
			}
			return nil
		}
	}
}

// bodyRecorder tees the response body so it can be cached after the
// handler ran.
type bodyRecorder struct {
	http.ResponseWriter
	buf    bytes.Buffer
	status int
}

func (r *bodyRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	r.buf.Write(b)
	return r.ResponseWriter.Write(b)
}
