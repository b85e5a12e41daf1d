// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/speaker-engagement/internal/handler"
	"github.com/iliyamo/speaker-engagement/internal/middleware"
)

// RegisterRoutes registers the unauthenticated endpoints: the health
// check and the discount resolver, which registration pages query
// before an attendee has any credentials.
func RegisterRoutes(e *echo.Echo, d *handler.DiscountHandler) {
	e.GET("/healthz", handler.Health)
	e.GET("/v1/events/:id/discount", d.Resolve)
}

// RegisterEngagement registers the authenticated engagement endpoints
// under /v1.  Coordinators run the day-to-day lifecycle; destructive
// operations (hard removal of bookings and blocks) are admin-only.
// Speaker calendars are cached briefly since conflict checks read the
// store directly and never go through this cache.
func RegisterEngagement(e *echo.Echo, av *handler.AvailabilityHandler, bk *handler.BookingHandler, ct *handler.ContractHandler, pay *handler.PaymentHandler, jwtSecret string, cache *redis.Client, cacheTTL time.Duration) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("admin", "coordinator"),
	)

	// ---- Availability blocks ----
	g.POST("/speakers/:id/blocks", av.CreateBlock)
	g.GET("/speakers/:id/blocks", av.ListBlocks, middleware.CacheGET(cache, cacheTTL))

	// ---- Bookings ----
	g.POST("/bookings", bk.Create)
	g.GET("/bookings/:id", bk.Get)
	g.POST("/bookings/:id/confirm", bk.Confirm)
	g.POST("/bookings/:id/cancel", bk.Cancel)
	g.POST("/bookings/:id/complete", bk.Complete)
	g.GET("/speakers/:id/bookings", bk.ListForSpeaker, middleware.CacheGET(cache, cacheTTL))

	// ---- Contracts ----
	g.POST("/contracts", ct.Create)
	g.GET("/contracts/:id", ct.Get)
	g.POST("/contracts/:id/send", ct.Send)
	g.POST("/contracts/:id/sign", ct.Sign)
	g.POST("/contracts/:id/approve", ct.Approve)
	g.POST("/contracts/:id/reject", ct.Reject)
	g.POST("/contracts/:id/cancel", ct.Cancel)
	g.PUT("/contracts/:id/terms", ct.UpdateTerms)

	// ---- Payments ----
	g.POST("/payments", pay.Create)
	g.POST("/payments/:id/process", pay.Process)
	g.POST("/payments/:id/complete", pay.Complete)
	g.POST("/payments/:id/reject", pay.Reject)
	g.POST("/payments/:id/cancel", pay.Cancel)
	g.GET("/contracts/:id/payments", pay.ListForContract)

	admin := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("admin"),
	)
	admin.DELETE("/bookings/:id", bk.Delete)
	admin.DELETE("/blocks/:id", av.DeleteBlock)
}
