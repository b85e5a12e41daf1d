package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/speaker-engagement/internal/engine"
)

// DiscountHandler resolves early-bird discount tiers for event
// registrations.
type DiscountHandler struct {
	Discounts *engine.Discounts
}

// NewDiscountHandler constructs a DiscountHandler.
func NewDiscountHandler(d *engine.Discounts) *DiscountHandler {
	if d == nil {
		panic("nil service passed to NewDiscountHandler")
	}
	return &DiscountHandler{Discounts: d}
}

// Resolve handles GET /v1/events/:id/discount.  Query parameters
// registered_at and event_start are RFC 3339 timestamps.  The response
// always carries an "applies" flag; when no tier qualifies the tier
// field is null rather than an error, because an undiscounted
// registration is a normal outcome.
func (h *DiscountHandler) Resolve(c echo.Context) error {
	eventID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	registeredAt, err := time.Parse(time.RFC3339, c.QueryParam("registered_at"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "registered_at must be RFC 3339"})
	}
	eventStart, err := time.Parse(time.RFC3339, c.QueryParam("event_start"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event_start must be RFC 3339"})
	}
	tier, err := h.Discounts.Resolve(c.Request().Context(), eventID, registeredAt, eventStart)
	if err != nil {
		return writeError(c, err)
	}
	resp := echo.Map{
		"applies":     tier != nil,
		"days_before": engine.DaysBefore(registeredAt, eventStart),
	}
	if tier != nil {
		resp["tier"] = tierJSON(tier)
	} else {
		resp["tier"] = nil
	}
	return c.JSON(http.StatusOK, resp)
}
