package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/speaker-engagement/internal/engine"
)

// AvailabilityHandler exposes speaker block-out management.
type AvailabilityHandler struct {
	Availability *engine.Availability
}

// NewAvailabilityHandler constructs an AvailabilityHandler.
func NewAvailabilityHandler(av *engine.Availability) *AvailabilityHandler {
	if av == nil {
		panic("nil service passed to NewAvailabilityHandler")
	}
	return &AvailabilityHandler{Availability: av}
}

// CreateBlock handles POST /v1/speakers/:id/blocks.  The body carries
// the interval plus an optional reason and recurrence rule.
func (h *AvailabilityHandler) CreateBlock(c echo.Context) error {
	actorID, err := getActorID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	speakerID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid speaker id"})
	}
	var body struct {
		StartsAt   time.Time `json:"starts_at"`
		EndsAt     time.Time `json:"ends_at"`
		Reason     *string   `json:"reason"`
		Recurrence *string   `json:"recurrence"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	block, err := h.Availability.CreateBlock(c.Request().Context(), engine.BlockRequest{
		SpeakerID:  speakerID,
		Interval:   engine.Interval{Start: body.StartsAt, End: body.EndsAt},
		Reason:     body.Reason,
		Recurrence: body.Recurrence,
		ActorID:    actorID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, blockJSON(block))
}

// ListBlocks handles GET /v1/speakers/:id/blocks.
func (h *AvailabilityHandler) ListBlocks(c echo.Context) error {
	speakerID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid speaker id"})
	}
	blocks, err := h.Availability.ListBlocks(c.Request().Context(), speakerID)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]echo.Map, 0, len(blocks))
	for i := range blocks {
		out = append(out, blockJSON(&blocks[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"blocks": out})
}

// DeleteBlock handles DELETE /v1/blocks/:id.
func (h *AvailabilityHandler) DeleteBlock(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid block id"})
	}
	if err := h.Availability.DeleteBlock(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
