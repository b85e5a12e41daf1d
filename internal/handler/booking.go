package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/speaker-engagement/internal/engine"
	"github.com/iliyamo/speaker-engagement/internal/model"
	"github.com/iliyamo/speaker-engagement/internal/queue"
	publisher "github.com/iliyamo/speaker-engagement/internal/service"
)

// BookingHandler exposes booking attempts and the booking lifecycle.
type BookingHandler struct {
	Booker *engine.Booker
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(bk *engine.Booker) *BookingHandler {
	if bk == nil {
		panic("nil service passed to NewBookingHandler")
	}
	return &BookingHandler{Booker: bk}
}

// Create handles POST /v1/bookings.  A successful attempt leaves the
// booking in tentative status; every conflict is reported through the
// structured error body with the conflicting entity's id.
func (h *BookingHandler) Create(c echo.Context) error {
	actorID, err := getActorID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		SpeakerID          uint64    `json:"speaker_id"`
		EventID            uint64    `json:"event_id"`
		ParticipationStart time.Time `json:"participation_start"`
		ParticipationEnd   time.Time `json:"participation_end"`
		Role               string    `json:"role"`
		Modality           string    `json:"modality"`
		Position           uint32    `json:"position"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.SpeakerID == 0 || body.EventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "speaker_id and event_id are required"})
	}
	booking, err := h.Booker.TryBook(c.Request().Context(), engine.BookingRequest{
		SpeakerID: body.SpeakerID,
		EventID:   body.EventID,
		Interval:  engine.Interval{Start: body.ParticipationStart, End: body.ParticipationEnd},
		Role:      model.BookingRole(body.Role),
		Modality:  model.BookingModality(body.Modality),
		Position:  body.Position,
		ActorID:   actorID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, bookingJSON(booking))
}

// Confirm handles POST /v1/bookings/:id/confirm.  On success the
// confirmation event is published to the broker; a publish failure is
// deliberately not surfaced, the booking is already confirmed.
func (h *BookingHandler) Confirm(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	booking, err := h.Booker.Confirm(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	confirmedAt := ""
	if booking.ConfirmedAt != nil {
		confirmedAt = rfc3339(*booking.ConfirmedAt)
	}
	_ = publisher.PublishBookingConfirmed(c.Request().Context(), queue.BookingConfirmedEvent{
		BookingID:   booking.ID,
		SpeakerID:   booking.SpeakerID,
		EventID:     booking.EventID,
		Role:        string(booking.Role),
		Modality:    string(booking.Modality),
		StartsAt:    rfc3339(booking.ParticipationStart),
		EndsAt:      rfc3339(booking.ParticipationEnd),
		ConfirmedAt: confirmedAt,
	})
	return c.JSON(http.StatusOK, bookingJSON(booking))
}

// Cancel handles POST /v1/bookings/:id/cancel with an optional reason
// in the body.
func (h *BookingHandler) Cancel(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var body struct {
		Reason string `json:"reason"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	booking, err := h.Booker.Cancel(c.Request().Context(), id, body.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, bookingJSON(booking))
}

// Complete handles POST /v1/bookings/:id/complete.
func (h *BookingHandler) Complete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	booking, err := h.Booker.Complete(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, bookingJSON(booking))
}

// Delete handles DELETE /v1/bookings/:id.  The booking is
// soft-deleted, which frees the (speaker, event) pair for rebooking.
func (h *BookingHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	if err := h.Booker.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Get handles GET /v1/bookings/:id.
func (h *BookingHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	booking, err := h.Booker.GetBooking(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, bookingJSON(booking))
}

// ListForSpeaker handles GET /v1/speakers/:id/bookings, returning the
// speaker's active (tentative or confirmed) bookings.
func (h *BookingHandler) ListForSpeaker(c echo.Context) error {
	speakerID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid speaker id"})
	}
	bookings, err := h.Booker.ListBookings(c.Request().Context(), speakerID)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]echo.Map, 0, len(bookings))
	for i := range bookings {
		out = append(out, bookingJSON(&bookings[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": out})
}
