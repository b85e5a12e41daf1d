// Package handler exposes the engagement engine over HTTP.  Handlers
// bind request bodies, call into the engine services and translate
// structured engine errors into status codes.  Authentication and role
// checks run in middleware before any handler here executes.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/speaker-engagement/internal/engine"
)

// getActorID extracts the authenticated actor's id from the context.
// The JWT middleware stores the "sub" claim, whose concrete type
// depends on how the token was minted.
func getActorID(c echo.Context) (uint64, error) {
	v := c.Get("actor_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid actor_id in context")
}

// pathID parses the :id path parameter.
func pathID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil && id != 0
}

// statusFor maps an engine error kind to its HTTP status.  Conflicts
// of all flavours are 409; refused lifecycle moves are 422 because the
// request was well-formed but the entity's state forbids it.
func statusFor(k engine.Kind) int {
	switch k {
	case engine.KindInvalidInterval, engine.KindInvalidArgument:
		return http.StatusBadRequest
	case engine.KindNotFound:
		return http.StatusNotFound
	case engine.KindAvailabilityConflict, engine.KindScheduleConflict,
		engine.KindDuplicateBooking, engine.KindConcurrencyConflict:
		return http.StatusConflict
	case engine.KindInvalidStateTransition:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// writeError renders err as a JSON error response.  Engine errors keep
// their structured fields so clients can act on the conflicting entity
// without parsing the message; anything else becomes an opaque 500.
func writeError(c echo.Context, err error) error {
	var e *engine.Error
	if !errors.As(err, &e) {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	body := echo.Map{
		"error": e.Message,
		"kind":  string(e.Kind),
	}
	if e.Entity != "" {
		body["entity"] = e.Entity
	}
	if e.EntityID != 0 {
		body["entity_id"] = e.EntityID
	}
	if e.ConflictID != 0 {
		body["conflict_id"] = e.ConflictID
	}
	if e.State != "" {
		body["state"] = e.State
		body["action"] = e.Action
	}
	return c.JSON(statusFor(e.Kind), body)
}
