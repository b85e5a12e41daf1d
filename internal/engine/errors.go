package engine

import "fmt"

// Kind tags every error the engine returns so the HTTP layer can map
// it to a status code without inspecting internal state.  All errors
// are local to a single operation; none is fatal to the process.
type Kind string

const (
	// KindInvalidInterval – the requested interval has end <= start.
	KindInvalidInterval Kind = "invalid_interval"
	// KindAvailabilityConflict – the interval overlaps a block-out.
	KindAvailabilityConflict Kind = "availability_conflict"
	// KindScheduleConflict – the interval overlaps another booking.
	KindScheduleConflict Kind = "schedule_conflict"
	// KindDuplicateBooking – a live booking already exists for the
	// same (speaker, event) pair.
	KindDuplicateBooking Kind = "duplicate_booking"
	// KindInvalidStateTransition – the attempted lifecycle move is
	// not permitted from the entity's current state.
	KindInvalidStateTransition Kind = "invalid_state_transition"
	// KindNotFound – the referenced entity does not exist.
	KindNotFound Kind = "not_found"
	// KindConcurrencyConflict – a race was detected at the storage
	// boundary; the caller should retry the whole operation, not
	// just the write, since availability may have changed.
	KindConcurrencyConflict Kind = "concurrency_conflict"
	// KindInvalidArgument – a request field failed validation.
	KindInvalidArgument Kind = "invalid_argument"
)

// Error is the structured result value for every rejected operation.
// ConflictID identifies the block or booking that caused a conflict,
// and State/Action describe a refused lifecycle transition, so the
// caller gets its diagnostics from the error alone.
type Error struct {
	Kind       Kind
	Entity     string // entity the error refers to ("booking", "contract", …)
	EntityID   uint64 // id of that entity, when known
	ConflictID uint64 // id of the conflicting block/booking, for conflicts
	State      string // current state, for refused transitions
	Action     string // attempted action, for refused transitions
	Message    string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return string(e.Kind)
}

// KindOf extracts the engine Kind from err, or "" when err is not an
// engine error.
func KindOf(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err is an engine error of the given kind.
func IsKind(err error, k Kind) bool { return KindOf(err) == k }

func newError(k Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: k, Message: fmt.Sprintf(format, args...)}
}

// NewNotFound builds the NotFound error for a missing entity.  Store
// implementations use it so that a missing row surfaces with the same
// shape regardless of the backing technology.
func NewNotFound(entity string, id uint64) *Error {
	return &Error{
		Kind:     KindNotFound,
		Entity:   entity,
		EntityID: id,
		Message:  fmt.Sprintf("%s %d not found", entity, id),
	}
}

// NewConcurrencyConflict builds the error returned when a storage
// race is detected during an atomic check-then-write sequence.
func NewConcurrencyConflict(entity string, id uint64) *Error {
	return &Error{
		Kind:     KindConcurrencyConflict,
		Entity:   entity,
		EntityID: id,
		Message:  fmt.Sprintf("concurrent update detected on %s %d", entity, id),
	}
}

// NewDuplicateBooking builds the error for a second live booking on
// the same (speaker, event) pair.
func NewDuplicateBooking(speakerID, eventID uint64) *Error {
	return &Error{
		Kind:    KindDuplicateBooking,
		Entity:  "booking",
		Message: fmt.Sprintf("speaker %d already booked for event %d", speakerID, eventID),
	}
}

func newTransitionError(entity string, id uint64, state, action string) *Error {
	return &Error{
		Kind:     KindInvalidStateTransition,
		Entity:   entity,
		EntityID: id,
		State:    state,
		Action:   action,
		Message:  fmt.Sprintf("cannot %s %s %d in state %q", action, entity, id, state),
	}
}
