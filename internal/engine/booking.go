package engine

import (
	"context"
	"sync"
	"time"

	"github.com/iliyamo/speaker-engagement/internal/model"
)

// BookingRequest is the inbound value for a booking attempt.  The
// actor arrives already authenticated by the upstream layer; the
// engine only records it.
type BookingRequest struct {
	SpeakerID uint64
	EventID   uint64
	Interval  Interval
	Role      model.BookingRole
	Modality  model.BookingModality
	Position  uint32
	ActorID   uint64
}

// Booker decides whether a speaker can be booked into a time window
// and drives the booking through its lifecycle.  Conflicting attempts
// for the same speaker are serialized two ways: an in-process
// per-speaker lock held across the check-then-create sequence, and a
// unique key on the live (speaker, event) pair at the store so that a
// race slipping past the lock (e.g. multiple instances) still cannot
// let both attempts succeed.  Attempts for different speakers run in
// parallel with no shared state.
type Booker struct {
	speakers SpeakerStore
	blocks   AvailabilityStore
	bookings BookingStore

	mu    sync.Mutex
	locks map[uint64]*sync.Mutex

	now func() time.Time
}

// NewBooker constructs a Booker.  All stores must be non-nil.
func NewBooker(speakers SpeakerStore, blocks AvailabilityStore, bookings BookingStore) *Booker {
	if speakers == nil || blocks == nil || bookings == nil {
		panic("nil store passed to NewBooker")
	}
	return &Booker{
		speakers: speakers,
		blocks:   blocks,
		bookings: bookings,
		locks:    make(map[uint64]*sync.Mutex),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// speakerLock returns the mutex serializing booking attempts for one
// speaker, creating it on first use.
func (bk *Booker) speakerLock(speakerID uint64) *sync.Mutex {
	bk.mu.Lock()
	defer bk.mu.Unlock()
	l, ok := bk.locks[speakerID]
	if !ok {
		l = &sync.Mutex{}
		bk.locks[speakerID] = l
	}
	return l
}

// TryBook runs the conflict checks for the requested interval and, if
// they all pass, creates the booking in tentative status.
//
// The checks run in a fixed order: interval validity, speaker
// existence, block-out overlap, overlap with active bookings of other
// events, then the duplicate check for the same event.  The first
// failure is returned with the conflicting entity's id so the caller
// can surface a useful diagnostic.
func (bk *Booker) TryBook(ctx context.Context, req BookingRequest) (*model.Booking, error) {
	if err := req.Interval.Validate(); err != nil {
		return nil, err
	}
	if _, err := bk.speakers.GetSpeaker(ctx, req.SpeakerID); err != nil {
		return nil, err
	}

	l := bk.speakerLock(req.SpeakerID)
	l.Lock()
	defer l.Unlock()

	blocks, err := bk.blocks.ListActiveBlocks(ctx, req.SpeakerID)
	if err != nil {
		return nil, err
	}
	for _, b := range blocks {
		if Overlaps(req.Interval, Interval{Start: b.StartsAt, End: b.EndsAt}) {
			e := &Error{
				Kind:       KindAvailabilityConflict,
				Entity:     "availability_block",
				ConflictID: b.ID,
				Message:    "interval overlaps an availability block",
			}
			if b.Reason != nil {
				e.Message += ": " + *b.Reason
			}
			return nil, e
		}
	}

	others, err := bk.bookings.ListActiveBookings(ctx, req.SpeakerID, req.EventID)
	if err != nil {
		return nil, err
	}
	for _, o := range others {
		if Overlaps(req.Interval, Interval{Start: o.ParticipationStart, End: o.ParticipationEnd}) {
			return nil, &Error{
				Kind:       KindScheduleConflict,
				Entity:     "booking",
				ConflictID: o.ID,
				EntityID:   o.EventID,
				Message:    "interval overlaps an existing booking",
			}
		}
	}

	existing, err := bk.bookings.FindLiveBySpeakerEvent(ctx, req.SpeakerID, req.EventID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, NewDuplicateBooking(req.SpeakerID, req.EventID)
	}

	booking := &model.Booking{
		SpeakerID:          req.SpeakerID,
		EventID:            req.EventID,
		ParticipationStart: req.Interval.Start,
		ParticipationEnd:   req.Interval.End,
		Role:               req.Role,
		Modality:           req.Modality,
		Position:           req.Position,
		Status:             model.BookingTentative,
		CreatedBy:          req.ActorID,
	}
	if err := bk.bookings.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// bookingTargets lists the valid source statuses for each booking
// transition.  completed and cancelled are terminal.
var bookingTargets = map[model.BookingStatus][]model.BookingStatus{
	model.BookingConfirmed: {model.BookingTentative},
	model.BookingCompleted: {model.BookingConfirmed},
	model.BookingCancelled: {model.BookingTentative, model.BookingConfirmed},
}

func bookingCanMove(from, to model.BookingStatus) bool {
	for _, s := range bookingTargets[to] {
		if s == from {
			return true
		}
	}
	return false
}

// transition applies one booking lifecycle move with optimistic
// concurrency: the status read here is the CAS guard, so two racing
// transition requests cannot both apply.
func (bk *Booker) transition(ctx context.Context, id uint64, to model.BookingStatus, st BookingStamps, action string) (*model.Booking, error) {
	b, err := bk.bookings.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if !bookingCanMove(b.Status, to) {
		return nil, newTransitionError("booking", id, string(b.Status), action)
	}
	applied, err := bk.bookings.UpdateBookingStatus(ctx, id, b.Status, to, st)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, NewConcurrencyConflict("booking", id)
	}
	return bk.bookings.GetBooking(ctx, id)
}

// Confirm moves a tentative booking to confirmed and stamps
// confirmedAt.
func (bk *Booker) Confirm(ctx context.Context, id uint64) (*model.Booking, error) {
	now := bk.now()
	return bk.transition(ctx, id, model.BookingConfirmed, BookingStamps{ConfirmedAt: &now}, "confirm")
}

// Cancel moves a tentative or confirmed booking to cancelled,
// stamping cancelledAt and recording the reason.
func (bk *Booker) Cancel(ctx context.Context, id uint64, reason string) (*model.Booking, error) {
	now := bk.now()
	st := BookingStamps{CancelledAt: &now}
	if reason != "" {
		st.CancelReason = &reason
	}
	return bk.transition(ctx, id, model.BookingCancelled, st, "cancel")
}

// Complete moves a confirmed booking to completed.
func (bk *Booker) Complete(ctx context.Context, id uint64) (*model.Booking, error) {
	return bk.transition(ctx, id, model.BookingCompleted, BookingStamps{}, "complete")
}

// Delete soft-deletes a booking.  Deleted bookings stop counting for
// conflict and duplicate checks, which frees the (speaker, event)
// pair for a fresh booking.
func (bk *Booker) Delete(ctx context.Context, id uint64) error {
	if _, err := bk.bookings.GetBooking(ctx, id); err != nil {
		return err
	}
	applied, err := bk.bookings.SoftDeleteBooking(ctx, id)
	if err != nil {
		return err
	}
	if !applied {
		return NewConcurrencyConflict("booking", id)
	}
	return nil
}

// ListBookings returns the speaker's active bookings.
func (bk *Booker) ListBookings(ctx context.Context, speakerID uint64) ([]model.Booking, error) {
	if _, err := bk.speakers.GetSpeaker(ctx, speakerID); err != nil {
		return nil, err
	}
	return bk.bookings.ListActiveBookings(ctx, speakerID, 0)
}

// GetBooking returns one booking by id.
func (bk *Booker) GetBooking(ctx context.Context, id uint64) (*model.Booking, error) {
	return bk.bookings.GetBooking(ctx, id)
}
