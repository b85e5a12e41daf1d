package model

import "time"

// BookingStatus is the lifecycle state of a speaker-event engagement.
// Transitions between statuses are governed by the engine's booking
// state machine; nothing else may mutate the status column.
type BookingStatus string

const (
	BookingTentative BookingStatus = "tentative"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// ActiveBookingStatuses are the statuses that occupy the speaker's
// calendar.  Only bookings in one of these states participate in
// schedule conflict checks.
var ActiveBookingStatuses = []BookingStatus{BookingTentative, BookingConfirmed}

// BookingRole describes what the speaker does at the event.
type BookingRole string

const (
	RoleKeynote   BookingRole = "keynote"
	RolePanelist  BookingRole = "panelist"
	RoleWorkshop  BookingRole = "workshop"
	RoleModerator BookingRole = "moderator"
)

// BookingModality describes how the speaker participates.
type BookingModality string

const (
	ModalityInPerson BookingModality = "in_person"
	ModalityVirtual  BookingModality = "virtual"
	ModalityHybrid   BookingModality = "hybrid"
)

// Booking records a speaker's scheduled engagement at one event.  At
// most one non-deleted booking exists per (SpeakerID, EventID) pair;
// the database enforces this with a unique key over live rows.  The
// commercial side of the engagement (contract, payments) is tracked
// separately and pairs with the booking through the same speaker and
// event identifiers.
//
// Fields:
//  ID                 – primary key identifier.
//  SpeakerID          – speaker being engaged.
//  EventID            – event the speaker participates in.
//  ParticipationStart – inclusive start of the engagement (UTC).
//  ParticipationEnd   – exclusive end of the engagement (UTC).
//  Role               – what the speaker does (keynote, panelist…).
//  Modality           – in person, virtual or hybrid.
//  Position           – ordinal position within the event programme.
//  Status             – lifecycle state (see BookingStatus).
//  CancelReason       – reason recorded when the booking is cancelled.
//  CreatedBy          – actor who requested the booking.
//  ConfirmedAt        – stamped when the booking is confirmed.
//  CancelledAt        – stamped when the booking is cancelled.
//  DeletedAt          – soft-delete marker; deleted bookings are
//                       invisible to conflict and duplicate checks.
type Booking struct {
	ID                 uint64          // speaker_events.id
	SpeakerID          uint64          // speaker_events.speaker_id
	EventID            uint64          // speaker_events.event_id
	ParticipationStart time.Time       // speaker_events.participation_start
	ParticipationEnd   time.Time       // speaker_events.participation_end
	Role               BookingRole     // speaker_events.role
	Modality           BookingModality // speaker_events.modality
	Position           uint32          // speaker_events.position
	Status             BookingStatus   // speaker_events.status
	CancelReason       *string         // speaker_events.cancel_reason (nullable)
	CreatedBy          uint64          // speaker_events.created_by
	ConfirmedAt        *time.Time      // speaker_events.confirmed_at (nullable)
	CancelledAt        *time.Time      // speaker_events.cancelled_at (nullable)
	DeletedAt          *time.Time      // speaker_events.deleted_at (nullable)
	CreatedAt          time.Time       // speaker_events.created_at
	UpdatedAt          time.Time       // speaker_events.updated_at
}
