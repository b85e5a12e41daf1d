package engine

import (
	"context"
	"time"

	"github.com/iliyamo/speaker-engagement/internal/model"
)

// The store interfaces below are the engine's persistence boundary.
// The MySQL implementations live in internal/repository; tests use
// in-memory fakes.  Implementations must return errors built with
// NewNotFound / NewDuplicateBooking / NewConcurrencyConflict so the
// taxonomy is uniform regardless of the backing technology.
//
// All compare-and-set methods take the status the caller just read
// and report applied=false when the row was no longer in that status,
// which the engine surfaces as a ConcurrencyConflict.

// SpeakerStore resolves speakers referenced by bookings and payments.
type SpeakerStore interface {
	// GetSpeaker returns the speaker or a NotFound-kinded error.
	GetSpeaker(ctx context.Context, id uint64) (*model.Speaker, error)
}

// AvailabilityStore manages a speaker's block-out intervals.
type AvailabilityStore interface {
	// ListActiveBlocks returns all block-outs for the speaker.
	ListActiveBlocks(ctx context.Context, speakerID uint64) ([]model.AvailabilityBlock, error)
	// CreateBlock inserts a new block and fills in its ID.
	CreateBlock(ctx context.Context, block *model.AvailabilityBlock) error
	// DeleteBlock removes a block; NotFound when it does not exist.
	DeleteBlock(ctx context.Context, id uint64) error
}

// BookingStamps carries the audit fields written alongside a booking
// status transition.
type BookingStamps struct {
	ConfirmedAt  *time.Time
	CancelledAt  *time.Time
	CancelReason *string
}

// BookingStore manages engagement records.
type BookingStore interface {
	// ListActiveBookings returns the speaker's non-deleted bookings
	// in an active status (tentative or confirmed), excluding the
	// given event when excludeEventID is non-zero.
	ListActiveBookings(ctx context.Context, speakerID, excludeEventID uint64) ([]model.Booking, error)
	// FindLiveBySpeakerEvent returns the non-deleted booking for the
	// pair, or (nil, nil) when none exists.
	FindLiveBySpeakerEvent(ctx context.Context, speakerID, eventID uint64) (*model.Booking, error)
	// CreateBooking inserts the booking and fills in its ID.  A
	// unique-key violation on the live (speaker, event) pair must
	// surface as a DuplicateBooking-kinded error.
	CreateBooking(ctx context.Context, b *model.Booking) error
	// GetBooking returns the non-deleted booking or NotFound.
	GetBooking(ctx context.Context, id uint64) (*model.Booking, error)
	// UpdateBookingStatus moves the booking from one status to
	// another, writing the stamps in the same statement.  applied is
	// false when the row was not in the from status anymore.
	UpdateBookingStatus(ctx context.Context, id uint64, from, to model.BookingStatus, st BookingStamps) (applied bool, err error)
	// SoftDeleteBooking marks the booking deleted.  applied is false
	// when it was already deleted.
	SoftDeleteBooking(ctx context.Context, id uint64) (applied bool, err error)
}

// ContractStamps carries the audit fields written alongside a
// contract status transition.
type ContractStamps struct {
	SignedAt     *time.Time
	ApprovedBy   *uint64
	ApprovedAt   *time.Time
	RejectReason *string
	CancelReason *string
}

// ContractStore manages contracts.
type ContractStore interface {
	// CreateContract inserts the contract and fills in its ID.
	CreateContract(ctx context.Context, c *model.Contract) error
	// GetContract returns the contract or NotFound.
	GetContract(ctx context.Context, id uint64) (*model.Contract, error)
	// UpdateContractStatus is the CAS transition write.
	UpdateContractStatus(ctx context.Context, id uint64, from, to model.ContractStatus, st ContractStamps) (applied bool, err error)
	// UpdateContractTerms rewrites the commercial fields together
	// with the derived advance amount, guarded on the status the
	// caller read.
	UpdateContractTerms(ctx context.Context, id uint64, from model.ContractStatus, agreedCents int64, terms model.PaymentTerms, advancePct *uint8, advanceCents *int64) (applied bool, err error)
}

// PaymentStamps carries the audit and derived fields written
// alongside a payment status transition.  The ISR fields are only
// set on completion.
type PaymentStamps struct {
	ActualDate       *time.Time
	ISRPercentage    *uint8
	ISRWithheldCents *int64
	NetAmountCents   *int64
	ProcessedBy      *uint64
	ProcessedAt      *time.Time
	RejectReason     *string
	CancelReason     *string
}

// PaymentStore manages payments.
type PaymentStore interface {
	// CreatePayment inserts the payment and fills in its ID.
	CreatePayment(ctx context.Context, p *model.Payment) error
	// GetPayment returns the payment or NotFound.
	GetPayment(ctx context.Context, id uint64) (*model.Payment, error)
	// ListPaymentsByContract returns all payments for the contract.
	ListPaymentsByContract(ctx context.Context, contractID uint64) ([]model.Payment, error)
	// UpdatePaymentStatus is the CAS transition write.
	UpdatePaymentStatus(ctx context.Context, id uint64, from, to model.PaymentStatus, st PaymentStamps) (applied bool, err error)
}

// TierStore lists discount tiers for resolution.
type TierStore interface {
	// ListActiveTiers returns the event's active tiers.
	ListActiveTiers(ctx context.Context, eventID uint64) ([]model.DiscountTier, error)
}

// SequenceStore hands out the per-year counters behind contract and
// payment numbers.  Next must be atomic under concurrent callers; a
// value obtained for a creation that later fails is simply skipped,
// the sequence is gapless only on the happy path.
type SequenceStore interface {
	Next(ctx context.Context, scope string, year int) (int64, error)
}
