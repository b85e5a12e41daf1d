package engine

import (
	"context"
	"time"

	"github.com/iliyamo/speaker-engagement/internal/model"
)

// WithholdingRate returns the jurisdiction-mandated ISR percentage
// for a speaker category: 7% for international speakers, 5% for
// national, expert and special guest speakers.  The rate is fixed by
// law, not configurable per payment.
func WithholdingRate(cat model.SpeakerCategory) uint8 {
	if cat == model.CategoryInternational {
		return 7
	}
	return 5
}

// DeriveWithholding computes the withheld and net amounts for a
// completed payment: withheld = amount * pct / 100 (rounded half up
// on the cent), net = amount - withheld.
func DeriveWithholding(amountCents int64, pct uint8) (withheldCents, netCents int64) {
	withheldCents = (amountCents*int64(pct) + 50) / 100
	return withheldCents, amountCents - withheldCents
}

// paymentTargets lists the valid source statuses for each payment
// transition.  completed, rejected and cancelled are terminal.
var paymentTargets = map[model.PaymentStatus][]model.PaymentStatus{
	model.PaymentProcessing: {model.PaymentPending},
	model.PaymentCompleted:  {model.PaymentProcessing},
	model.PaymentRejected:   {model.PaymentPending, model.PaymentProcessing},
	model.PaymentCancelled:  {model.PaymentPending, model.PaymentProcessing},
}

func paymentCanMove(from, to model.PaymentStatus) bool {
	for _, s := range paymentTargets[to] {
		if s == from {
			return true
		}
	}
	return false
}

// Payments drives individual payments against a contract through
// their lifecycle and derives the ISR withholding on completion.
type Payments struct {
	speakers  SpeakerStore
	contracts ContractStore
	payments  PaymentStore
	seqs      SequenceStore

	now func() time.Time
}

// NewPayments constructs a Payments service.
func NewPayments(speakers SpeakerStore, contracts ContractStore, payments PaymentStore, seqs SequenceStore) *Payments {
	if speakers == nil || contracts == nil || payments == nil || seqs == nil {
		panic("nil store passed to NewPayments")
	}
	return &Payments{
		speakers:  speakers,
		contracts: contracts,
		payments:  payments,
		seqs:      seqs,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// PaymentRequest is the inbound value for scheduling a payment.
type PaymentRequest struct {
	ContractID    uint64
	AmountCents   int64
	Currency      string
	Type          model.PaymentType
	ScheduledDate time.Time
	Method        model.PaymentMethod
	ActorID       uint64
}

// Create schedules a payment against a contract in pending status.
// The speaker reference is cached from the contract; the payment
// number comes from the per-year sequence.
func (ps *Payments) Create(ctx context.Context, req PaymentRequest) (*model.Payment, error) {
	if req.AmountCents < 0 {
		return nil, newError(KindInvalidArgument, "payment amount must not be negative")
	}
	if !req.Type.Valid() {
		return nil, newError(KindInvalidArgument, "unknown payment type %q", req.Type)
	}
	contract, err := ps.contracts.GetContract(ctx, req.ContractID)
	if err != nil {
		return nil, err
	}
	number, err := nextPaymentNumber(ctx, ps.seqs, ps.now())
	if err != nil {
		return nil, err
	}
	payment := &model.Payment{
		Number:        number,
		ContractID:    contract.ID,
		SpeakerID:     contract.SpeakerID,
		AmountCents:   req.AmountCents,
		Currency:      req.Currency,
		Type:          req.Type,
		ScheduledDate: req.ScheduledDate,
		Method:        req.Method,
		Status:        model.PaymentPending,
		CreatedBy:     req.ActorID,
	}
	if err := ps.payments.CreatePayment(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// transition applies one payment lifecycle move with the read status
// as CAS guard.
func (ps *Payments) transition(ctx context.Context, id uint64, to model.PaymentStatus, st PaymentStamps, action string) (*model.Payment, error) {
	p, err := ps.payments.GetPayment(ctx, id)
	if err != nil {
		return nil, err
	}
	if !paymentCanMove(p.Status, to) {
		return nil, newTransitionError("payment", id, string(p.Status), action)
	}
	applied, err := ps.payments.UpdatePaymentStatus(ctx, id, p.Status, to, st)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, NewConcurrencyConflict("payment", id)
	}
	return ps.payments.GetPayment(ctx, id)
}

// Process moves a pending payment to processing, stamping
// processedBy/processedAt.
func (ps *Payments) Process(ctx context.Context, id, actorID uint64) (*model.Payment, error) {
	now := ps.now()
	return ps.transition(ctx, id, model.PaymentProcessing, PaymentStamps{
		ProcessedBy: &actorID,
		ProcessedAt: &now,
	}, "process")
}

// Complete moves a processing payment to completed.  The actual
// payment date defaults to now when not supplied, and the ISR fields
// are derived from the speaker's category — they are re-derivable
// values, never raw input.
func (ps *Payments) Complete(ctx context.Context, id uint64, actualDate *time.Time) (*model.Payment, error) {
	p, err := ps.payments.GetPayment(ctx, id)
	if err != nil {
		return nil, err
	}
	if !paymentCanMove(p.Status, model.PaymentCompleted) {
		return nil, newTransitionError("payment", id, string(p.Status), "complete")
	}
	speaker, err := ps.speakers.GetSpeaker(ctx, p.SpeakerID)
	if err != nil {
		return nil, err
	}
	when := ps.now()
	if actualDate != nil {
		when = actualDate.UTC()
	}
	rate := WithholdingRate(speaker.Category)
	withheld, net := DeriveWithholding(p.AmountCents, rate)
	applied, err := ps.payments.UpdatePaymentStatus(ctx, id, p.Status, model.PaymentCompleted, PaymentStamps{
		ActualDate:       &when,
		ISRPercentage:    &rate,
		ISRWithheldCents: &withheld,
		NetAmountCents:   &net,
	})
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, NewConcurrencyConflict("payment", id)
	}
	return ps.payments.GetPayment(ctx, id)
}

// Reject terminates a pending or processing payment with a reason.
func (ps *Payments) Reject(ctx context.Context, id uint64, reason string) (*model.Payment, error) {
	st := PaymentStamps{}
	if reason != "" {
		st.RejectReason = &reason
	}
	return ps.transition(ctx, id, model.PaymentRejected, st, "reject")
}

// Cancel terminates a pending or processing payment.
func (ps *Payments) Cancel(ctx context.Context, id uint64, reason string) (*model.Payment, error) {
	st := PaymentStamps{}
	if reason != "" {
		st.CancelReason = &reason
	}
	return ps.transition(ctx, id, model.PaymentCancelled, st, "cancel")
}

// ListByContract returns all payments for a contract, newest first
// as stored.
func (ps *Payments) ListByContract(ctx context.Context, contractID uint64) ([]model.Payment, error) {
	if _, err := ps.contracts.GetContract(ctx, contractID); err != nil {
		return nil, err
	}
	return ps.payments.ListPaymentsByContract(ctx, contractID)
}
