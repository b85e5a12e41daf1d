package model

import "time"

// ContractStatus is the lifecycle state of a speaker contract.
type ContractStatus string

const (
	ContractDraft     ContractStatus = "draft"
	ContractSent      ContractStatus = "sent"
	ContractSigned    ContractStatus = "signed"
	ContractRejected  ContractStatus = "rejected"
	ContractCancelled ContractStatus = "cancelled"
)

// PaymentTerms describes how the agreed amount is disbursed.
type PaymentTerms string

const (
	TermsFull         PaymentTerms = "full"
	TermsAdvance      PaymentTerms = "advance"
	TermsInstallments PaymentTerms = "installments"
)

// Valid reports whether the terms value is one of the known modes.
func (t PaymentTerms) Valid() bool {
	switch t {
	case TermsFull, TermsAdvance, TermsInstallments:
		return true
	}
	return false
}

// Contract is the commercial agreement for one speaker at one event.
// It is logically paired with the booking for the same speaker and
// event but has its own lifecycle.  All monetary amounts are stored
// in cents to keep derived values exact.
//
// The advance amount is never set directly: whenever the agreed
// amount, payment terms or advance percentage change, the engine
// recomputes it as agreedAmount * advancePercentage / 100, and clears
// it unless the terms are "advance" with a percentage present.
//
// Fields:
//  ID                 – primary key identifier.
//  Number             – human-readable contract number, CTR-YYYY-NNNN,
//                       assigned at creation from a per-year sequence
//                       and never reused.
//  SpeakerID          – contracting speaker.
//  EventID            – event the contract covers.
//  AgreedAmountCents  – total agreed fee in cents (>= 0).
//  Currency           – ISO currency code, e.g. "MXN".
//  Terms              – full, advance or installments.
//  AdvancePercentage  – 0–100; only meaningful when Terms=advance.
//  AdvanceAmountCents – derived; nil unless Terms=advance with a
//                       percentage set.
//  Status             – lifecycle state (see ContractStatus).
//  SignedAt           – stamped when the contract enters signed.
//  ApprovedBy/At      – stamped when signing happens via approval.
//  RejectReason       – recorded when the contract is rejected.
//  CancelReason       – recorded when the contract is cancelled.
type Contract struct {
	ID                 uint64         // contracts.id
	Number             string         // contracts.number (unique)
	SpeakerID          uint64         // contracts.speaker_id
	EventID            uint64         // contracts.event_id
	AgreedAmountCents  int64          // contracts.agreed_amount_cents
	Currency           string         // contracts.currency
	Terms              PaymentTerms   // contracts.terms
	AdvancePercentage  *uint8         // contracts.advance_percentage (nullable)
	AdvanceAmountCents *int64         // contracts.advance_amount_cents (nullable, derived)
	Status             ContractStatus // contracts.status
	SignedAt           *time.Time     // contracts.signed_at (nullable)
	ApprovedBy         *uint64        // contracts.approved_by (nullable)
	ApprovedAt         *time.Time     // contracts.approved_at (nullable)
	RejectReason       *string        // contracts.reject_reason (nullable)
	CancelReason       *string        // contracts.cancel_reason (nullable)
	CreatedBy          uint64         // contracts.created_by
	CreatedAt          time.Time      // contracts.created_at
	UpdatedAt          time.Time      // contracts.updated_at
}
