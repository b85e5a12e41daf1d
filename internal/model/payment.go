package model

import "time"

// PaymentStatus is the lifecycle state of a single payment.
type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentCompleted  PaymentStatus = "completed"
	PaymentRejected   PaymentStatus = "rejected"
	PaymentCancelled  PaymentStatus = "cancelled"
)

// PaymentType distinguishes the role of a payment within a contract.
type PaymentType string

const (
	PaymentAdvance     PaymentType = "advance"
	PaymentFinal       PaymentType = "final"
	PaymentInstallment PaymentType = "installment"
)

// Valid reports whether the payment type is one of the known values.
func (t PaymentType) Valid() bool {
	switch t {
	case PaymentAdvance, PaymentFinal, PaymentInstallment:
		return true
	}
	return false
}

// PaymentMethod is how the money moves.
type PaymentMethod string

const (
	MethodTransfer PaymentMethod = "transfer"
	MethodCheck    PaymentMethod = "check"
	MethodCash     PaymentMethod = "cash"
)

// Payment is a single disbursement against a contract.  SpeakerID is
// cached from the contract purely for query convenience; the contract
// remains the source of truth for the pairing.  ISR fields are
// derived when the payment completes and are never accepted as input:
// isrWithheld = amount * isrPercentage / 100 and netAmount = amount -
// isrWithheld, where the percentage follows the speaker's category
// (5% national/expert/special_guest, 7% international).
//
// Fields:
//  ID               – primary key identifier.
//  Number           – human-readable payment number, PAY-YYYY-NNNN,
//                     from the same per-year sequence rule as
//                     contract numbers.
//  ContractID       – owning contract.
//  SpeakerID        – cached speaker reference.
//  AmountCents      – gross amount in cents (>= 0).
//  Currency         – ISO currency code.
//  Type             – advance, final or installment.
//  ScheduledDate    – when the payment is supposed to happen.
//  ActualDate       – stamped when the payment completes.
//  Method           – transfer, check or cash.
//  Status           – lifecycle state (see PaymentStatus).
//  ISRPercentage    – derived withholding rate, set on completion.
//  ISRWithheldCents – derived withheld amount, set on completion.
//  NetAmountCents   – derived net disbursement, set on completion.
//  ProcessedBy/At   – stamped when processing starts.
//  RejectReason     – recorded when the payment is rejected.
//  CancelReason     – recorded when the payment is cancelled.
type Payment struct {
	ID               uint64        // speaker_payments.id
	Number           string        // speaker_payments.number (unique)
	ContractID       uint64        // speaker_payments.contract_id
	SpeakerID        uint64        // speaker_payments.speaker_id
	AmountCents      int64         // speaker_payments.amount_cents
	Currency         string        // speaker_payments.currency
	Type             PaymentType   // speaker_payments.type
	ScheduledDate    time.Time     // speaker_payments.scheduled_date
	ActualDate       *time.Time    // speaker_payments.actual_date (nullable)
	Method           PaymentMethod // speaker_payments.method
	Status           PaymentStatus // speaker_payments.status
	ISRPercentage    *uint8        // speaker_payments.isr_percentage (nullable, derived)
	ISRWithheldCents *int64        // speaker_payments.isr_withheld_cents (nullable, derived)
	NetAmountCents   *int64        // speaker_payments.net_amount_cents (nullable, derived)
	ProcessedBy      *uint64       // speaker_payments.processed_by (nullable)
	ProcessedAt      *time.Time    // speaker_payments.processed_at (nullable)
	RejectReason     *string       // speaker_payments.reject_reason (nullable)
	CancelReason     *string       // speaker_payments.cancel_reason (nullable)
	CreatedBy        uint64        // speaker_payments.created_by
	CreatedAt        time.Time     // speaker_payments.created_at
	UpdatedAt        time.Time     // speaker_payments.updated_at
}
