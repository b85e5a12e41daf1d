// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when a speaker booking reaches the
// confirmed state. It carries enough context for downstream consumers
// (notifications, calendars, analytics) to act without querying the
// primary database.
type BookingConfirmedEvent struct {
	BookingID   uint64 `json:"booking_id"`
	SpeakerID   uint64 `json:"speaker_id"`
	EventID     uint64 `json:"event_id"`
	Role        string `json:"role"`
	Modality    string `json:"modality"`
	StartsAt    string `json:"starts_at"`
	EndsAt      string `json:"ends_at"`
	ConfirmedAt string `json:"confirmed_at"`
}

// ContractSignedEvent is published when a contract transitions to
// signed, so finance tooling can schedule the advance payment.
type ContractSignedEvent struct {
	ContractID         uint64 `json:"contract_id"`
	ContractNumber     string `json:"contract_number"`
	EventID            uint64 `json:"event_id"`
	SpeakerID          uint64 `json:"speaker_id"`
	AgreedAmountCents  int64  `json:"agreed_amount_cents"`
	AdvanceAmountCents *int64 `json:"advance_amount_cents,omitempty"`
	SignedAt           string `json:"signed_at"`
}

// PaymentCompletedEvent is published when a payment completes,
// including the withholding actually applied.
type PaymentCompletedEvent struct {
	PaymentID        uint64 `json:"payment_id"`
	PaymentNumber    string `json:"payment_number"`
	ContractID       uint64 `json:"contract_id"`
	SpeakerID        uint64 `json:"speaker_id"`
	AmountCents      int64  `json:"amount_cents"`
	ISRWithheldCents int64  `json:"isr_withheld_cents"`
	NetAmountCents   int64  `json:"net_amount_cents"`
	CompletedAt      string `json:"completed_at"`
}
