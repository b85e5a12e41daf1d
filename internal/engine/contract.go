package engine

import (
	"context"
	"time"

	"github.com/iliyamo/speaker-engagement/internal/model"
)

// DeriveAdvance computes the contract's advance amount in cents.  It
// is a pure function of the three commercial fields: the result is
// agreedCents * pct / 100 (rounded half up on the cent) when the
// terms are "advance" and a percentage is present, and nil otherwise.
func DeriveAdvance(agreedCents int64, terms model.PaymentTerms, pct *uint8) *int64 {
	if terms != model.TermsAdvance || pct == nil {
		return nil
	}
	v := (agreedCents*int64(*pct) + 50) / 100
	return &v
}

// OutstandingBalance is the agreed amount minus the sum of completed
// payment amounts.
func OutstandingBalance(agreedCents int64, payments []model.Payment) int64 {
	balance := agreedCents
	for _, p := range payments {
		if p.Status == model.PaymentCompleted {
			balance -= p.AmountCents
		}
	}
	return balance
}

// contractTargets lists the valid source statuses for each contract
// transition.  signed, rejected and cancelled are reached only as
// shown; rejected and cancelled are terminal.
var contractTargets = map[model.ContractStatus][]model.ContractStatus{
	model.ContractSent:      {model.ContractDraft},
	model.ContractSigned:    {model.ContractSent},
	model.ContractRejected:  {model.ContractDraft, model.ContractSent},
	model.ContractCancelled: {model.ContractDraft, model.ContractSent, model.ContractSigned},
}

func contractCanMove(from, to model.ContractStatus) bool {
	for _, s := range contractTargets[to] {
		if s == from {
			return true
		}
	}
	return false
}

// Contracts drives the contract lifecycle and the derived money
// attached to it.
type Contracts struct {
	speakers  SpeakerStore
	contracts ContractStore
	payments  PaymentStore
	seqs      SequenceStore

	now func() time.Time
}

// NewContracts constructs a Contracts service.
func NewContracts(speakers SpeakerStore, contracts ContractStore, payments PaymentStore, seqs SequenceStore) *Contracts {
	if speakers == nil || contracts == nil || payments == nil || seqs == nil {
		panic("nil store passed to NewContracts")
	}
	return &Contracts{
		speakers:  speakers,
		contracts: contracts,
		payments:  payments,
		seqs:      seqs,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ContractRequest is the inbound value for creating a contract.
type ContractRequest struct {
	SpeakerID         uint64
	EventID           uint64
	AgreedAmountCents int64
	Currency          string
	Terms             model.PaymentTerms
	AdvancePercentage *uint8
	ActorID           uint64
}

func (c *Contracts) validateTerms(agreedCents int64, terms model.PaymentTerms, pct *uint8) error {
	if agreedCents < 0 {
		return newError(KindInvalidArgument, "agreed amount must not be negative")
	}
	if !terms.Valid() {
		return newError(KindInvalidArgument, "unknown payment terms %q", terms)
	}
	if pct != nil && *pct > 100 {
		return newError(KindInvalidArgument, "advance percentage must be between 0 and 100")
	}
	return nil
}

// Create opens a contract in draft status.  The contract number is
// drawn from the per-year sequence before the insert; a failed insert
// legitimately skips the number.
func (c *Contracts) Create(ctx context.Context, req ContractRequest) (*model.Contract, error) {
	if err := c.validateTerms(req.AgreedAmountCents, req.Terms, req.AdvancePercentage); err != nil {
		return nil, err
	}
	if _, err := c.speakers.GetSpeaker(ctx, req.SpeakerID); err != nil {
		return nil, err
	}
	number, err := nextContractNumber(ctx, c.seqs, c.now())
	if err != nil {
		return nil, err
	}
	contract := &model.Contract{
		Number:             number,
		SpeakerID:          req.SpeakerID,
		EventID:            req.EventID,
		AgreedAmountCents:  req.AgreedAmountCents,
		Currency:           req.Currency,
		Terms:              req.Terms,
		AdvancePercentage:  req.AdvancePercentage,
		AdvanceAmountCents: DeriveAdvance(req.AgreedAmountCents, req.Terms, req.AdvancePercentage),
		Status:             model.ContractDraft,
		CreatedBy:          req.ActorID,
	}
	if err := c.contracts.CreateContract(ctx, contract); err != nil {
		return nil, err
	}
	return contract, nil
}

// transition applies one contract lifecycle move with the read status
// as CAS guard.
func (c *Contracts) transition(ctx context.Context, id uint64, to model.ContractStatus, st ContractStamps, action string) (*model.Contract, error) {
	contract, err := c.contracts.GetContract(ctx, id)
	if err != nil {
		return nil, err
	}
	if !contractCanMove(contract.Status, to) {
		return nil, newTransitionError("contract", id, string(contract.Status), action)
	}
	applied, err := c.contracts.UpdateContractStatus(ctx, id, contract.Status, to, st)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, NewConcurrencyConflict("contract", id)
	}
	return c.contracts.GetContract(ctx, id)
}

// Send marks a draft contract as sent to the speaker.
func (c *Contracts) Send(ctx context.Context, id uint64) (*model.Contract, error) {
	return c.transition(ctx, id, model.ContractSent, ContractStamps{}, "send")
}

// Sign marks a sent contract as signed and stamps signedAt.
func (c *Contracts) Sign(ctx context.Context, id uint64) (*model.Contract, error) {
	now := c.now()
	return c.transition(ctx, id, model.ContractSigned, ContractStamps{SignedAt: &now}, "sign")
}

// Approve signs the contract through an approval action, stamping
// approvedBy/approvedAt in addition to signedAt.
func (c *Contracts) Approve(ctx context.Context, id, actorID uint64) (*model.Contract, error) {
	now := c.now()
	return c.transition(ctx, id, model.ContractSigned, ContractStamps{
		SignedAt:   &now,
		ApprovedBy: &actorID,
		ApprovedAt: &now,
	}, "approve")
}

// Reject terminates a draft or sent contract with a reason.
func (c *Contracts) Reject(ctx context.Context, id uint64, reason string) (*model.Contract, error) {
	st := ContractStamps{}
	if reason != "" {
		st.RejectReason = &reason
	}
	return c.transition(ctx, id, model.ContractRejected, st, "reject")
}

// Cancel terminates a contract from any non-terminal status.
func (c *Contracts) Cancel(ctx context.Context, id uint64, reason string) (*model.Contract, error) {
	st := ContractStamps{}
	if reason != "" {
		st.CancelReason = &reason
	}
	return c.transition(ctx, id, model.ContractCancelled, st, "cancel")
}

// TermsUpdate carries the editable commercial fields.
type TermsUpdate struct {
	AgreedAmountCents int64
	Terms             model.PaymentTerms
	AdvancePercentage *uint8
}

// UpdateTerms rewrites the commercial fields of a contract still in
// draft or sent status and recomputes the advance amount from them.
// The advance is never settable directly.
func (c *Contracts) UpdateTerms(ctx context.Context, id uint64, upd TermsUpdate) (*model.Contract, error) {
	if err := c.validateTerms(upd.AgreedAmountCents, upd.Terms, upd.AdvancePercentage); err != nil {
		return nil, err
	}
	contract, err := c.contracts.GetContract(ctx, id)
	if err != nil {
		return nil, err
	}
	if contract.Status != model.ContractDraft && contract.Status != model.ContractSent {
		return nil, newTransitionError("contract", id, string(contract.Status), "update terms")
	}
	advance := DeriveAdvance(upd.AgreedAmountCents, upd.Terms, upd.AdvancePercentage)
	applied, err := c.contracts.UpdateContractTerms(ctx, id, contract.Status, upd.AgreedAmountCents, upd.Terms, upd.AdvancePercentage, advance)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, NewConcurrencyConflict("contract", id)
	}
	return c.contracts.GetContract(ctx, id)
}

// Get returns the contract together with its outstanding balance.
func (c *Contracts) Get(ctx context.Context, id uint64) (*model.Contract, int64, error) {
	contract, err := c.contracts.GetContract(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	payments, err := c.payments.ListPaymentsByContract(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	return contract, OutstandingBalance(contract.AgreedAmountCents, payments), nil
}
