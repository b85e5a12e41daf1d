package engine

import (
	"context"
	"strings"
	"testing"

	"github.com/iliyamo/speaker-engagement/internal/model"
)

func pct(v uint8) *uint8 { return &v }

func newTestContracts(t *testing.T) (*Contracts, *memStores, uint64) {
	t.Helper()
	m := newMemStores()
	speakerID := m.addSpeaker("Nia Cortes", model.CategoryNational)
	return NewContracts(m, m, m, m), m, speakerID
}

func TestDeriveAdvance(t *testing.T) {
	cases := []struct {
		name   string
		agreed int64
		terms  model.PaymentTerms
		pct    *uint8
		want   *int64
	}{
		{"advance 30%", 100000, model.TermsAdvance, pct(30), ptrInt64(30000)},
		{"advance 50%", 100000, model.TermsAdvance, pct(50), ptrInt64(50000)},
		{"advance without pct", 100000, model.TermsAdvance, nil, nil},
		{"full terms", 100000, model.TermsFull, pct(30), nil},
		{"installments", 100000, model.TermsInstallments, pct(30), nil},
		{"rounds half up", 99, model.TermsAdvance, pct(50), ptrInt64(50)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DeriveAdvance(tc.agreed, tc.terms, tc.pct)
			if (got == nil) != (tc.want == nil) || (got != nil && *got != *tc.want) {
				t.Fatalf("DeriveAdvance = %v, want %v", fmtPtr(got), fmtPtr(tc.want))
			}
		})
	}
}

func ptrInt64(v int64) *int64 { return &v }

func fmtPtr(v *int64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func TestContractCreateDerivesAdvance(t *testing.T) {
	svc, _, speakerID := newTestContracts(t)
	c, err := svc.Create(context.Background(), ContractRequest{
		SpeakerID:         speakerID,
		EventID:           1,
		AgreedAmountCents: 100000,
		Currency:          "MXN",
		Terms:             model.TermsAdvance,
		AdvancePercentage: pct(30),
		ActorID:           7,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.Status != model.ContractDraft {
		t.Fatalf("status = %q, want draft", c.Status)
	}
	if c.AdvanceAmountCents == nil || *c.AdvanceAmountCents != 30000 {
		t.Fatalf("advance = %v, want 30000", fmtPtr(c.AdvanceAmountCents))
	}
	if !strings.HasPrefix(c.Number, "CTR-") {
		t.Fatalf("number = %q, want CTR- prefix", c.Number)
	}
}

func TestContractNumbersAreSequentialPerYear(t *testing.T) {
	svc, _, speakerID := newTestContracts(t)
	ctx := context.Background()
	req := ContractRequest{SpeakerID: speakerID, EventID: 1, AgreedAmountCents: 1000, Currency: "MXN", Terms: model.TermsFull}

	first, err := svc.Create(ctx, req)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := svc.Create(ctx, req)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !strings.HasSuffix(first.Number, "-0001") || !strings.HasSuffix(second.Number, "-0002") {
		t.Fatalf("numbers %q, %q are not sequential", first.Number, second.Number)
	}
}

func TestContractUpdateTermsRecomputesAdvance(t *testing.T) {
	svc, _, speakerID := newTestContracts(t)
	ctx := context.Background()
	c, err := svc.Create(ctx, ContractRequest{
		SpeakerID:         speakerID,
		EventID:           1,
		AgreedAmountCents: 100000,
		Currency:          "MXN",
		Terms:             model.TermsAdvance,
		AdvancePercentage: pct(30),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.UpdateTerms(ctx, c.ID, TermsUpdate{
		AgreedAmountCents: 100000,
		Terms:             model.TermsAdvance,
		AdvancePercentage: pct(50),
	})
	if err != nil {
		t.Fatalf("UpdateTerms: %v", err)
	}
	if updated.AdvanceAmountCents == nil || *updated.AdvanceAmountCents != 50000 {
		t.Fatalf("advance = %v, want 50000", fmtPtr(updated.AdvanceAmountCents))
	}
	if updated.AgreedAmountCents != 100000 {
		t.Fatalf("agreed amount changed: %d", updated.AgreedAmountCents)
	}

	// switching away from advance terms clears the derived amount.
	cleared, err := svc.UpdateTerms(ctx, c.ID, TermsUpdate{
		AgreedAmountCents: 100000,
		Terms:             model.TermsFull,
	})
	if err != nil {
		t.Fatalf("UpdateTerms: %v", err)
	}
	if cleared.AdvanceAmountCents != nil {
		t.Fatalf("advance = %v, want unset", fmtPtr(cleared.AdvanceAmountCents))
	}
}

func TestContractLifecycle(t *testing.T) {
	svc, _, speakerID := newTestContracts(t)
	ctx := context.Background()
	c, err := svc.Create(ctx, ContractRequest{SpeakerID: speakerID, EventID: 1, AgreedAmountCents: 1000, Currency: "MXN", Terms: model.TermsFull})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// signing a draft skips "sent" and must be refused.
	if _, err := svc.Sign(ctx, c.ID); !IsKind(err, KindInvalidStateTransition) {
		t.Fatalf("sign draft: got %v, want InvalidStateTransition", err)
	}

	if _, err := svc.Send(ctx, c.ID); err != nil {
		t.Fatalf("send: %v", err)
	}
	signed, err := svc.Sign(ctx, c.ID)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if signed.Status != model.ContractSigned || signed.SignedAt == nil {
		t.Fatalf("after sign: status=%q signedAt=%v", signed.Status, signed.SignedAt)
	}

	// signed contracts can still be cancelled but not rejected.
	if _, err := svc.Reject(ctx, c.ID, "no"); !IsKind(err, KindInvalidStateTransition) {
		t.Fatalf("reject signed: got %v, want InvalidStateTransition", err)
	}
	cancelled, err := svc.Cancel(ctx, c.ID, "event dropped")
	if err != nil {
		t.Fatalf("cancel signed: %v", err)
	}
	if cancelled.Status != model.ContractCancelled {
		t.Fatalf("after cancel: status=%q", cancelled.Status)
	}
	// terminal.
	if _, err := svc.Send(ctx, c.ID); !IsKind(err, KindInvalidStateTransition) {
		t.Fatalf("send cancelled: got %v, want InvalidStateTransition", err)
	}
}

func TestContractApproveStampsApprover(t *testing.T) {
	svc, _, speakerID := newTestContracts(t)
	ctx := context.Background()
	c, err := svc.Create(ctx, ContractRequest{SpeakerID: speakerID, EventID: 1, AgreedAmountCents: 1000, Currency: "MXN", Terms: model.TermsFull})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Send(ctx, c.ID); err != nil {
		t.Fatalf("send: %v", err)
	}
	approved, err := svc.Approve(ctx, c.ID, 42)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != model.ContractSigned || approved.SignedAt == nil {
		t.Fatalf("approve did not sign: status=%q", approved.Status)
	}
	if approved.ApprovedBy == nil || *approved.ApprovedBy != 42 || approved.ApprovedAt == nil {
		t.Fatal("approve did not stamp approvedBy/approvedAt")
	}
}

func TestOutstandingBalance(t *testing.T) {
	payments := []model.Payment{
		{AmountCents: 30000, Status: model.PaymentCompleted},
		{AmountCents: 20000, Status: model.PaymentPending},
		{AmountCents: 10000, Status: model.PaymentCompleted},
		{AmountCents: 5000, Status: model.PaymentCancelled},
	}
	if got := OutstandingBalance(100000, payments); got != 60000 {
		t.Fatalf("balance = %d, want 60000", got)
	}
}

func TestFormatNumber(t *testing.T) {
	if got := formatNumber("CTR", 2026, 42); got != "CTR-2026-0042" {
		t.Fatalf("formatNumber = %q", got)
	}
	if got := formatNumber("PAY", 2026, 12345); got != "PAY-2026-12345" {
		t.Fatalf("formatNumber past padding = %q", got)
	}
}
