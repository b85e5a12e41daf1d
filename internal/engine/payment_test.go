package engine

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/iliyamo/speaker-engagement/internal/model"
)

func newTestPayments(t *testing.T, cat model.SpeakerCategory) (*Payments, uint64) {
	t.Helper()
	m := newMemStores()
	speakerID := m.addSpeaker("Ravi Osei", cat)
	contracts := NewContracts(m, m, m, m)
	c, err := contracts.Create(context.Background(), ContractRequest{
		SpeakerID:         speakerID,
		EventID:           1,
		AgreedAmountCents: 500000,
		Currency:          "MXN",
		Terms:             model.TermsFull,
	})
	if err != nil {
		t.Fatalf("contract setup: %v", err)
	}
	return NewPayments(m, m, m, m), c.ID
}

func createPayment(t *testing.T, ps *Payments, contractID uint64, amountCents int64) *model.Payment {
	t.Helper()
	p, err := ps.Create(context.Background(), PaymentRequest{
		ContractID:    contractID,
		AmountCents:   amountCents,
		Currency:      "MXN",
		Type:          model.PaymentFinal,
		ScheduledDate: day(20),
		Method:        model.MethodTransfer,
		ActorID:       7,
	})
	if err != nil {
		t.Fatalf("payment setup: %v", err)
	}
	return p
}

func TestWithholdingRate(t *testing.T) {
	cases := []struct {
		cat  model.SpeakerCategory
		want uint8
	}{
		{model.CategoryNational, 5},
		{model.CategoryExpert, 5},
		{model.CategorySpecialGuest, 5},
		{model.CategoryInternational, 7},
	}
	for _, tc := range cases {
		if got := WithholdingRate(tc.cat); got != tc.want {
			t.Fatalf("WithholdingRate(%s) = %d, want %d", tc.cat, got, tc.want)
		}
	}
}

func TestCompleteDerivesWithholding(t *testing.T) {
	cases := []struct {
		name         string
		cat          model.SpeakerCategory
		wantRate     uint8
		wantWithheld int64
		wantNet      int64
	}{
		{"international 7%", model.CategoryInternational, 7, 7000, 93000},
		{"national 5%", model.CategoryNational, 5, 5000, 95000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ps, contractID := newTestPayments(t, tc.cat)
			ctx := context.Background()
			p := createPayment(t, ps, contractID, 100000)

			if _, err := ps.Process(ctx, p.ID, 7); err != nil {
				t.Fatalf("process: %v", err)
			}
			done, err := ps.Complete(ctx, p.ID, nil)
			if err != nil {
				t.Fatalf("complete: %v", err)
			}
			if done.ISRPercentage == nil || *done.ISRPercentage != tc.wantRate {
				t.Fatalf("isrPercentage = %v, want %d", done.ISRPercentage, tc.wantRate)
			}
			if done.ISRWithheldCents == nil || *done.ISRWithheldCents != tc.wantWithheld {
				t.Fatalf("isrWithheld = %v, want %d", fmtPtr(done.ISRWithheldCents), tc.wantWithheld)
			}
			if done.NetAmountCents == nil || *done.NetAmountCents != tc.wantNet {
				t.Fatalf("netAmount = %v, want %d", fmtPtr(done.NetAmountCents), tc.wantNet)
			}
			if done.ActualDate == nil {
				t.Fatal("completion did not stamp actualPaymentDate")
			}
		})
	}
}

func TestCompleteHonorsSuppliedActualDate(t *testing.T) {
	ps, contractID := newTestPayments(t, model.CategoryNational)
	ctx := context.Background()
	p := createPayment(t, ps, contractID, 100000)
	if _, err := ps.Process(ctx, p.ID, 7); err != nil {
		t.Fatalf("process: %v", err)
	}
	when := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	done, err := ps.Complete(ctx, p.ID, &when)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.ActualDate == nil || !done.ActualDate.Equal(when) {
		t.Fatalf("actualDate = %v, want %v", done.ActualDate, when)
	}
}

func TestPaymentLifecycleGuards(t *testing.T) {
	ps, contractID := newTestPayments(t, model.CategoryNational)
	ctx := context.Background()
	p := createPayment(t, ps, contractID, 100000)

	// completing a pending payment skips processing.
	if _, err := ps.Complete(ctx, p.ID, nil); !IsKind(err, KindInvalidStateTransition) {
		t.Fatalf("complete pending: got %v, want InvalidStateTransition", err)
	}

	processing, err := ps.Process(ctx, p.ID, 7)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if processing.ProcessedBy == nil || *processing.ProcessedBy != 7 || processing.ProcessedAt == nil {
		t.Fatal("process did not stamp processedBy/processedAt")
	}

	rejected, err := ps.Reject(ctx, p.ID, "wrong account")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Status != model.PaymentRejected || rejected.RejectReason == nil {
		t.Fatalf("after reject: status=%q reason=%v", rejected.Status, rejected.RejectReason)
	}

	// rejected is terminal.
	if _, err := ps.Process(ctx, p.ID, 7); !IsKind(err, KindInvalidStateTransition) {
		t.Fatalf("process rejected: got %v, want InvalidStateTransition", err)
	}
}

func TestPaymentNumberAndSpeakerCache(t *testing.T) {
	ps, contractID := newTestPayments(t, model.CategoryNational)
	p := createPayment(t, ps, contractID, 1000)
	if !strings.HasPrefix(p.Number, "PAY-") {
		t.Fatalf("number = %q, want PAY- prefix", p.Number)
	}
	if p.SpeakerID == 0 {
		t.Fatal("payment did not cache the contract's speaker id")
	}
	if p.Status != model.PaymentPending {
		t.Fatalf("status = %q, want pending", p.Status)
	}
}

func TestPaymentUnknownContract(t *testing.T) {
	ps, _ := newTestPayments(t, model.CategoryNational)
	_, err := ps.Create(context.Background(), PaymentRequest{
		ContractID:  404,
		AmountCents: 1000,
		Currency:    "MXN",
		Type:        model.PaymentFinal,
		Method:      model.MethodTransfer,
	})
	if !IsKind(err, KindNotFound) {
		t.Fatalf("got %v, want NotFound", err)
	}
}
