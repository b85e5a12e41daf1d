package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/speaker-engagement/internal/model"
)

// Response shaping.  Models carry no serialization tags; each handler
// renders exactly the fields a client needs, with timestamps in
// RFC 3339 UTC.

func rfc3339(t time.Time) string { return t.UTC().Format(time.RFC3339) }

func rfc3339Ptr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := rfc3339(*t)
	return &s
}

func blockJSON(b *model.AvailabilityBlock) echo.Map {
	return echo.Map{
		"id":         b.ID,
		"speaker_id": b.SpeakerID,
		"starts_at":  rfc3339(b.StartsAt),
		"ends_at":    rfc3339(b.EndsAt),
		"reason":     b.Reason,
		"recurrence": b.Recurrence,
		"created_by": b.CreatedBy,
	}
}

func bookingJSON(b *model.Booking) echo.Map {
	return echo.Map{
		"id":                  b.ID,
		"speaker_id":          b.SpeakerID,
		"event_id":            b.EventID,
		"participation_start": rfc3339(b.ParticipationStart),
		"participation_end":   rfc3339(b.ParticipationEnd),
		"role":                b.Role,
		"modality":            b.Modality,
		"position":            b.Position,
		"status":              b.Status,
		"cancel_reason":       b.CancelReason,
		"confirmed_at":        rfc3339Ptr(b.ConfirmedAt),
		"cancelled_at":        rfc3339Ptr(b.CancelledAt),
		"created_at":          rfc3339(b.CreatedAt),
		"updated_at":          rfc3339(b.UpdatedAt),
	}
}

func contractJSON(ct *model.Contract) echo.Map {
	return echo.Map{
		"id":                   ct.ID,
		"contract_number":      ct.Number,
		"speaker_id":           ct.SpeakerID,
		"event_id":             ct.EventID,
		"agreed_amount_cents":  ct.AgreedAmountCents,
		"currency":             ct.Currency,
		"payment_terms":        ct.Terms,
		"advance_percentage":   ct.AdvancePercentage,
		"advance_amount_cents": ct.AdvanceAmountCents,
		"status":               ct.Status,
		"signed_at":            rfc3339Ptr(ct.SignedAt),
		"approved_by":          ct.ApprovedBy,
		"approved_at":          rfc3339Ptr(ct.ApprovedAt),
		"reject_reason":        ct.RejectReason,
		"cancel_reason":        ct.CancelReason,
		"created_at":           rfc3339(ct.CreatedAt),
		"updated_at":           rfc3339(ct.UpdatedAt),
	}
}

func paymentJSON(p *model.Payment) echo.Map {
	return echo.Map{
		"id":                 p.ID,
		"payment_number":     p.Number,
		"contract_id":        p.ContractID,
		"speaker_id":         p.SpeakerID,
		"amount_cents":       p.AmountCents,
		"currency":           p.Currency,
		"payment_type":       p.Type,
		"scheduled_date":     rfc3339(p.ScheduledDate),
		"actual_date":        rfc3339Ptr(p.ActualDate),
		"method":             p.Method,
		"status":             p.Status,
		"isr_percentage":     p.ISRPercentage,
		"isr_withheld_cents": p.ISRWithheldCents,
		"net_amount_cents":   p.NetAmountCents,
		"processed_by":       p.ProcessedBy,
		"processed_at":       rfc3339Ptr(p.ProcessedAt),
		"reject_reason":      p.RejectReason,
		"cancel_reason":      p.CancelReason,
		"created_at":         rfc3339(p.CreatedAt),
		"updated_at":         rfc3339(p.UpdatedAt),
	}
}

func tierJSON(t *model.DiscountTier) echo.Map {
	return echo.Map{
		"id":                t.ID,
		"event_id":          t.EventID,
		"days_before_event": t.DaysBeforeEvent,
		"percentage":        t.Percentage,
		"priority":          t.Priority,
		"auto_apply":        t.AutoApply,
	}
}
