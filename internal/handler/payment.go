package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/speaker-engagement/internal/engine"
	"github.com/iliyamo/speaker-engagement/internal/model"
	"github.com/iliyamo/speaker-engagement/internal/queue"
	publisher "github.com/iliyamo/speaker-engagement/internal/service"
)

// PaymentHandler exposes payment scheduling and the payment lifecycle.
type PaymentHandler struct {
	Payments *engine.Payments
}

// NewPaymentHandler constructs a PaymentHandler.
func NewPaymentHandler(ps *engine.Payments) *PaymentHandler {
	if ps == nil {
		panic("nil service passed to NewPaymentHandler")
	}
	return &PaymentHandler{Payments: ps}
}

// Create handles POST /v1/payments.  The payment number, speaker
// reference and ISR fields are assigned server-side.
func (h *PaymentHandler) Create(c echo.Context) error {
	actorID, err := getActorID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		ContractID    uint64    `json:"contract_id"`
		AmountCents   int64     `json:"amount_cents"`
		Currency      string    `json:"currency"`
		PaymentType   string    `json:"payment_type"`
		ScheduledDate time.Time `json:"scheduled_date"`
		Method        string    `json:"method"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.ContractID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "contract_id is required"})
	}
	payment, err := h.Payments.Create(c.Request().Context(), engine.PaymentRequest{
		ContractID:    body.ContractID,
		AmountCents:   body.AmountCents,
		Currency:      body.Currency,
		Type:          model.PaymentType(body.PaymentType),
		ScheduledDate: body.ScheduledDate,
		Method:        model.PaymentMethod(body.Method),
		ActorID:       actorID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, paymentJSON(payment))
}

// Process handles POST /v1/payments/:id/process.
func (h *PaymentHandler) Process(c echo.Context) error {
	actorID, err := getActorID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payment id"})
	}
	payment, err := h.Payments.Process(c.Request().Context(), id, actorID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, paymentJSON(payment))
}

// Complete handles POST /v1/payments/:id/complete.  The body may carry
// the actual payment date; the ISR withholding is derived from the
// speaker's category, never taken from the request.  Completion is
// announced on the broker.
func (h *PaymentHandler) Complete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payment id"})
	}
	var body struct {
		ActualDate *time.Time `json:"actual_date"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	payment, err := h.Payments.Complete(c.Request().Context(), id, body.ActualDate)
	if err != nil {
		return writeError(c, err)
	}
	ev := queue.PaymentCompletedEvent{
		PaymentID:     payment.ID,
		PaymentNumber: payment.Number,
		ContractID:    payment.ContractID,
		SpeakerID:     payment.SpeakerID,
		AmountCents:   payment.AmountCents,
	}
	if payment.ISRWithheldCents != nil {
		ev.ISRWithheldCents = *payment.ISRWithheldCents
	}
	if payment.NetAmountCents != nil {
		ev.NetAmountCents = *payment.NetAmountCents
	}
	if payment.ActualDate != nil {
		ev.CompletedAt = rfc3339(*payment.ActualDate)
	}
	_ = publisher.PublishPaymentCompleted(c.Request().Context(), ev)
	return c.JSON(http.StatusOK, paymentJSON(payment))
}

// Reject handles POST /v1/payments/:id/reject with an optional reason.
func (h *PaymentHandler) Reject(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payment id"})
	}
	var body struct {
		Reason string `json:"reason"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	payment, err := h.Payments.Reject(c.Request().Context(), id, body.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, paymentJSON(payment))
}

// Cancel handles POST /v1/payments/:id/cancel with an optional reason.
func (h *PaymentHandler) Cancel(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payment id"})
	}
	var body struct {
		Reason string `json:"reason"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	payment, err := h.Payments.Cancel(c.Request().Context(), id, body.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, paymentJSON(payment))
}

// ListForContract handles GET /v1/contracts/:id/payments.
func (h *PaymentHandler) ListForContract(c echo.Context) error {
	contractID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid contract id"})
	}
	payments, err := h.Payments.ListByContract(c.Request().Context(), contractID)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]echo.Map, 0, len(payments))
	for i := range payments {
		out = append(out, paymentJSON(&payments[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"payments": out})
}
