package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/speaker-engagement/internal/engine"
	"github.com/iliyamo/speaker-engagement/internal/model"
	"github.com/iliyamo/speaker-engagement/internal/queue"
	publisher "github.com/iliyamo/speaker-engagement/internal/service"
)

// ContractHandler exposes the contract lifecycle and its derived
// amounts.
type ContractHandler struct {
	Contracts *engine.Contracts
}

// NewContractHandler constructs a ContractHandler.
func NewContractHandler(ct *engine.Contracts) *ContractHandler {
	if ct == nil {
		panic("nil service passed to NewContractHandler")
	}
	return &ContractHandler{Contracts: ct}
}

type contractBody struct {
	SpeakerID         uint64 `json:"speaker_id"`
	EventID           uint64 `json:"event_id"`
	AgreedAmountCents int64  `json:"agreed_amount_cents"`
	Currency          string `json:"currency"`
	PaymentTerms      string `json:"payment_terms"`
	AdvancePercentage *uint8 `json:"advance_percentage"`
}

// Create handles POST /v1/contracts.  The contract number and advance
// amount are assigned server-side; any values for them in the body are
// ignored.
func (h *ContractHandler) Create(c echo.Context) error {
	actorID, err := getActorID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body contractBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.SpeakerID == 0 || body.EventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "speaker_id and event_id are required"})
	}
	contract, err := h.Contracts.Create(c.Request().Context(), engine.ContractRequest{
		SpeakerID:         body.SpeakerID,
		EventID:           body.EventID,
		AgreedAmountCents: body.AgreedAmountCents,
		Currency:          body.Currency,
		Terms:             model.PaymentTerms(body.PaymentTerms),
		AdvancePercentage: body.AdvancePercentage,
		ActorID:           actorID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, contractJSON(contract))
}

// Send handles POST /v1/contracts/:id/send.
func (h *ContractHandler) Send(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid contract id"})
	}
	contract, err := h.Contracts.Send(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, contractJSON(contract))
}

// Sign handles POST /v1/contracts/:id/sign.  A signed contract is
// announced on the broker so finance tooling can schedule the advance.
func (h *ContractHandler) Sign(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid contract id"})
	}
	contract, err := h.Contracts.Sign(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	h.publishSigned(c, contract)
	return c.JSON(http.StatusOK, contractJSON(contract))
}

// Approve handles POST /v1/contracts/:id/approve.  Approval signs the
// contract and additionally records who approved it.
func (h *ContractHandler) Approve(c echo.Context) error {
	actorID, err := getActorID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid contract id"})
	}
	contract, err := h.Contracts.Approve(c.Request().Context(), id, actorID)
	if err != nil {
		return writeError(c, err)
	}
	h.publishSigned(c, contract)
	return c.JSON(http.StatusOK, contractJSON(contract))
}

func (h *ContractHandler) publishSigned(c echo.Context, contract *model.Contract) {
	signedAt := ""
	if contract.SignedAt != nil {
		signedAt = rfc3339(*contract.SignedAt)
	}
	_ = publisher.PublishContractSigned(c.Request().Context(), queue.ContractSignedEvent{
		ContractID:         contract.ID,
		ContractNumber:     contract.Number,
		EventID:            contract.EventID,
		SpeakerID:          contract.SpeakerID,
		AgreedAmountCents:  contract.AgreedAmountCents,
		AdvanceAmountCents: contract.AdvanceAmountCents,
		SignedAt:           signedAt,
	})
}

// Reject handles POST /v1/contracts/:id/reject with an optional
// reason.
func (h *ContractHandler) Reject(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid contract id"})
	}
	var body struct {
		Reason string `json:"reason"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	contract, err := h.Contracts.Reject(c.Request().Context(), id, body.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, contractJSON(contract))
}

// Cancel handles POST /v1/contracts/:id/cancel with an optional
// reason.
func (h *ContractHandler) Cancel(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid contract id"})
	}
	var body struct {
		Reason string `json:"reason"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	contract, err := h.Contracts.Cancel(c.Request().Context(), id, body.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, contractJSON(contract))
}

// UpdateTerms handles PUT /v1/contracts/:id/terms.  Only the three
// commercial fields are editable; the advance amount is recomputed
// from them.
func (h *ContractHandler) UpdateTerms(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid contract id"})
	}
	var body struct {
		AgreedAmountCents int64  `json:"agreed_amount_cents"`
		PaymentTerms      string `json:"payment_terms"`
		AdvancePercentage *uint8 `json:"advance_percentage"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	contract, err := h.Contracts.UpdateTerms(c.Request().Context(), id, engine.TermsUpdate{
		AgreedAmountCents: body.AgreedAmountCents,
		Terms:             model.PaymentTerms(body.PaymentTerms),
		AdvancePercentage: body.AdvancePercentage,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, contractJSON(contract))
}

// Get handles GET /v1/contracts/:id, returning the contract together
// with its outstanding balance.
func (h *ContractHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid contract id"})
	}
	contract, balance, err := h.Contracts.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	out := contractJSON(contract)
	out["outstanding_balance_cents"] = balance
	return c.JSON(http.StatusOK, out)
}
