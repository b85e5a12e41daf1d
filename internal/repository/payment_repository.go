package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/speaker-engagement/internal/engine"
	"github.com/iliyamo/speaker-engagement/internal/model"
)

// PaymentRepo provides access to the speaker_payments table.  The ISR
// columns hold values derived by the engine on completion; like the
// contract advance they are never written from request input.
type PaymentRepo struct {
	db *sql.DB
}

// NewPaymentRepo returns a new PaymentRepo bound to the given database.
func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{db: db} }

const paymentColumns = `id, number, contract_id, speaker_id, amount_cents, currency, type,
	scheduled_date, actual_date, method, status, isr_percentage, isr_withheld_cents,
	net_amount_cents, processed_by, processed_at, reject_reason, cancel_reason,
	created_by, created_at, updated_at`

func scanPayment(row interface{ Scan(...interface{}) error }) (*model.Payment, error) {
	var p model.Payment
	var actualDate, processedAt sql.NullTime
	var isrPct sql.NullInt16
	var isrWithheld, netAmount, processedBy sql.NullInt64
	var rejectReason, cancelReason sql.NullString
	err := row.Scan(
		&p.ID, &p.Number, &p.ContractID, &p.SpeakerID, &p.AmountCents, &p.Currency, &p.Type,
		&p.ScheduledDate, &actualDate, &p.Method, &p.Status, &isrPct, &isrWithheld,
		&netAmount, &processedBy, &processedAt, &rejectReason, &cancelReason,
		&p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if actualDate.Valid {
		v := actualDate.Time
		p.ActualDate = &v
	}
	if isrPct.Valid {
		v := uint8(isrPct.Int16)
		p.ISRPercentage = &v
	}
	if isrWithheld.Valid {
		v := isrWithheld.Int64
		p.ISRWithheldCents = &v
	}
	if netAmount.Valid {
		v := netAmount.Int64
		p.NetAmountCents = &v
	}
	if processedBy.Valid {
		v := uint64(processedBy.Int64)
		p.ProcessedBy = &v
	}
	if processedAt.Valid {
		v := processedAt.Time
		p.ProcessedAt = &v
	}
	if rejectReason.Valid {
		v := rejectReason.String
		p.RejectReason = &v
	}
	if cancelReason.Valid {
		v := cancelReason.String
		p.CancelReason = &v
	}
	return &p, nil
}

// CreatePayment inserts the payment and populates the generated ID.
func (r *PaymentRepo) CreatePayment(ctx context.Context, p *model.Payment) error {
	const q = `INSERT INTO speaker_payments
	           (number, contract_id, speaker_id, amount_cents, currency, type, scheduled_date, method, status, created_by)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		p.Number, p.ContractID, p.SpeakerID, p.AmountCents, p.Currency,
		p.Type, p.ScheduledDate.UTC(), p.Method, p.Status, p.CreatedBy,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	const sel = `SELECT created_at, updated_at FROM speaker_payments WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, p.ID).Scan(&p.CreatedAt, &p.UpdatedAt)
}

// GetPayment returns the payment or NotFound.
func (r *PaymentRepo) GetPayment(ctx context.Context, id uint64) (*model.Payment, error) {
	const q = `SELECT ` + paymentColumns + ` FROM speaker_payments WHERE id = ?`
	p, err := scanPayment(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if isNoRows(err) {
			return nil, engine.NewNotFound("payment", id)
		}
		return nil, err
	}
	return p, nil
}

// ListPaymentsByContract returns all payments for a contract ordered
// by scheduled date.
func (r *PaymentRepo) ListPaymentsByContract(ctx context.Context, contractID uint64) ([]model.Payment, error) {
	const q = `SELECT ` + paymentColumns + ` FROM speaker_payments WHERE contract_id = ? ORDER BY scheduled_date, id`
	rows, err := r.db.QueryContext(ctx, q, contractID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	payments := make([]model.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return payments, nil
}

// UpdatePaymentStatus moves the payment between statuses with the
// previous status as compare-and-set guard.
func (r *PaymentRepo) UpdatePaymentStatus(ctx context.Context, id uint64, from, to model.PaymentStatus, st engine.PaymentStamps) (bool, error) {
	const q = `UPDATE speaker_payments
	           SET status = ?,
	               actual_date = COALESCE(?, actual_date),
	               isr_percentage = COALESCE(?, isr_percentage),
	               isr_withheld_cents = COALESCE(?, isr_withheld_cents),
	               net_amount_cents = COALESCE(?, net_amount_cents),
	               processed_by = COALESCE(?, processed_by),
	               processed_at = COALESCE(?, processed_at),
	               reject_reason = COALESCE(?, reject_reason),
	               cancel_reason = COALESCE(?, cancel_reason)
	           WHERE id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, q,
		to, st.ActualDate, st.ISRPercentage, st.ISRWithheldCents, st.NetAmountCents,
		st.ProcessedBy, st.ProcessedAt, st.RejectReason, st.CancelReason, id, from,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
