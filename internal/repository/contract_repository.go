package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/speaker-engagement/internal/engine"
	"github.com/iliyamo/speaker-engagement/internal/model"
)

// ContractRepo provides access to the contracts table.  The derived
// advance amount is stored alongside the commercial fields but is
// only ever written with values the engine computed; the repository
// has no way to set it independently.
type ContractRepo struct {
	db *sql.DB
}

// NewContractRepo returns a new ContractRepo bound to the given database.
func NewContractRepo(db *sql.DB) *ContractRepo { return &ContractRepo{db: db} }

const contractColumns = `id, number, speaker_id, event_id, agreed_amount_cents, currency,
	terms, advance_percentage, advance_amount_cents, status, signed_at,
	approved_by, approved_at, reject_reason, cancel_reason, created_by, created_at, updated_at`

func scanContract(row interface{ Scan(...interface{}) error }) (*model.Contract, error) {
	var c model.Contract
	var advancePct sql.NullInt16
	var advanceCents, approvedBy sql.NullInt64
	var signedAt, approvedAt sql.NullTime
	var rejectReason, cancelReason sql.NullString
	err := row.Scan(
		&c.ID, &c.Number, &c.SpeakerID, &c.EventID, &c.AgreedAmountCents, &c.Currency,
		&c.Terms, &advancePct, &advanceCents, &c.Status, &signedAt,
		&approvedBy, &approvedAt, &rejectReason, &cancelReason, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if advancePct.Valid {
		v := uint8(advancePct.Int16)
		c.AdvancePercentage = &v
	}
	if advanceCents.Valid {
		v := advanceCents.Int64
		c.AdvanceAmountCents = &v
	}
	if signedAt.Valid {
		v := signedAt.Time
		c.SignedAt = &v
	}
	if approvedBy.Valid {
		v := uint64(approvedBy.Int64)
		c.ApprovedBy = &v
	}
	if approvedAt.Valid {
		v := approvedAt.Time
		c.ApprovedAt = &v
	}
	if rejectReason.Valid {
		v := rejectReason.String
		c.RejectReason = &v
	}
	if cancelReason.Valid {
		v := cancelReason.String
		c.CancelReason = &v
	}
	return &c, nil
}

// CreateContract inserts the contract and populates the generated ID.
func (r *ContractRepo) CreateContract(ctx context.Context, c *model.Contract) error {
	const q = `INSERT INTO contracts
	           (number, speaker_id, event_id, agreed_amount_cents, currency, terms, advance_percentage, advance_amount_cents, status, created_by)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		c.Number, c.SpeakerID, c.EventID, c.AgreedAmountCents, c.Currency,
		c.Terms, c.AdvancePercentage, c.AdvanceAmountCents, c.Status, c.CreatedBy,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	const sel = `SELECT created_at, updated_at FROM contracts WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, c.ID).Scan(&c.CreatedAt, &c.UpdatedAt)
}

// GetContract returns the contract or NotFound.
func (r *ContractRepo) GetContract(ctx context.Context, id uint64) (*model.Contract, error) {
	const q = `SELECT ` + contractColumns + ` FROM contracts WHERE id = ?`
	c, err := scanContract(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if isNoRows(err) {
			return nil, engine.NewNotFound("contract", id)
		}
		return nil, err
	}
	return c, nil
}

// UpdateContractStatus moves the contract between statuses with the
// previous status as compare-and-set guard.
func (r *ContractRepo) UpdateContractStatus(ctx context.Context, id uint64, from, to model.ContractStatus, st engine.ContractStamps) (bool, error) {
	const q = `UPDATE contracts
	           SET status = ?,
	               signed_at = COALESCE(?, signed_at),
	               approved_by = COALESCE(?, approved_by),
	               approved_at = COALESCE(?, approved_at),
	               reject_reason = COALESCE(?, reject_reason),
	               cancel_reason = COALESCE(?, cancel_reason)
	           WHERE id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, q,
		to, st.SignedAt, st.ApprovedBy, st.ApprovedAt, st.RejectReason, st.CancelReason, id, from,
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

// UpdateContractTerms rewrites the commercial fields together with
// the derived advance, guarded on the status the engine read so a
// racing transition invalidates the write.
func (r *ContractRepo) UpdateContractTerms(ctx context.Context, id uint64, from model.ContractStatus, agreedCents int64, terms model.PaymentTerms, advancePct *uint8, advanceCents *int64) (bool, error) {
	const q = `UPDATE contracts
	           SET agreed_amount_cents = ?, terms = ?, advance_percentage = ?, advance_amount_cents = ?
	           WHERE id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, q, agreedCents, terms, advancePct, advanceCents, id, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
