package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/speaker-engagement/internal/engine"
	"github.com/iliyamo/speaker-engagement/internal/model"
)

// AvailabilityRepo provides access to the availability_blocks table.
// Blocks are insert/delete only; an interval change is modeled as
// delete plus recreate, so there is deliberately no update method.
type AvailabilityRepo struct {
	db *sql.DB
}

// NewAvailabilityRepo returns a new AvailabilityRepo bound to the
// given database.
func NewAvailabilityRepo(db *sql.DB) *AvailabilityRepo { return &AvailabilityRepo{db: db} }

// ListActiveBlocks returns all block-outs for a speaker ordered by
// start time.
func (r *AvailabilityRepo) ListActiveBlocks(ctx context.Context, speakerID uint64) ([]model.AvailabilityBlock, error) {
	const q = `SELECT id, speaker_id, starts_at, ends_at, reason, recurrence, created_by, created_at
	           FROM availability_blocks
	           WHERE speaker_id = ?
	           ORDER BY starts_at`
	rows, err := r.db.QueryContext(ctx, q, speakerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	blocks := make([]model.AvailabilityBlock, 0)
	for rows.Next() {
		var b model.AvailabilityBlock
		var reason, recurrence sql.NullString
		if err := rows.Scan(&b.ID, &b.SpeakerID, &b.StartsAt, &b.EndsAt, &reason, &recurrence, &b.CreatedBy, &b.CreatedAt); err != nil {
			return nil, err
		}
		if reason.Valid {
			v := reason.String
			b.Reason = &v
		}
		if recurrence.Valid {
			v := recurrence.String
			b.Recurrence = &v
		}
		blocks = append(blocks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return blocks, nil
}

// CreateBlock inserts a new block-out and populates the generated ID
// on the provided record.
func (r *AvailabilityRepo) CreateBlock(ctx context.Context, block *model.AvailabilityBlock) error {
	const q = `INSERT INTO availability_blocks (speaker_id, starts_at, ends_at, reason, recurrence, created_by)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		block.SpeakerID, block.StartsAt.UTC(), block.EndsAt.UTC(),
		block.Reason, block.Recurrence, block.CreatedBy,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	block.ID = uint64(id)
	return nil
}

// DeleteBlock removes a block-out.  A missing row surfaces as
// NotFound so callers can translate it to 404.
func (r *AvailabilityRepo) DeleteBlock(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM availability_blocks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return engine.NewNotFound("availability_block", id)
	}
	return nil
}
