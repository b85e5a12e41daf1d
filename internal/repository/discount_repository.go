package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/speaker-engagement/internal/model"
)

// DiscountRepo provides read access to the discount_tiers table for
// tier resolution.  Tier administration lives with the event CRUD
// surface; the engine only lists active tiers.
type DiscountRepo struct {
	db *sql.DB
}

// NewDiscountRepo returns a new DiscountRepo bound to the given database.
func NewDiscountRepo(db *sql.DB) *DiscountRepo { return &DiscountRepo{db: db} }

// ListActiveTiers returns the event's active tiers.  Resolution order
// is the engine's concern, so no ORDER BY beyond a stable id sort.
func (r *DiscountRepo) ListActiveTiers(ctx context.Context, eventID uint64) ([]model.DiscountTier, error) {
	const q = `SELECT id, event_id, days_before_event, percentage, priority, is_active, auto_apply, created_at
	           FROM discount_tiers
	           WHERE event_id = ? AND is_active = 1
	           ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	tiers := make([]model.DiscountTier, 0)
	for rows.Next() {
		var t model.DiscountTier
		if err := rows.Scan(&t.ID, &t.EventID, &t.DaysBeforeEvent, &t.Percentage, &t.Priority, &t.IsActive, &t.AutoApply, &t.CreatedAt); err != nil {
			return nil, err
		}
		tiers = append(tiers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tiers, nil
}
