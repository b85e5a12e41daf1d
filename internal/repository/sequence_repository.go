package repository

import (
	"context"
	"database/sql"
)

// SequenceRepo hands out the per-year counters behind contract and
// payment numbers from the yearly_sequences table (scope, year, value
// with a composite primary key).  The counter advances inside a
// single INSERT … ON DUPLICATE KEY UPDATE statement, so concurrent
// callers can never observe the same value — unlike the scan-for-max
// approach this replaces, there is no read-then-write window.
type SequenceRepo struct {
	db *sql.DB
}

// NewSequenceRepo returns a new SequenceRepo bound to the given database.
func NewSequenceRepo(db *sql.DB) *SequenceRepo { return &SequenceRepo{db: db} }

// Next atomically increments and returns the sequence for the scope
// and year.  The LAST_INSERT_ID(expr) form makes the incremented
// value retrievable from the same connection without a second query.
func (r *SequenceRepo) Next(ctx context.Context, scope string, year int) (int64, error) {
	const q = `INSERT INTO yearly_sequences (scope, year, value)
	           VALUES (?, ?, LAST_INSERT_ID(1))
	           ON DUPLICATE KEY UPDATE value = LAST_INSERT_ID(value + 1)`
	res, err := r.db.ExecContext(ctx, q, scope, year)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
