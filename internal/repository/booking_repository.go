package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/speaker-engagement/internal/engine"
	"github.com/iliyamo/speaker-engagement/internal/model"
)

// BookingRepo provides access to the speaker_events table.  The table
// carries a unique key over (speaker_id, event_id, alive) where alive
// is a generated column that is 1 while deleted_at is NULL and NULL
// afterwards — MySQL permits any number of NULLs in a unique index,
// so soft-deleted rows never block a fresh booking while at most one
// live row can exist per pair.  That key is the storage-level backstop
// for the engine's per-speaker serialization.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingColumns = `id, speaker_id, event_id, participation_start, participation_end,
	role, modality, position, status, cancel_reason, created_by,
	confirmed_at, cancelled_at, deleted_at, created_at, updated_at`

func scanBooking(row interface{ Scan(...interface{}) error }) (*model.Booking, error) {
	var b model.Booking
	var cancelReason sql.NullString
	var confirmedAt, cancelledAt, deletedAt sql.NullTime
	err := row.Scan(
		&b.ID, &b.SpeakerID, &b.EventID, &b.ParticipationStart, &b.ParticipationEnd,
		&b.Role, &b.Modality, &b.Position, &b.Status, &cancelReason, &b.CreatedBy,
		&confirmedAt, &cancelledAt, &deletedAt, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if cancelReason.Valid {
		v := cancelReason.String
		b.CancelReason = &v
	}
	if confirmedAt.Valid {
		v := confirmedAt.Time
		b.ConfirmedAt = &v
	}
	if cancelledAt.Valid {
		v := cancelledAt.Time
		b.CancelledAt = &v
	}
	if deletedAt.Valid {
		v := deletedAt.Time
		b.DeletedAt = &v
	}
	return &b, nil
}

// ListActiveBookings returns the speaker's live bookings in tentative
// or confirmed status, optionally excluding one event.
func (r *BookingRepo) ListActiveBookings(ctx context.Context, speakerID, excludeEventID uint64) ([]model.Booking, error) {
	q := `SELECT ` + bookingColumns + `
	      FROM speaker_events
	      WHERE speaker_id = ? AND deleted_at IS NULL AND status IN ('tentative', 'confirmed')`
	args := []interface{}{speakerID}
	if excludeEventID != 0 {
		q += ` AND event_id <> ?`
		args = append(args, excludeEventID)
	}
	q += ` ORDER BY participation_start`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	bookings := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}

// FindLiveBySpeakerEvent returns the non-deleted booking for the
// pair, or (nil, nil) when none exists.
func (r *BookingRepo) FindLiveBySpeakerEvent(ctx context.Context, speakerID, eventID uint64) (*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + `
	           FROM speaker_events
	           WHERE speaker_id = ? AND event_id = ? AND deleted_at IS NULL`
	b, err := scanBooking(r.db.QueryRowContext(ctx, q, speakerID, eventID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return b, nil
}

// CreateBooking inserts the booking and populates the generated ID.
// A unique-key violation on the live pair is reported as a
// DuplicateBooking so a race slipping past the engine's lock fails
// the same way a sequential duplicate does.
func (r *BookingRepo) CreateBooking(ctx context.Context, b *model.Booking) error {
	const q = `INSERT INTO speaker_events
	           (speaker_id, event_id, participation_start, participation_end, role, modality, position, status, created_by)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		b.SpeakerID, b.EventID, b.ParticipationStart.UTC(), b.ParticipationEnd.UTC(),
		b.Role, b.Modality, b.Position, b.Status, b.CreatedBy,
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return engine.NewDuplicateBooking(b.SpeakerID, b.EventID)
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	const sel = `SELECT created_at, updated_at FROM speaker_events WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, b.ID).Scan(&b.CreatedAt, &b.UpdatedAt)
}

// GetBooking returns the non-deleted booking or NotFound.
func (r *BookingRepo) GetBooking(ctx context.Context, id uint64) (*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + `
	           FROM speaker_events
	           WHERE id = ? AND deleted_at IS NULL`
	b, err := scanBooking(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if isNoRows(err) {
			return nil, engine.NewNotFound("booking", id)
		}
		return nil, err
	}
	return b, nil
}

// UpdateBookingStatus moves the booking between statuses with the
// previous status as compare-and-set guard.  Zero affected rows means
// another transition got there first.
func (r *BookingRepo) UpdateBookingStatus(ctx context.Context, id uint64, from, to model.BookingStatus, st engine.BookingStamps) (bool, error) {
	const q = `UPDATE speaker_events
	           SET status = ?,
	               confirmed_at = COALESCE(?, confirmed_at),
	               cancelled_at = COALESCE(?, cancelled_at),
	               cancel_reason = COALESCE(?, cancel_reason)
	           WHERE id = ? AND status = ? AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, q, to, st.ConfirmedAt, st.CancelledAt, st.CancelReason, id, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SoftDeleteBooking marks the booking deleted, freeing its
// (speaker, event) pair for a fresh booking.
func (r *BookingRepo) SoftDeleteBooking(ctx context.Context, id uint64) (bool, error) {
	const q = `UPDATE speaker_events SET deleted_at = UTC_TIMESTAMP() WHERE id = ? AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
