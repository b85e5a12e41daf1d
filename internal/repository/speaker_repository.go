package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/speaker-engagement/internal/engine"
	"github.com/iliyamo/speaker-engagement/internal/model"
)

// SpeakerRepo provides read access to the speakers table.  Speaker
// records are owned by the upstream directory service; this service
// only reads them to validate references and to look up the fiscal
// category driving ISR withholding.
type SpeakerRepo struct {
	db *sql.DB
}

// NewSpeakerRepo returns a new SpeakerRepo bound to the given database.
func NewSpeakerRepo(db *sql.DB) *SpeakerRepo { return &SpeakerRepo{db: db} }

// GetSpeaker returns the speaker or a NotFound-kinded error.
func (r *SpeakerRepo) GetSpeaker(ctx context.Context, id uint64) (*model.Speaker, error) {
	const q = `SELECT id, full_name, category, created_at FROM speakers WHERE id = ?`
	var s model.Speaker
	err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.FullName, &s.Category, &s.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, engine.NewNotFound("speaker", id)
		}
		return nil, err
	}
	return &s, nil
}
