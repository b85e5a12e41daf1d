package engine

import (
	"context"

	"github.com/iliyamo/speaker-engagement/internal/model"
)

// Availability manages a speaker's block-out intervals.  Blocks are
// immutable once created: a changed interval is modeled as delete
// plus recreate so bookings validated against the old interval are
// never silently orphaned.
type Availability struct {
	speakers SpeakerStore
	blocks   AvailabilityStore
}

// NewAvailability constructs an Availability service.
func NewAvailability(speakers SpeakerStore, blocks AvailabilityStore) *Availability {
	if speakers == nil || blocks == nil {
		panic("nil store passed to NewAvailability")
	}
	return &Availability{speakers: speakers, blocks: blocks}
}

// BlockRequest is the inbound value for creating a block-out.
type BlockRequest struct {
	SpeakerID  uint64
	Interval   Interval
	Reason     *string
	Recurrence *string
	ActorID    uint64
}

// CreateBlock records a new block-out for the speaker.
func (a *Availability) CreateBlock(ctx context.Context, req BlockRequest) (*model.AvailabilityBlock, error) {
	if err := req.Interval.Validate(); err != nil {
		return nil, err
	}
	if _, err := a.speakers.GetSpeaker(ctx, req.SpeakerID); err != nil {
		return nil, err
	}
	block := &model.AvailabilityBlock{
		SpeakerID:  req.SpeakerID,
		StartsAt:   req.Interval.Start,
		EndsAt:     req.Interval.End,
		Reason:     req.Reason,
		Recurrence: req.Recurrence,
		CreatedBy:  req.ActorID,
	}
	if err := a.blocks.CreateBlock(ctx, block); err != nil {
		return nil, err
	}
	return block, nil
}

// ListBlocks returns all block-outs for the speaker.
func (a *Availability) ListBlocks(ctx context.Context, speakerID uint64) ([]model.AvailabilityBlock, error) {
	if _, err := a.speakers.GetSpeaker(ctx, speakerID); err != nil {
		return nil, err
	}
	return a.blocks.ListActiveBlocks(ctx, speakerID)
}

// DeleteBlock removes a block-out.
func (a *Availability) DeleteBlock(ctx context.Context, id uint64) error {
	return a.blocks.DeleteBlock(ctx, id)
}
