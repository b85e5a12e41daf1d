package model

import "time"

// AvailabilityBlock marks an interval during which a speaker is
// explicitly unavailable (vacation, another commitment).  Blocks are
// created by an administrator or the speaker and removed explicitly;
// an interval is never edited in place — changing it means deleting
// the block and creating a new one, so bookings checked against the
// old interval are never silently orphaned.
//
// Fields:
//  ID         – primary key identifier.
//  SpeakerID  – owning speaker.
//  StartsAt   – inclusive start of the block-out interval (UTC).
//  EndsAt     – exclusive end of the block-out interval (UTC).
//  Reason     – optional free-text reason shown in conflict errors.
//  Recurrence – optional recurrence descriptor.  Stored verbatim;
//               the engine never expands it, materialization is an
//               external concern.
//  CreatedBy  – actor who created the block.
//  CreatedAt  – creation timestamp.
type AvailabilityBlock struct {
	ID         uint64    // availability_blocks.id
	SpeakerID  uint64    // availability_blocks.speaker_id
	StartsAt   time.Time // availability_blocks.starts_at
	EndsAt     time.Time // availability_blocks.ends_at
	Reason     *string   // availability_blocks.reason (nullable)
	Recurrence *string   // availability_blocks.recurrence (nullable)
	CreatedBy  uint64    // availability_blocks.created_by
	CreatedAt  time.Time // availability_blocks.created_at
}
