package model

import "time"

// DiscountTier is an early-bird discount rule owned by an event.  A
// registration qualifies for the tier when it happens at least
// DaysBeforeEvent days ahead of the event start.  Several tiers may
// qualify at once; the resolver picks exactly one winner by priority,
// tiers are never stacked.
//
// Fields:
//  ID              – primary key identifier.
//  EventID         – owning event.
//  DaysBeforeEvent – minimum days of advance notice (>= 1).
//  Percentage      – discount percentage, 0–100.
//  Priority        – administrative priority; higher wins.
//  IsActive        – inactive tiers are never eligible.
//  AutoApply       – whether the tier applies without an explicit code.
type DiscountTier struct {
	ID              uint64    // discount_tiers.id
	EventID         uint64    // discount_tiers.event_id
	DaysBeforeEvent uint32    // discount_tiers.days_before_event
	Percentage      uint8     // discount_tiers.percentage
	Priority        int32     // discount_tiers.priority
	IsActive        bool      // discount_tiers.is_active
	AutoApply       bool      // discount_tiers.auto_apply
	CreatedAt       time.Time // discount_tiers.created_at
}
