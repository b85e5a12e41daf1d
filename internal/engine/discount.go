package engine

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/iliyamo/speaker-engagement/internal/model"
)

// DaysBefore returns how many days of advance notice a registration
// gives, as the ceiling of the duration between registration and
// event start.  A registration 29.5 days out counts as 30.
func DaysBefore(registration, eventStart time.Time) int64 {
	return int64(math.Ceil(eventStart.Sub(registration).Hours() / 24))
}

// ResolveTier selects the single applicable discount tier for a
// registration, or nil when none qualifies.  A tier is eligible when
// it is active and the advance notice meets its daysBeforeEvent
// threshold.  Among eligible tiers the highest priority wins
// outright; on equal priority the tier with the largest qualifying
// daysBeforeEvent wins — the deepest discount the registration has
// earned.  Exactly one winner: tiers are never stacked.
func ResolveTier(tiers []model.DiscountTier, registration, eventStart time.Time) *model.DiscountTier {
	notice := DaysBefore(registration, eventStart)
	eligible := make([]model.DiscountTier, 0, len(tiers))
	for _, t := range tiers {
		if t.IsActive && notice >= int64(t.DaysBeforeEvent) {
			eligible = append(eligible, t)
		}
	}
	if len(eligible) == 0 {
		return nil
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		if eligible[i].Priority != eligible[j].Priority {
			return eligible[i].Priority > eligible[j].Priority
		}
		return eligible[i].DaysBeforeEvent > eligible[j].DaysBeforeEvent
	})
	winner := eligible[0]
	return &winner
}

// Discounts resolves discount tiers against the tier store.
type Discounts struct {
	tiers TierStore
}

// NewDiscounts constructs a Discounts service.
func NewDiscounts(tiers TierStore) *Discounts {
	if tiers == nil {
		panic("nil store passed to NewDiscounts")
	}
	return &Discounts{tiers: tiers}
}

// Resolve loads the event's active tiers and picks the applicable
// one for the registration date.  A nil tier with nil error means no
// discount applies.
func (d *Discounts) Resolve(ctx context.Context, eventID uint64, registration, eventStart time.Time) (*model.DiscountTier, error) {
	tiers, err := d.tiers.ListActiveTiers(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return ResolveTier(tiers, registration, eventStart), nil
}
