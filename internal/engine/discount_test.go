package engine

import (
	"testing"
	"time"

	"github.com/iliyamo/speaker-engagement/internal/model"
)

func tier(id uint64, days uint32, pctVal uint8, priority int32) model.DiscountTier {
	return model.DiscountTier{
		ID:              id,
		EventID:         1,
		DaysBeforeEvent: days,
		Percentage:      pctVal,
		Priority:        priority,
		IsActive:        true,
	}
}

func TestDaysBefore(t *testing.T) {
	start := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		reg  time.Time
		want int64
	}{
		{"exact days", start.AddDate(0, 0, -30), 30},
		{"partial day rounds up", start.Add(-29*24*time.Hour - 12*time.Hour), 30},
		{"same instant", start, 0},
		{"after start", start.Add(24 * time.Hour), -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DaysBefore(tc.reg, start); got != tc.want {
				t.Fatalf("DaysBefore = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestResolveTierPriorityNeedsEligibility(t *testing.T) {
	tiers := []model.DiscountTier{
		tier(1, 30, 10, 1),
		tier(2, 60, 5, 2),
	}
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	// 45 days out: only the low-priority tier qualifies (45 >= 30,
	// 45 < 60), so it wins despite the lower priority.
	got := ResolveTier(tiers, start.AddDate(0, 0, -45), start)
	if got == nil || got.ID != 1 {
		t.Fatalf("45 days out: got %+v, want tier 1", got)
	}

	// 90 days out: both qualify and priority decides.
	got = ResolveTier(tiers, start.AddDate(0, 0, -90), start)
	if got == nil || got.ID != 2 {
		t.Fatalf("90 days out: got %+v, want tier 2", got)
	}
}

func TestResolveTierEqualPriorityDeepestWins(t *testing.T) {
	tiers := []model.DiscountTier{
		tier(1, 15, 5, 1),
		tier(2, 60, 20, 1),
		tier(3, 30, 10, 1),
	}
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	// all three qualify; the largest qualifying threshold is the
	// deepest earned tier.
	got := ResolveTier(tiers, start.AddDate(0, 0, -90), start)
	if got == nil || got.ID != 2 {
		t.Fatalf("got %+v, want tier 2", got)
	}

	// 40 days out drops the 60-day tier.
	got = ResolveTier(tiers, start.AddDate(0, 0, -40), start)
	if got == nil || got.ID != 3 {
		t.Fatalf("got %+v, want tier 3", got)
	}
}

func TestResolveTierSkipsInactiveAndLateRegistrations(t *testing.T) {
	inactive := tier(1, 10, 10, 5)
	inactive.IsActive = false
	tiers := []model.DiscountTier{inactive, tier(2, 30, 5, 1)}
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	got := ResolveTier(tiers, start.AddDate(0, 0, -40), start)
	if got == nil || got.ID != 2 {
		t.Fatalf("got %+v, want tier 2 (inactive skipped)", got)
	}

	if got := ResolveTier(tiers, start.AddDate(0, 0, -5), start); got != nil {
		t.Fatalf("late registration: got %+v, want nil", got)
	}
	if got := ResolveTier(nil, start.AddDate(0, 0, -40), start); got != nil {
		t.Fatalf("no tiers: got %+v, want nil", got)
	}
}
