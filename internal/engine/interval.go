// Package engine implements the speaker engagement lifecycle: interval
// conflict detection, the booking/contract/payment state machines with
// their derived money calculations, and discount-tier resolution.  It
// is a library invoked by the HTTP layer; persistence is abstracted
// behind the store interfaces in stores.go and authentication happens
// upstream — the engine only records the actor ids it is handed.
package engine

import "time"

// Interval is a half-open time window [Start, End).  The exclusive
// end lets adjacent intervals touch without overlapping: a block
// ending at Jan 15 and a booking starting at Jan 15 never conflict.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Validate returns an InvalidInterval error unless End > Start.
func (iv Interval) Validate() error {
	if !iv.End.After(iv.Start) {
		return newError(KindInvalidInterval, "interval end must be after start")
	}
	return nil
}

// Overlaps is the single overlap predicate for half-open intervals:
// [a,b) and [c,d) overlap iff a < d && c < b.  Every conflict check
// in the engine routes through this function.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}
