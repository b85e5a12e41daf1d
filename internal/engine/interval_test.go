package engine

import (
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2026, time.January, d, 0, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"disjoint", Interval{day(1), day(3)}, Interval{day(5), day(7)}, false},
		{"partial overlap", Interval{day(1), day(5)}, Interval{day(3), day(7)}, true},
		{"containment", Interval{day(1), day(10)}, Interval{day(3), day(5)}, true},
		{"identical", Interval{day(1), day(5)}, Interval{day(1), day(5)}, true},
		{"adjacent half-open", Interval{day(1), day(5)}, Interval{day(5), day(9)}, false},
		{"one instant apart", Interval{day(1), day(5)}, Interval{day(5).Add(time.Nanosecond), day(9)}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.a, tc.b); got != tc.want {
				t.Fatalf("Overlaps(a,b) = %v, want %v", got, tc.want)
			}
			// symmetry
			if got := Overlaps(tc.b, tc.a); got != tc.want {
				t.Fatalf("Overlaps(b,a) = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestOverlapsSelf(t *testing.T) {
	iv := Interval{day(2), day(4)}
	if !Overlaps(iv, iv) {
		t.Fatal("a non-degenerate interval must overlap itself")
	}
}

func TestIntervalValidate(t *testing.T) {
	if err := (Interval{day(1), day(2)}).Validate(); err != nil {
		t.Fatalf("valid interval rejected: %v", err)
	}
	if err := (Interval{day(2), day(2)}).Validate(); !IsKind(err, KindInvalidInterval) {
		t.Fatalf("empty interval: got %v, want InvalidInterval", err)
	}
	if err := (Interval{day(3), day(2)}).Validate(); !IsKind(err, KindInvalidInterval) {
		t.Fatalf("inverted interval: got %v, want InvalidInterval", err)
	}
}
