package envelope

import "fmt"

// Interval is a closed numeric range [Lo, Hi] with invariant Lo <= Hi.
// A zero-width interval (Lo == Hi) is legal and denotes a single point.
type Interval struct {
	Lo float64
	Hi float64
}

// InvalidIntervalError reports an interval whose bounds are inverted
// (Lo > Hi). Malformed intervals are rejected before any computation;
// they are never silently reordered.
type InvalidIntervalError struct {
	Lo float64
	Hi float64
}

func (e *InvalidIntervalError) Error() string {
	return fmt.Sprintf("invalid interval: lo %v > hi %v", e.Lo, e.Hi)
}

// NewInterval constructs an Interval, rejecting inverted bounds.
func NewInterval(lo, hi float64) (Interval, error) {
	if lo > hi {
		return Interval{}, &InvalidIntervalError{Lo: lo, Hi: hi}
	}
	return Interval{Lo: lo, Hi: hi}, nil
}

// Valid reports whether the interval satisfies Lo <= Hi.
func (iv Interval) Valid() bool {
	return iv.Lo <= iv.Hi
}

// Contains reports whether v lies within the closed interval.
func (iv Interval) Contains(v float64) bool {
	return iv.Lo <= v && v <= iv.Hi
}

// Overlaps reports whether the two closed intervals share at least one point.
func (iv Interval) Overlaps(o Interval) bool {
	return iv.Hi >= o.Lo && iv.Lo <= o.Hi
}

// IsPoint reports whether the interval is zero-width.
func (iv Interval) IsPoint() bool {
	return iv.Lo == iv.Hi
}

// Width returns Hi - Lo.
func (iv Interval) Width() float64 {
	return iv.Hi - iv.Lo
}

// String returns the interval in [lo, hi] notation.
func (iv Interval) String() string {
	return fmt.Sprintf("[%v, %v]", iv.Lo, iv.Hi)
}
