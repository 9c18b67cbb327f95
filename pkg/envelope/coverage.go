package envelope

import "sort"

// CoversDistanceRange reports whether the union of spans contains target
// with no gap. It returns an *InvalidIntervalError (wrapped) if target or
// any span has inverted bounds. An empty span set never covers anything,
// including a zero-width target: no interval is available to certify the
// point.
func CoversDistanceRange(target Interval, spans []Interval) (bool, error) {
	if !target.Valid() {
		return false, &InvalidIntervalError{Lo: target.Lo, Hi: target.Hi}
	}
	for _, s := range spans {
		if !s.Valid() {
			return false, &InvalidIntervalError{Lo: s.Lo, Hi: s.Hi}
		}
	}
	return coversDistance(target, spans), nil
}

// coversDistance runs the greedy sweep over validated intervals.
// The input slice is not mutated; sorting happens on a copy.
func coversDistance(target Interval, spans []Interval) bool {
	if len(spans) == 0 {
		return false
	}

	sorted := make([]Interval, len(spans))
	copy(sorted, spans)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Lo < sorted[j].Lo
	})

	coveredUpTo := target.Lo
	for _, s := range sorted {
		if s.Lo > coveredUpTo {
			// Gap before this span. Every later span starts at or after
			// s.Lo, so nothing can close it.
			return false
		}
		if s.Hi > coveredUpTo {
			coveredUpTo = s.Hi
		}
		if coveredUpTo >= target.Hi {
			return true
		}
	}
	return false
}

// CoversRequirement reports whether the union of device envelopes covers
// the full requirement rectangle. It returns an *InvalidIntervalError
// (wrapped) if any interval has inverted bounds.
func CoversRequirement(req Requirement, devices []Device) (bool, error) {
	if err := validateRequirement(req); err != nil {
		return false, err
	}
	if err := validateDevices(devices); err != nil {
		return false, err
	}

	candidates := filterByLight(req.Light, devices)
	if len(candidates) == 0 {
		return false, nil
	}

	// A zero-width light requirement yields no segments; check the active
	// set at the single light value instead of passing vacuously.
	if req.Light.IsPoint() {
		return coversDistance(req.Distance, activeSpans(candidates, req.Light.Lo)), nil
	}

	bounds := lightBoundaries(req.Light, candidates)
	for i := 0; i+1 < len(bounds); i++ {
		mid := (bounds[i] + bounds[i+1]) / 2
		if !coversDistance(req.Distance, activeSpans(candidates, mid)) {
			return false, nil
		}
	}
	return true, nil
}

// filterByLight drops devices whose light interval does not intersect the
// required light interval. The surviving devices are the only candidates
// any light segment can draw from.
func filterByLight(light Interval, devices []Device) []Device {
	var out []Device
	for _, d := range devices {
		if d.Light.Overlaps(light) {
			out = append(out, d)
		}
	}
	return out
}

// lightBoundaries returns the ascending, deduplicated light values at which
// the active-device set can change: the requirement's light endpoints plus
// every device light endpoint strictly inside the requirement's light
// interval. The active set is constant on the open segment between two
// adjacent boundaries.
func lightBoundaries(light Interval, devices []Device) []float64 {
	bounds := []float64{light.Lo, light.Hi}
	for _, d := range devices {
		if light.Lo < d.Light.Lo && d.Light.Lo < light.Hi {
			bounds = append(bounds, d.Light.Lo)
		}
		if light.Lo < d.Light.Hi && d.Light.Hi < light.Hi {
			bounds = append(bounds, d.Light.Hi)
		}
	}
	sort.Float64s(bounds)

	// Deduplicate by exact equality.
	dedup := bounds[:1]
	for _, b := range bounds[1:] {
		if b != dedup[len(dedup)-1] {
			dedup = append(dedup, b)
		}
	}
	return dedup
}

// activeSpans returns the distance intervals of the devices active at the
// given light level.
func activeSpans(devices []Device, light float64) []Interval {
	var spans []Interval
	for _, d := range devices {
		if d.activeAt(light) {
			spans = append(spans, d.Distance)
		}
	}
	return spans
}
