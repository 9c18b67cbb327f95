package envelope

// SegmentResult describes distance coverage over one light segment.
type SegmentResult struct {
	// Light is the light band this segment spans. For a zero-width light
	// requirement it is the single point.
	Light Interval

	// ActiveDevices lists the IDs of the devices active on this segment,
	// in input order.
	ActiveDevices []string

	// Covered reports whether the active devices cover the full distance
	// requirement on this segment.
	Covered bool
}

// Report contains the outcome of a requirement evaluation with
// per-segment diagnostics.
type Report struct {
	Requirement Requirement

	// Covered is true if every light segment passed distance coverage.
	Covered bool

	// Segments holds one result per light segment, in ascending light
	// order. Empty when no device survives the light pre-filter.
	Segments []SegmentResult
}

// FailedSegments returns the segments that failed distance coverage.
func (r *Report) FailedSegments() []SegmentResult {
	var failed []SegmentResult
	for _, s := range r.Segments {
		if !s.Covered {
			failed = append(failed, s)
		}
	}
	return failed
}

// Evaluate runs the same decision as CoversRequirement but reports the
// outcome of every light segment instead of stopping at the first gap.
// It returns an *InvalidIntervalError (wrapped) if any interval has
// inverted bounds.
func Evaluate(req Requirement, devices []Device) (*Report, error) {
	if err := validateRequirement(req); err != nil {
		return nil, err
	}
	if err := validateDevices(devices); err != nil {
		return nil, err
	}

	report := &Report{Requirement: req}

	candidates := filterByLight(req.Light, devices)
	if len(candidates) == 0 {
		return report, nil
	}

	if req.Light.IsPoint() {
		report.Segments = []SegmentResult{evaluateSegment(req, candidates, req.Light, req.Light.Lo)}
		report.Covered = report.Segments[0].Covered
		return report, nil
	}

	bounds := lightBoundaries(req.Light, candidates)
	report.Covered = true
	for i := 0; i+1 < len(bounds); i++ {
		band := Interval{Lo: bounds[i], Hi: bounds[i+1]}
		seg := evaluateSegment(req, candidates, band, (band.Lo+band.Hi)/2)
		if !seg.Covered {
			report.Covered = false
		}
		report.Segments = append(report.Segments, seg)
	}
	return report, nil
}

func evaluateSegment(req Requirement, candidates []Device, band Interval, sample float64) SegmentResult {
	seg := SegmentResult{Light: band}
	var spans []Interval
	for _, d := range candidates {
		if d.activeAt(sample) {
			seg.ActiveDevices = append(seg.ActiveDevices, d.ID)
			spans = append(spans, d.Distance)
		}
	}
	seg.Covered = coversDistance(req.Distance, spans)
	return seg
}
