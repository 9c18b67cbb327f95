package envelope

import (
	"errors"
	"testing"
)

func TestEvaluateCoveredPlan(t *testing.T) {
	req := Requirement{Distance: Interval{1, 10}, Light: Interval{10, 1000}}
	devices := []Device{
		{ID: "cam1", Distance: Interval{1, 5}, Light: Interval{10, 1000}},
		{ID: "cam2", Distance: Interval{4, 10}, Light: Interval{10, 1000}},
	}

	report, err := Evaluate(req, devices)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !report.Covered {
		t.Error("expected covered report")
	}
	if len(report.Segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(report.Segments))
	}

	seg := report.Segments[0]
	if seg.Light != (Interval{10, 1000}) {
		t.Errorf("segment light = %v, want [10, 1000]", seg.Light)
	}
	if len(seg.ActiveDevices) != 2 {
		t.Errorf("expected 2 active devices, got %v", seg.ActiveDevices)
	}
	if len(report.FailedSegments()) != 0 {
		t.Errorf("expected no failed segments, got %v", report.FailedSegments())
	}
}

func TestEvaluateReportsFailingLightBand(t *testing.T) {
	req := Requirement{Distance: Interval{1, 15}, Light: Interval{5, 2000}}
	devices := []Device{
		{ID: "lowLightCam", Distance: Interval{1, 8}, Light: Interval{5, 500}},
		{ID: "midRangeCam", Distance: Interval{3, 12}, Light: Interval{100, 1500}},
		{ID: "brightLightCam", Distance: Interval{5, 15}, Light: Interval{800, 2000}},
	}

	report, err := Evaluate(req, devices)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Covered {
		t.Error("expected uncovered report")
	}

	// Boundaries: 5, 100, 500, 800, 1500, 2000 -> 5 segments.
	if len(report.Segments) != 5 {
		t.Fatalf("expected 5 segments, got %d", len(report.Segments))
	}

	failed := report.FailedSegments()
	if len(failed) == 0 {
		t.Fatal("expected at least one failed segment")
	}

	// The 500-800 band has only midRangeCam ([3,12]), which cannot
	// reach distance 15. The 5-100 band has only lowLightCam ([1,8]).
	foundMidOnly := false
	for _, seg := range failed {
		if seg.Light == (Interval{500, 800}) {
			foundMidOnly = true
			if len(seg.ActiveDevices) != 1 || seg.ActiveDevices[0] != "midRangeCam" {
				t.Errorf("segment %v active devices = %v, want [midRangeCam]", seg.Light, seg.ActiveDevices)
			}
		}
	}
	if !foundMidOnly {
		t.Errorf("expected 500-800 band among failed segments, got %v", failed)
	}
}

func TestEvaluateNoCandidates(t *testing.T) {
	req := Requirement{Distance: Interval{1, 10}, Light: Interval{10, 100}}
	devices := []Device{
		{ID: "ir", Distance: Interval{0, 20}, Light: Interval{200, 500}},
	}

	report, err := Evaluate(req, devices)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Covered {
		t.Error("expected uncovered report with no candidates")
	}
	if len(report.Segments) != 0 {
		t.Errorf("expected no segments, got %v", report.Segments)
	}
}

func TestEvaluatePointLightRequirement(t *testing.T) {
	req := Requirement{Distance: Interval{1, 10}, Light: Interval{500, 500}}
	devices := []Device{
		{ID: "a", Distance: Interval{1, 4}, Light: Interval{100, 900}},
		{ID: "b", Distance: Interval{6, 10}, Light: Interval{100, 900}},
	}

	report, err := Evaluate(req, devices)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Covered {
		t.Error("distance gap at the light point should fail")
	}
	if len(report.Segments) != 1 {
		t.Fatalf("expected 1 point segment, got %d", len(report.Segments))
	}
	if !report.Segments[0].Light.IsPoint() {
		t.Errorf("segment light = %v, want zero-width", report.Segments[0].Light)
	}
}

func TestEvaluateAgreesWithCoversRequirement(t *testing.T) {
	cases := []struct {
		req     Requirement
		devices []Device
	}{
		{
			req: Requirement{Distance: Interval{1, 10}, Light: Interval{10, 1000}},
			devices: []Device{
				{ID: "cam1", Distance: Interval{1, 5}, Light: Interval{10, 1000}},
				{ID: "cam2", Distance: Interval{4, 10}, Light: Interval{10, 1000}},
			},
		},
		{
			req: Requirement{Distance: Interval{1, 15}, Light: Interval{5, 2000}},
			devices: []Device{
				{ID: "lowLightCam", Distance: Interval{1, 8}, Light: Interval{5, 500}},
				{ID: "midRangeCam", Distance: Interval{3, 12}, Light: Interval{100, 1500}},
				{ID: "brightLightCam", Distance: Interval{5, 15}, Light: Interval{800, 2000}},
			},
		},
		{
			req:     Requirement{Distance: Interval{1, 10}, Light: Interval{10, 1000}},
			devices: nil,
		},
	}

	for i, tc := range cases {
		covered, err := CoversRequirement(tc.req, tc.devices)
		if err != nil {
			t.Fatalf("case %d: unexpected error: %v", i, err)
		}
		report, err := Evaluate(tc.req, tc.devices)
		if err != nil {
			t.Fatalf("case %d: unexpected error: %v", i, err)
		}
		if report.Covered != covered {
			t.Errorf("case %d: Evaluate.Covered = %v, CoversRequirement = %v", i, report.Covered, covered)
		}
	}
}

func TestEvaluateInvalidInput(t *testing.T) {
	var invalid *InvalidIntervalError

	_, err := Evaluate(
		Requirement{Distance: Interval{1, 10}, Light: Interval{1000, 10}},
		nil,
	)
	if !errors.As(err, &invalid) {
		t.Errorf("inverted requirement light: expected *InvalidIntervalError, got %v", err)
	}
}
