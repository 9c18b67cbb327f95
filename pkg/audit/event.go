package audit

import "time"

// Event records a single coverage check.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the check completed (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// CheckID uniquely identifies the check (UUID).
	CheckID string `cbor:"2,keyasint"`

	// PlanName is the name of the checked plan.
	PlanName string `cbor:"3,keyasint"`

	// Outcome is the check verdict.
	Outcome Outcome `cbor:"4,keyasint"`

	// DeviceCount is the number of devices in the plan.
	DeviceCount int `cbor:"5,keyasint"`

	// SegmentCount is the number of light segments evaluated.
	SegmentCount int `cbor:"6,keyasint"`

	// FailedBands lists the light bands that failed distance coverage.
	FailedBands []Band `cbor:"7,keyasint,omitempty"`

	// DurationUS is the check duration in microseconds.
	DurationUS int64 `cbor:"8,keyasint,omitempty"`

	// Error holds the validation error message for OutcomeInvalid.
	Error string `cbor:"9,keyasint,omitempty"`
}

// Band is a closed light range in an audit event.
type Band struct {
	Lo float64 `cbor:"1,keyasint"`
	Hi float64 `cbor:"2,keyasint"`
}

// Outcome is the verdict of a coverage check.
type Outcome uint8

const (
	// OutcomeCovered means the device set covers the full requirement.
	OutcomeCovered Outcome = 0
	// OutcomeUncovered means at least one light segment has a distance gap.
	OutcomeUncovered Outcome = 1
	// OutcomeInvalid means the inputs failed validation.
	OutcomeInvalid Outcome = 2
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeCovered:
		return "COVERED"
	case OutcomeUncovered:
		return "UNCOVERED"
	case OutcomeInvalid:
		return "INVALID"
	default:
		return "UNKNOWN"
	}
}
