// Package api provides HTTP API handlers for the fieldscope coverage
// validation service.
package api

import "time"

// Check represents a stored coverage check in API responses.
type Check struct {
	ID           string    `json:"id"`
	PlanName     string    `json:"plan_name"`
	Covered      bool      `json:"covered"`
	DeviceCount  int       `json:"device_count"`
	SegmentCount int       `json:"segment_count"`
	DurationUS   int64     `json:"duration_us"`
	CreatedAt    time.Time `json:"created_at"`
	Segments     []Segment `json:"segments,omitempty"`
}

// Segment represents one light segment of a check result.
type Segment struct {
	LightLo       float64  `json:"light_lo"`
	LightHi       float64  `json:"light_hi"`
	ActiveDevices []string `json:"active_devices,omitempty"`
	Covered       bool     `json:"covered"`
}

// CheckListResponse is the response for GET /api/v1/checks.
type CheckListResponse struct {
	Checks []Check `json:"checks"`
	Total  int     `json:"total"`
}

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
