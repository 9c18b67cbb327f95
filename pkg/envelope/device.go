package envelope

import "fmt"

// Device is one hardware unit's joint operating envelope: it covers
// Distance, but only while the ambient light level is within Light.
// The ID is opaque and used for diagnostics only.
type Device struct {
	ID       string
	Distance Interval
	Light    Interval
}

// Requirement is the (distance × light) rectangle that must be fully
// covered by the union of device envelopes.
type Requirement struct {
	Distance Interval
	Light    Interval
}

// activeAt reports whether the device operates at the given light level.
func (d Device) activeAt(light float64) bool {
	return d.Light.Contains(light)
}

func validateRequirement(req Requirement) error {
	if !req.Distance.Valid() {
		return fmt.Errorf("requirement distance: %w", &InvalidIntervalError{Lo: req.Distance.Lo, Hi: req.Distance.Hi})
	}
	if !req.Light.Valid() {
		return fmt.Errorf("requirement light: %w", &InvalidIntervalError{Lo: req.Light.Lo, Hi: req.Light.Hi})
	}
	return nil
}

func validateDevices(devices []Device) error {
	for _, d := range devices {
		if !d.Distance.Valid() {
			return fmt.Errorf("device %q distance: %w", d.ID, &InvalidIntervalError{Lo: d.Distance.Lo, Hi: d.Distance.Hi})
		}
		if !d.Light.Valid() {
			return fmt.Errorf("device %q light: %w", d.ID, &InvalidIntervalError{Lo: d.Light.Lo, Hi: d.Light.Hi})
		}
	}
	return nil
}
