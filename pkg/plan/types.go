// Package plan loads coverage plan files for fieldscope.
//
// A plan file is a YAML document naming the required operating envelope
// and the candidate devices:
//
//	name: warehouse-entrance
//	description: Entrance corridor, day and night operation
//	requirement:
//	  distance: {min: 1, max: 10}
//	  light: {min: 10, max: 1000}
//	devices:
//	  - id: cam1
//	    distance: {min: 1, max: 5}
//	    light: {min: 10, max: 1000}
//	  - id: cam2
//	    distance: {min: 4, max: 10}
//	    light: {min: 10, max: 1000}
//
// Interval bounds are validated on load; a plan with min > max anywhere
// fails with a LoadError wrapping envelope.InvalidIntervalError.
package plan

import (
	"fmt"

	"github.com/fieldscope/fieldscope-go/pkg/envelope"
)

// Plan is a validated coverage plan: the requirement rectangle plus the
// proposed device set.
type Plan struct {
	// Name is the unique plan identifier.
	Name string

	// Description explains what the plan covers.
	Description string

	// Requirement is the envelope that must be fully covered.
	Requirement envelope.Requirement

	// Devices are the proposed hardware units. May be empty; an empty
	// plan is loadable but can never be covered.
	Devices []envelope.Device
}

// LoadError describes a failure to load or validate a plan file.
type LoadError struct {
	// File is the path of the file that failed to load, if known.
	File string

	// Message describes what went wrong.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.File != "" {
		msg = fmt.Sprintf("%s: %s", e.File, msg)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// planDoc mirrors the YAML document structure before validation.
type planDoc struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Requirement reqSpec     `yaml:"requirement"`
	Devices     []deviceDoc `yaml:"devices"`
}

type reqSpec struct {
	Distance *rangeSpec `yaml:"distance"`
	Light    *rangeSpec `yaml:"light"`
}

type deviceDoc struct {
	ID       string     `yaml:"id"`
	Distance *rangeSpec `yaml:"distance"`
	Light    *rangeSpec `yaml:"light"`
}

type rangeSpec struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

func (r *rangeSpec) interval(field string) (envelope.Interval, error) {
	if r == nil {
		return envelope.Interval{}, &LoadError{Message: fmt.Sprintf("%s range is required", field)}
	}
	iv, err := envelope.NewInterval(r.Min, r.Max)
	if err != nil {
		return envelope.Interval{}, &LoadError{
			Message: fmt.Sprintf("invalid %s range", field),
			Cause:   err,
		}
	}
	return iv, nil
}
