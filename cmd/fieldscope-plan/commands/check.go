// Package commands implements the fieldscope-plan CLI commands.
package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fieldscope/fieldscope-go/pkg/audit"
	"github.com/fieldscope/fieldscope-go/pkg/envelope"
	"github.com/fieldscope/fieldscope-go/pkg/plan"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
	exitUncovered    = 2
)

// CheckOptions configures the check command.
type CheckOptions struct {
	JSON      bool
	Verbose   bool
	AuditPath string
	Files     []string
}

// CheckOutput represents the check result for one plan file.
type CheckOutput struct {
	Plan     string          `json:"plan"`
	Covered  bool            `json:"covered"`
	Segments []SegmentOutput `json:"segments,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// SegmentOutput represents one light segment in check output.
type SegmentOutput struct {
	LightLo       float64  `json:"light_lo"`
	LightHi       float64  `json:"light_hi"`
	ActiveDevices []string `json:"active_devices,omitempty"`
	Covered       bool     `json:"covered"`
}

// RunCheck runs the check command.
func RunCheck(args []string, stdout, stderr io.Writer) int {
	opts, err := parseCheckArgs(args, stderr)
	if err != nil {
		return exitCommandError
	}

	if len(opts.Files) == 0 {
		fmt.Fprintln(stderr, "Error: no plan files specified")
		printCheckUsage(stderr)
		return exitCommandError
	}

	var logger audit.Logger = audit.NoopLogger{}
	if opts.AuditPath != "" {
		fl, err := audit.NewFileLogger(opts.AuditPath)
		if err != nil {
			fmt.Fprintf(stderr, "Error: failed to open audit log: %v\n", err)
			return exitCommandError
		}
		defer fl.Close()
		logger = fl
	}

	allCovered := true
	results := make(map[string]*CheckOutput)

	for _, file := range opts.Files {
		result := checkFile(file, logger)
		results[file] = result

		if !result.Covered {
			allCovered = false
		}

		if !opts.JSON {
			printCheckResult(stdout, file, result, opts.Verbose)
		}
	}

	if opts.JSON {
		output, _ := json.MarshalIndent(results, "", "  ")
		fmt.Fprintln(stdout, string(output))
	}

	if !allCovered {
		return exitUncovered
	}
	return exitSuccess
}

func parseCheckArgs(args []string, stderr io.Writer) (*CheckOptions, error) {
	opts := &CheckOptions{}

	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&opts.JSON, "json", false, "output results as JSON")
	fs.BoolVar(&opts.Verbose, "verbose", false, "show every segment, not only failing ones")
	fs.StringVar(&opts.AuditPath, "audit", "", "append check events to this audit log file")
	fs.Usage = func() { printCheckUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	opts.Files = fs.Args()
	return opts, nil
}

func checkFile(file string, logger audit.Logger) *CheckOutput {
	start := time.Now()

	p, err := plan.LoadPlan(file)
	if err != nil {
		logger.Log(audit.Event{
			Timestamp: time.Now().UTC(),
			CheckID:   uuid.NewString(),
			Outcome:   audit.OutcomeInvalid,
			Error:     err.Error(),
		})
		return &CheckOutput{Plan: file, Error: err.Error()}
	}

	report, err := envelope.Evaluate(p.Requirement, p.Devices)
	if err != nil {
		// Plans validate intervals on load, so this only fires for
		// callers constructing plans programmatically.
		logger.Log(audit.Event{
			Timestamp: time.Now().UTC(),
			CheckID:   uuid.NewString(),
			PlanName:  p.Name,
			Outcome:   audit.OutcomeInvalid,
			Error:     err.Error(),
		})
		return &CheckOutput{Plan: p.Name, Error: err.Error()}
	}

	logger.Log(newCheckEvent(p, report, time.Since(start)))

	out := &CheckOutput{Plan: p.Name, Covered: report.Covered}
	for _, seg := range report.Segments {
		out.Segments = append(out.Segments, SegmentOutput{
			LightLo:       seg.Light.Lo,
			LightHi:       seg.Light.Hi,
			ActiveDevices: seg.ActiveDevices,
			Covered:       seg.Covered,
		})
	}
	return out
}

func newCheckEvent(p *plan.Plan, report *envelope.Report, elapsed time.Duration) audit.Event {
	outcome := audit.OutcomeUncovered
	if report.Covered {
		outcome = audit.OutcomeCovered
	}

	event := audit.Event{
		Timestamp:    time.Now().UTC(),
		CheckID:      uuid.NewString(),
		PlanName:     p.Name,
		Outcome:      outcome,
		DeviceCount:  len(p.Devices),
		SegmentCount: len(report.Segments),
		DurationUS:   elapsed.Microseconds(),
	}
	for _, seg := range report.FailedSegments() {
		event.FailedBands = append(event.FailedBands, audit.Band{Lo: seg.Light.Lo, Hi: seg.Light.Hi})
	}
	return event
}

func printCheckResult(w io.Writer, file string, result *CheckOutput, verbose bool) {
	if result.Error != "" {
		fmt.Fprintf(w, "%s: ERROR: %s\n", file, result.Error)
		return
	}

	if result.Covered {
		fmt.Fprintf(w, "%s: %s OK (%d segments)\n", file, result.Plan, len(result.Segments))
	} else {
		fmt.Fprintf(w, "%s: %s UNCOVERED\n", file, result.Plan)
	}

	for _, seg := range result.Segments {
		if seg.Covered && !verbose {
			continue
		}
		status := "covered"
		if !seg.Covered {
			status = "GAP"
		}
		active := "none"
		if len(seg.ActiveDevices) > 0 {
			active = strings.Join(seg.ActiveDevices, ", ")
		}
		fmt.Fprintf(w, "  light [%v, %v]: %s (active: %s)\n", seg.LightLo, seg.LightHi, status, active)
	}
}

func printCheckUsage(w io.Writer) {
	fmt.Fprintln(w, `Usage: fieldscope-plan check [options] <files...>

Options:
  --json           Output results as JSON
  --verbose        Show every light segment, not only failing ones
  --audit <file>   Append check events to this audit log file

Exit codes:
  0 all plans covered
  1 command error
  2 at least one plan uncovered or invalid`)
}
