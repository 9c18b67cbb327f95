package commands

import (
	"flag"
	"fmt"
	"io"

	"github.com/fieldscope/fieldscope-go/pkg/audit"
)

// RunLog runs the log command: view audit log files written by check.
func RunLog(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("log", flag.ContinueOnError)
	fs.SetOutput(stderr)
	planName := fs.String("plan", "", "only show events for this plan")
	outcomeName := fs.String("outcome", "", "only show events with this outcome (covered, uncovered, invalid)")
	fs.Usage = func() { printLogUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "Error: expected exactly one log file")
		printLogUsage(stderr)
		return exitCommandError
	}

	filter := audit.Filter{PlanName: *planName}
	if *outcomeName != "" {
		outcome, err := parseOutcome(*outcomeName)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitCommandError
		}
		filter.Outcome = &outcome
	}

	reader, err := audit.NewFilteredReader(fs.Arg(0), filter)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	defer reader.Close()

	count := 0
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Fprintf(stderr, "Error: failed to decode event: %v\n", err)
			return exitCommandError
		}
		formatEvent(stdout, event)
		count++
	}

	fmt.Fprintf(stdout, "%d events\n", count)
	return exitSuccess
}

func parseOutcome(name string) (audit.Outcome, error) {
	switch name {
	case "covered":
		return audit.OutcomeCovered, nil
	case "uncovered":
		return audit.OutcomeUncovered, nil
	case "invalid":
		return audit.OutcomeInvalid, nil
	default:
		return 0, fmt.Errorf("unknown outcome %q", name)
	}
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event audit.Event) {
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	fmt.Fprintf(w, "%s [check:%s] %-9s %s\n", ts, shortenCheckID(event.CheckID), event.Outcome, event.PlanName)

	switch event.Outcome {
	case audit.OutcomeInvalid:
		fmt.Fprintf(w, "  Error: %s\n", event.Error)
	default:
		fmt.Fprintf(w, "  Devices: %d  Segments: %d", event.DeviceCount, event.SegmentCount)
		if event.DurationUS > 0 {
			fmt.Fprintf(w, "  Duration: %dus", event.DurationUS)
		}
		fmt.Fprintln(w)
		for _, band := range event.FailedBands {
			fmt.Fprintf(w, "  Gap at light [%v, %v]\n", band.Lo, band.Hi)
		}
	}
}

// shortenCheckID returns the first 8 characters of the check ID.
func shortenCheckID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func printLogUsage(w io.Writer) {
	fmt.Fprintln(w, `Usage: fieldscope-plan log [options] <file>

Options:
  --plan <name>       Only show events for this plan
  --outcome <name>    Only show events with this outcome (covered, uncovered, invalid)`)
}
