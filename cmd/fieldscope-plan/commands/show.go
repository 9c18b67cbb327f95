package commands

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/fieldscope/fieldscope-go/pkg/envelope"
	"github.com/fieldscope/fieldscope-go/pkg/plan"
)

// RunShow runs the show command.
func RunShow(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: fieldscope-plan show <file>")
	}
	if err := fs.Parse(args); err != nil {
		return exitCommandError
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "Error: expected exactly one plan file")
		fs.Usage()
		return exitCommandError
	}

	p, err := plan.LoadPlan(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	report, err := envelope.Evaluate(p.Requirement, p.Devices)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	printPlan(stdout, p, report)
	return exitSuccess
}

func printPlan(w io.Writer, p *plan.Plan, report *envelope.Report) {
	fmt.Fprintf(w, "Plan: %s\n", p.Name)
	if p.Description != "" {
		fmt.Fprintf(w, "  %s\n", p.Description)
	}

	fmt.Fprintln(w, "Requirement:")
	fmt.Fprintf(w, "  distance %s\n", p.Requirement.Distance)
	fmt.Fprintf(w, "  light    %s\n", p.Requirement.Light)

	fmt.Fprintf(w, "Devices (%d):\n", len(p.Devices))
	for _, d := range p.Devices {
		fmt.Fprintf(w, "  %-16s distance %-12s light %s\n", d.ID, d.Distance.String(), d.Light)
	}

	fmt.Fprintf(w, "Light segments (%d):\n", len(report.Segments))
	for _, seg := range report.Segments {
		active := "none"
		if len(seg.ActiveDevices) > 0 {
			active = strings.Join(seg.ActiveDevices, ", ")
		}
		status := "covered"
		if !seg.Covered {
			status = "GAP"
		}
		fmt.Fprintf(w, "  %-14s %-8s active: %s\n", seg.Light.String(), status, active)
	}
}
