package commands

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/fieldscope/fieldscope-go/pkg/envelope"
	"github.com/fieldscope/fieldscope-go/pkg/plan"
)

// prober answers interactive coverage queries against a loaded plan.
type prober struct {
	plan *plan.Plan
}

// RunProbe runs the probe command: an interactive shell for querying
// coverage at specific light levels.
func RunProbe(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("probe", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: fieldscope-plan probe <file>")
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

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "probe> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdout:          stdout,
		Stderr:          stderr,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to create readline: %v\n", err)
		return exitCommandError
	}
	defer rl.Close()

	pr := &prober{plan: p}
	pr.printHelp(rl.Stdout())

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(rl.Stdout(), "Exiting...")
			return exitSuccess
		}

		if pr.handleLine(rl.Stdout(), line) {
			return exitSuccess
		}
	}
}

// handleLine processes one input line. It returns true when the shell
// should exit.
func (pr *prober) handleLine(w io.Writer, line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])

	switch cmd {
	case "help", "?":
		pr.printHelp(w)

	case "plan", "p":
		report, err := envelope.Evaluate(pr.plan.Requirement, pr.plan.Devices)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return false
		}
		printPlan(w, pr.plan, report)

	case "devices", "d":
		for _, dev := range pr.plan.Devices {
			fmt.Fprintf(w, "  %-16s distance %-12s light %s\n", dev.ID, dev.Distance.String(), dev.Light)
		}

	case "quit", "exit", "q":
		fmt.Fprintln(w, "Exiting...")
		return true

	default:
		// Anything else is interpreted as a light level.
		light, err := strconv.ParseFloat(cmd, 64)
		if err != nil {
			fmt.Fprintf(w, "Unknown command: %s (type 'help' for commands)\n", cmd)
			return false
		}
		pr.probeLight(w, light)
	}
	return false
}

// probeLight reports which devices are active at the given light level and
// whether they cover the distance requirement there.
func (pr *prober) probeLight(w io.Writer, light float64) {
	if !pr.plan.Requirement.Light.Contains(light) {
		fmt.Fprintf(w, "light %v is outside the required range %s\n", light, pr.plan.Requirement.Light)
	}

	req := envelope.Requirement{
		Distance: pr.plan.Requirement.Distance,
		Light:    envelope.Interval{Lo: light, Hi: light},
	}
	report, err := envelope.Evaluate(req, pr.plan.Devices)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}

	var active []string
	if len(report.Segments) > 0 {
		active = report.Segments[0].ActiveDevices
	}

	if len(active) == 0 {
		fmt.Fprintf(w, "light %v: no active devices\n", light)
		return
	}

	status := "GAP in distance coverage"
	if report.Covered {
		status = fmt.Sprintf("distance %s covered", pr.plan.Requirement.Distance)
	}
	fmt.Fprintf(w, "light %v: active: %s - %s\n", light, strings.Join(active, ", "), status)
}

func (pr *prober) printHelp(w io.Writer) {
	fmt.Fprintf(w, `Probing plan %q
  <number>    - Check distance coverage at that light level
  plan, p     - Show the full plan with light segments
  devices, d  - List devices
  help, ?     - Show this help
  quit, q     - Exit
`, pr.plan.Name)
}
