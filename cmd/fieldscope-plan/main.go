// fieldscope-plan is a CLI tool for checking coverage plans against their
// required operating envelopes.
package main

import (
	"fmt"
	"os"

	"github.com/fieldscope/fieldscope-go/cmd/fieldscope-plan/commands"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
	exitUncovered    = 2
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(exitCommandError)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var exitCode int
	switch cmd {
	case "check":
		exitCode = commands.RunCheck(args, os.Stdout, os.Stderr)
	case "show":
		exitCode = commands.RunShow(args, os.Stdout, os.Stderr)
	case "probe":
		exitCode = commands.RunProbe(args, os.Stdout, os.Stderr)
	case "log":
		exitCode = commands.RunLog(args, os.Stdout, os.Stderr)
	case "help", "-h", "--help":
		printUsage()
		exitCode = exitSuccess
	case "version", "-v", "--version":
		fmt.Println("fieldscope-plan version 0.1.0")
		exitCode = exitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		exitCode = exitCommandError
	}

	os.Exit(exitCode)
}

func printUsage() {
	fmt.Println(`fieldscope-plan - coverage plan checking tool

Usage:
  fieldscope-plan <command> [options] [files...]

Commands:
  check      Check plan files against their required envelopes
  show       Display a plan's devices, light boundaries and segments
  probe      Interactively query coverage at specific light levels
  log        View an audit log of past checks

Options:
  -h, --help     Show this help message
  -v, --version  Show version information

Examples:
  fieldscope-plan check warehouse.yaml
  fieldscope-plan check --json --audit checks.flog plans/*.yaml
  fieldscope-plan show warehouse.yaml
  fieldscope-plan probe warehouse.yaml
  fieldscope-plan log checks.flog

For command-specific help, run:
  fieldscope-plan <command> --help`)
}
