// Command fieldscope-web provides an HTTP validation service for coverage
// plans.
//
// It offers:
//   - REST API for submitting plans and browsing past checks
//   - SQLite persistence for check history
//   - Optional CBOR audit log of every check
//
// Usage:
//
//	fieldscope-web [flags]
//
// Flags:
//
//	-port int      HTTP server port (default 8080)
//	-db string     SQLite database path (default "./fieldscope-web.db")
//	-audit string  Audit log file path (disabled when empty)
//
// Examples:
//
//	# Start the service on the default port
//	fieldscope-web
//
//	# Use an in-memory database (for testing)
//	fieldscope-web -db :memory:
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
)

// Version information - set at build time via ldflags
var (
	Version   = "0.1.0"
	BuildDate = "dev"
	GitCommit = "unknown"
)

var (
	port        = flag.Int("port", 8080, "HTTP server port")
	dbPath      = flag.String("db", "./fieldscope-web.db", "SQLite database path")
	auditPath   = flag.String("audit", "", "Audit log file path (disabled when empty)")
	showVersion = flag.Bool("version", false, "Show version information")
)

func main() {
	os.Exit(run())
}

func run() int {
	flag.Parse()

	if *showVersion {
		fmt.Printf("fieldscope-web %s (built %s, commit %s)\n", Version, BuildDate, GitCommit)
		return 0
	}

	cfg := ServerConfig{
		Port:      *port,
		DBPath:    *dbPath,
		AuditPath: *auditPath,
		Version:   Version,
	}

	srv, err := NewServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create server: %v\n", err)
		return 1
	}
	defer srv.Close()

	log.Printf("Starting fieldscope-web on http://localhost:%d", *port)
	log.Printf("Database: %s", *dbPath)
	if *auditPath != "" {
		log.Printf("Audit log: %s", *auditPath)
	}

	if err := srv.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: server failed: %v\n", err)
		return 1
	}

	return 0
}
