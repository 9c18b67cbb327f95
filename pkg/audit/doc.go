// Package audit provides an append-only event log of coverage checks.
//
// Every check a tool performs can be recorded as an Event: which plan was
// checked, the verdict, and the light bands that failed. Events are
// CBOR-encoded with integer keys for compactness; the fieldscope-plan CLI
// reads log files back with the log subcommand.
//
// Logging never disrupts the check itself: FileLogger swallows encoding
// errors and is safe for concurrent use.
package audit
