// Package logging provides structured logging using Go's standard library log/slog.
// It outputs JSON for machine consumption or plain text for command-line diagnostics.
package logging
