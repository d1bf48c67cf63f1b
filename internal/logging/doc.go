// Package logging assembles the structured slog loggers used across
// stockboard.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so command handlers can tag log
// lines with stock IDs, stages, and correlation IDs. A no-op logger is
// provided for tests and wiring code that cannot fail.
package logging
