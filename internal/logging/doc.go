// Package logging assembles structured slog loggers and formatting helpers used
// across nvimcmd.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so the session and driver code
// can tag log lines with the invocation's correlation ID. Console output is
// colorized only when it goes to a terminal. The package also provides a no-op
// logger for tests and wiring code that cannot fail.
package logging
