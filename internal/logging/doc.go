// Package logging assembles structured slog loggers and attribute helpers used
// across reelsmith components.
//
// It centralizes level and output plumbing and exposes component loggers so
// pipeline code tags log lines with job ids and stages consistently. A no-op
// logger is available for tests and wiring code that cannot fail.
package logging
