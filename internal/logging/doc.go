// Package logging assembles structured slog loggers and formatting helpers used
// across moviedb.
//
// It owns the console/JSON handlers, centralizes level and output plumbing, and
// exposes context-aware helpers so lookup code can tag log lines with request
// IDs, query attributes, and result provenance. The package also provides a
// no-op logger for tests and wiring code that cannot fail.
package logging
