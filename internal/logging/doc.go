// Package logging assembles structured slog loggers and formatting helpers used
// across the scanner.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so provider and scan code can
// automatically tag log lines with scan IDs, ROM names, platforms and
// providers. The package also provides a no-op logger for tests and wiring
// code that cannot fail, plus log-file retention.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits data with the same shape.
package logging
