// Package logging assembles the structured slog loggers used across tagpivot.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context helpers so run code can automatically tag log
// lines with run IDs and stage names. The package also provides a no-op
// logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits data with the same shape.
package logging
