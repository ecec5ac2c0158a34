// Package logging constructs the slog loggers used across epsync and provides
// shared attribute helpers so log field names stay consistent. Diagnostics go
// through slog; the reconcile contract lines (MOVE/SKIP/...) are written to
// stdout directly and never pass through this package.
package logging
