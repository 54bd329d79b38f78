// Package diag defines the diagnostic model used when checking grammars.
//
// Grammar problems are never errors for the generator: an undefined
// non-terminal is just a dead branch. Lint passes still surface them as
// Diagnostics so the CLI can warn about grammars that cannot produce what
// their names promise.
//
// A Diagnostic carries a Severity, a numeric Code with a stable GRMxxxx ID,
// a message and a primary Location (grammar name, rule head and production
// index).
// Passes emit through a Reporter; BagReporter collects into a Bag, which
// supports sorting and deduplication for deterministic output.
package diag
