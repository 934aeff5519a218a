// Package diag defines the diagnostic model shared by the dispatcher, the
// layout engine and the CLI: a Diagnostic (severity, code, message, primary
// span, notes, aggregate backtrace) plus a Bag that accumulates them the way
// spec.md §4.9 describes the process-wide message vector.
//
// Rendering lives in internal/diagfmt; diag itself performs no I/O.
package diag
