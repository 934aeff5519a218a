// Package diagfmt renders a diag.Bag to a terminal, following spec.md §7's
// stable message format: "<SEVERITY> <CODE>, <message>" with a line-number
// insert, then a backtrace of enclosing aggregate names when present.
package diagfmt

// Options configures Pretty.
type Options struct {
	// Color enables ANSI coloring via github.com/fatih/color. Callers decide
	// this from golang.org/x/term.IsTerminal, matching cmd/sdlc's main.go.
	Color bool
	// ShowNotes renders each diagnostic's secondary notes.
	ShowNotes bool
}
