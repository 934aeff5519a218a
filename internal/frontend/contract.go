// Package frontend defines the seam between loaded source text and the
// Directive Dispatcher. spec.md's Non-goals name the lexer/parser an
// external collaborator: internal/dispatch exposes one exported method per
// SDL statement (BeginModule, Item, BeginAggregate, ...) and expects
// something upstream to call them in source order. This package names that
// contract the way internal/backend names the dispatcher's downstream
// contract, without shipping a lexer or parser of its own.
package frontend

import (
	"sdlc/internal/dispatch"
	"sdlc/internal/source"
)

// Driver turns one loaded source file into a sequence of Dispatcher calls.
type Driver interface {
	Run(d *dispatch.Dispatcher, f *source.File) error
}
