package dispatch

import (
	"sdlc/internal/source"
	"sdlc/internal/symbols"
)

// DeclareDimension registers a named dimension record (spec.md §3 Symbol &
// Dimension tables), later selected by an item or member's Dimension
// option (spec.md line 145). Unlike Declare/Item/Enum it has no backend
// surface of its own: it only populates the symbol table an item's
// buildItem consults.
func (d *Dispatcher) DeclareDimension(name string, lower, upper int64, span source.Span) error {
	if !d.Cond.ProcessingEnabled() {
		return nil
	}
	d.Symbols.DefineDimension(name, symbols.Dimension{Lower: lower, Upper: upper})
	return nil
}
