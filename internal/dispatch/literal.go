package dispatch

import (
	"sdlc/internal/backend"
	"sdlc/internal/diag"
	"sdlc/internal/source"
)

// BeginLiteral opens a verbatim passthrough block (spec.md §4.7): lines
// queued between this call and EndLiteral are handed to every enabled
// backend unchanged, still gated by the conditional state machine.
func (d *Dispatcher) BeginLiteral(span source.Span) error {
	if !d.Cond.ProcessingEnabled() {
		return nil
	}
	if d.literalOpen {
		d.report(diag.InvalidConditionalState, span, "nested literal block")
		return newDispatchError(diag.InvalidConditionalState, "literal")
	}
	d.literalOpen = true
	d.literalBuf = nil
	return nil
}

// LiteralLine queues one verbatim line. A no-op outside an open literal
// block or while processing is disabled.
func (d *Dispatcher) LiteralLine(line string) {
	if !d.literalOpen || !d.Cond.ProcessingEnabled() {
		return
	}
	d.literalBuf = append(d.literalBuf, line)
}

// EndLiteral flushes the queued lines to every enabled backend in order
// and closes the block.
func (d *Dispatcher) EndLiteral(span source.Span) error {
	if !d.Cond.ProcessingEnabled() {
		return nil
	}
	if !d.literalOpen {
		d.report(diag.InvalidConditionalState, span, "end literal without an open block")
		return newDispatchError(diag.InvalidConditionalState, "literal")
	}
	lines := d.literalBuf
	d.literalOpen = false
	d.literalBuf = nil

	for _, line := range lines {
		if err := d.fanout(func(b backend.Backend) error {
			return b.EmitLiteralLine(line, d.enableVector())
		}); err != nil {
			return err
		}
	}
	return nil
}
