package dispatch

import (
	"sdlc/internal/diag"
	"sdlc/internal/source"
	"sdlc/internal/value"
)

// truthy reports whether a symbol's bound value counts as "true" for
// IFSYMBOL (spec.md §4.1): nonzero for a numeric binding, non-empty for
// a string one.
func truthy(v value.Value) bool {
	if v.Kind == value.KindString {
		return v.Text != ""
	}
	return v.Numeric != 0
}

// lookupSymbol resolves name against the symbol table, reporting
// SymbolNotDefined and treating the condition as false when missing
// (spec.md §4.1, §7).
func (d *Dispatcher) lookupSymbol(name string, span source.Span) bool {
	v, ok := d.Symbols.Condition(name)
	if !ok {
		d.report(diag.SymbolNotDefined, span, name)
		return false
	}
	return truthy(v)
}

// IfSymbol handles the IFSYMBOL directive.
func (d *Dispatcher) IfSymbol(name string, span source.Span) error {
	cond := d.lookupSymbol(name, span)
	if err := d.Cond.IfSymbol(cond); err != nil {
		d.report(diag.InvalidConditionalState, span, err.Error())
		return newDispatchError(diag.InvalidConditionalState, "IFSYMBOL")
	}
	return nil
}

// ElseIfSymbol handles the ELSEIFSYMBOL directive.
func (d *Dispatcher) ElseIfSymbol(name string, span source.Span) error {
	cond := d.lookupSymbol(name, span)
	if err := d.Cond.ElseIfSymbol(cond); err != nil {
		d.report(diag.InvalidConditionalState, span, err.Error())
		return newDispatchError(diag.InvalidConditionalState, "ELSEIFSYMBOL")
	}
	return nil
}

// Else handles the ELSE directive, dispatching to whichever conditional
// family is innermost.
func (d *Dispatcher) Else(span source.Span) error {
	if err := d.Cond.Else(); err != nil {
		d.report(diag.InvalidConditionalState, span, err.Error())
		return newDispatchError(diag.InvalidConditionalState, "ELSE")
	}
	return nil
}

// EndIfSymbol handles the ENDIFSYMBOL directive.
func (d *Dispatcher) EndIfSymbol(span source.Span) error {
	if err := d.Cond.EndIfSymbol(); err != nil {
		d.report(diag.InvalidConditionalState, span, err.Error())
		return newDispatchError(diag.InvalidConditionalState, "ENDIFSYMBOL")
	}
	return nil
}

// IfLanguage handles the IFLANGUAGE directive.
func (d *Dispatcher) IfLanguage(langs []string, span source.Span) error {
	if err := d.Cond.IfLanguage(langs...); err != nil {
		d.report(diag.InvalidConditionalState, span, err.Error())
		return newDispatchError(diag.InvalidConditionalState, "IFLANGUAGE")
	}
	return nil
}

// EndIfLanguage handles the ENDIFLANGUAGE directive.
func (d *Dispatcher) EndIfLanguage(span source.Span) error {
	if err := d.Cond.EndIfLanguage(); err != nil {
		d.report(diag.InvalidConditionalState, span, err.Error())
		return newDispatchError(diag.InvalidConditionalState, "ENDIFLANGUAGE")
	}
	return nil
}
