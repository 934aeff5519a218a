package diag

import "sdlc/internal/source"

// Note is a secondary span/message attached to a Diagnostic for context.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is a single recoverable or fatal finding produced while
// processing a directive stream.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	// Backtrace names the enclosing aggregates, outermost first, present
	// when the diagnostic originated while an aggregate was open (spec.md §7).
	Backtrace []string
	Notes     []Note
}

// New constructs a Diagnostic.
func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Primary: primary, Message: msg}
}

// NewError is a shortcut for a SevError Diagnostic.
func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

// WithNote returns d with an additional note appended.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

// WithBacktrace returns d carrying the given enclosing-aggregate names.
func (d Diagnostic) WithBacktrace(names []string) Diagnostic {
	d.Backtrace = append([]string(nil), names...)
	return d
}
