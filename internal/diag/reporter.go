package diag

import "sdlc/internal/source"

// Reporter is the minimal diagnostic sink contract, implemented by Bag and
// by test doubles.
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter adapts a Bag to the Reporter interface.
type BagReporter struct {
	Bag *Bag
}

// Report appends d to the underlying bag.
func (r BagReporter) Report(d Diagnostic) {
	if r.Bag != nil {
		r.Bag.Add(d)
	}
}

// Builder accumulates notes onto a Diagnostic before it is reported.
type Builder struct {
	reporter Reporter
	diag     Diagnostic
}

// NewBuilder starts a diagnostic of the given severity/code/message.
func NewBuilder(r Reporter, sev Severity, code Code, primary source.Span, msg string) *Builder {
	return &Builder{reporter: r, diag: New(sev, code, primary, msg)}
}

// Error starts a SevError diagnostic.
func Error(r Reporter, code Code, primary source.Span, msg string) *Builder {
	return NewBuilder(r, SevError, code, primary, msg)
}

// Warning starts a SevWarning diagnostic.
func Warning(r Reporter, code Code, primary source.Span, msg string) *Builder {
	return NewBuilder(r, SevWarning, code, primary, msg)
}

// Note appends a secondary span/message.
func (b *Builder) Note(sp source.Span, msg string) *Builder {
	if b == nil {
		return nil
	}
	b.diag = b.diag.WithNote(sp, msg)
	return b
}

// Backtrace attaches the enclosing-aggregate name chain.
func (b *Builder) Backtrace(names []string) *Builder {
	if b == nil {
		return nil
	}
	b.diag = b.diag.WithBacktrace(names)
	return b
}

// Emit sends the built diagnostic to the reporter and returns its Code.
func (b *Builder) Emit() Code {
	if b == nil {
		return UnknownCode
	}
	if b.reporter != nil {
		b.reporter.Report(b.diag)
	}
	return b.diag.Code
}
