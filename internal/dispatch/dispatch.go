// Package dispatch implements spec.md §4.5's Directive Dispatcher: the
// entry points the parser calls one per SDL statement, the pending-
// options buffer, Module lifecycle, and the fan-out to every enabled
// backend once a definition is fully resolved.
package dispatch

import (
	"golang.org/x/sync/errgroup"

	"sdlc/internal/backend"
	"sdlc/internal/condstate"
	"sdlc/internal/diag"
	"sdlc/internal/source"
	"sdlc/internal/symbols"
	"sdlc/internal/tagresolve"
	"sdlc/internal/typeset"
)

// aggFrame is one level of the aggregate cursor (spec.md §5 "the current
// aggregate pointer and aggregate depth form a cursor").
type aggFrame struct {
	agg         *typeset.Aggregate
	predecessor *typeset.Member
}

// Dispatcher is the long-lived object spec.md §9's design notes call for
// in place of process-wide scratch globals: it owns the options buffer,
// the aggregate cursor, the conditional stack, and the registries for
// exactly one module at a time.
type Dispatcher struct {
	Reg     *typeset.Registry
	Symbols *symbols.Table
	Cond    *condstate.Machine
	Layout  layoutEngine
	Tags    *tagresolve.Resolver

	Backends []backend.Backend
	Reporter diag.Reporter

	moduleOpen bool
	moduleName string

	pending []Option
	stack   []aggFrame

	literalOpen bool
	literalBuf  []string
}

// layoutEngine is the subset of *layout.Engine the dispatcher calls,
// declared as an interface so tests can substitute a fake without
// constructing a real alignment configuration.
type layoutEngine interface {
	AppendMember(agg *typeset.Aggregate, m *typeset.Member) error
	CloseAggregate(agg *typeset.Aggregate) ([]typeset.Constant, error)
}

// New returns a Dispatcher over a fresh registry/symbol table, ready to
// process one module's directive stream.
func New(le layoutEngine, languages []string, backends []backend.Backend, reporter diag.Reporter) *Dispatcher {
	reg := typeset.NewRegistry()
	return &Dispatcher{
		Reg:      reg,
		Symbols:  symbols.NewTable(),
		Cond:     condstate.New(languages),
		Layout:   le,
		Tags:     tagresolve.New(reg),
		Backends: backends,
		Reporter: reporter,
	}
}

// report emits a recoverable diagnostic and returns its code (spec.md
// §4.9). Callers keep processing; only a fatal code needs special
// handling by the caller.
func (d *Dispatcher) report(code diag.Code, span source.Span, msg string) diag.Code {
	return diag.Error(d.Reporter, code, span, msg).Backtrace(d.backtrace()).Emit()
}

func (d *Dispatcher) backtrace() []string {
	if len(d.stack) == 0 {
		return nil
	}
	names := make([]string, len(d.stack))
	for i, f := range d.stack {
		names[i] = f.agg.Name
	}
	return names
}

// current returns the innermost open aggregate, or nil at top level.
func (d *Dispatcher) current() *typeset.Aggregate {
	if len(d.stack) == 0 {
		return nil
	}
	return d.stack[len(d.stack)-1].agg
}

// BeginModule opens a module (spec.md §5 Lifecycles). Re-entry without an
// intervening EndModule is a dispatcher misuse the parser must not cause;
// it is reported as InvalidConditionalState since no module-specific code
// exists in spec.md §7's list.
func (d *Dispatcher) BeginModule(name string, span source.Span) error {
	if d.moduleOpen {
		d.report(diag.InvalidConditionalState, span, "nested module")
		return newDispatchError(diag.InvalidConditionalState, name)
	}
	d.moduleOpen = true
	d.moduleName = name
	for _, b := range d.Backends {
		if err := b.EmitModuleBegin(name, d.enableVector()); err != nil {
			return err
		}
	}
	return nil
}

// EndModule closes the module, releasing every owned table (spec.md §5
// "guarantees release ... even on partial failure").
func (d *Dispatcher) EndModule(name string, span source.Span) error {
	defer d.reset()

	if !d.moduleOpen {
		d.report(diag.MatchEndName, span, "end_module without module")
		return newDispatchError(diag.MatchEndName, name)
	}
	if name != "" && name != d.moduleName {
		d.report(diag.MatchEndName, span, "end name "+name+" does not match module "+d.moduleName)
		return newDispatchError(diag.MatchEndName, name)
	}
	if len(d.stack) != 0 {
		d.report(diag.MatchEndName, span, "module closed with an aggregate still open")
		return newDispatchError(diag.MatchEndName, name)
	}
	for _, b := range d.Backends {
		if err := b.EmitModuleEnd(d.enableVector()); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dispatcher) reset() {
	d.moduleOpen = false
	d.moduleName = ""
	d.pending = nil
	d.stack = nil
	d.literalOpen = false
	d.literalBuf = nil
	d.Symbols.Reset()
	d.Reg = typeset.NewRegistry()
	d.Tags = tagresolve.New(d.Reg)
}

// enableVector snapshots the conditional state machine's currently
// active languages for the callbacks about to run (spec.md §4.8).
func (d *Dispatcher) enableVector() backend.EnableVector {
	out := make(backend.EnableVector, 0, len(d.Backends))
	for _, b := range d.Backends {
		if d.Cond.LangEnabled(b.Language()) {
			out = append(out, b.Language())
		}
	}
	return out
}

// fanout calls fn for every backend whose language is currently enabled,
// concurrently (spec.md §5: the resolution core stays synchronous; only
// this I/O-bound emit step runs backends in parallel).
func (d *Dispatcher) fanout(fn func(backend.Backend) error) error {
	enable := d.enableVector()
	var g errgroup.Group
	for _, b := range d.Backends {
		if !enable.Enabled(b.Language()) {
			continue
		}
		b := b
		g.Go(func() error { return fn(b) })
	}
	return g.Wait()
}
