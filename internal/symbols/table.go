// Package symbols implements spec.md §3's Symbol & Dimension tables: the
// process-scoped local variables a constant list's COUNTER option binds,
// the named dimension records a DIMENSION option selects, and the
// condition symbols the conditional state machine's IFSYMBOL directive
// looks up (seeded from the CLI's repeatable --symbol name=value flag,
// spec.md §6).
package symbols

import "sdlc/internal/value"

// Table owns every symbol-scoped table for one Module. It is owned by the
// Module and cleared at end_module (spec.md §5).
type Table struct {
	locals     map[string]value.Value
	dimensions map[string]Dimension
	conditions map[string]value.Value
}

// Dimension is an inclusive lower..upper array bound (spec.md GLOSSARY).
type Dimension struct {
	Lower int64
	Upper int64
}

// Cardinality returns the number of elements the dimension spans.
func (d Dimension) Cardinality() int64 {
	return d.Upper - d.Lower + 1
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{
		locals:     make(map[string]value.Value),
		dimensions: make(map[string]Dimension),
		conditions: make(map[string]value.Value),
	}
}

// SetLocal binds name to v, used by the constant-list COUNTER option.
func (t *Table) SetLocal(name string, v value.Value) {
	t.locals[name] = v
}

// Local looks up a process-scoped local variable.
func (t *Table) Local(name string) (value.Value, bool) {
	v, ok := t.locals[name]
	return v, ok
}

// DefineDimension registers a named dimension record.
func (t *Table) DefineDimension(name string, d Dimension) {
	t.dimensions[name] = d
}

// Dimension looks up a named dimension record selected by the DIMENSION
// option.
func (t *Table) Dimension(name string) (Dimension, bool) {
	d, ok := t.dimensions[name]
	return d, ok
}

// DefineCondition seeds a condition symbol, as from --symbol name=value.
func (t *Table) DefineCondition(name string, v value.Value) {
	t.conditions[name] = v
}

// Condition looks up a condition symbol for IFSYMBOL evaluation. Failure
// to find a binding is SymbolNotDefined (spec.md §4.1).
func (t *Table) Condition(name string) (value.Value, bool) {
	v, ok := t.conditions[name]
	return v, ok
}

// Reset clears every table, called at end_module.
func (t *Table) Reset() {
	t.locals = make(map[string]value.Value)
	t.dimensions = make(map[string]Dimension)
	t.conditions = make(map[string]value.Value)
}
