// Package condstate implements spec.md §4.1's Conditional State Machine:
// the symbol/language conditional stack that gates every Dispatcher entry
// point via processing_enabled and, independently, which backend
// languages a block's members are emitted to.
package condstate

import "sdlc/internal/diag"

// Origin distinguishes which directive family opened a stack frame.
type Origin uint8

const (
	originSymbol Origin = iota
	originLanguage
)

// branchState is a frame's position within its if/else-if/else chain.
type branchState uint8

const (
	stateIf branchState = iota
	stateElseIf
	stateElse
)

type frame struct {
	origin Origin
	state  branchState

	// taken/anyTaken gate a symbol-conditional frame's body (spec.md §4.1
	// processing_enabled).
	taken    bool
	anyTaken bool

	// savedLangs/listedLangs let a language-conditional frame narrow and
	// then exactly restore the active-language set on pop.
	savedLangs  []string
	listedLangs []string
}

// Machine holds the conditional stack for one Dispatcher. end_module does
// not clear it.
type Machine struct {
	stack []frame

	// allLanguages is the full set of backend languages the CLI enabled
	// (spec.md §6 --lang flags), the baseline lang_enable_vec[] before any
	// IfLanguage narrows it.
	allLanguages []string
	activeLangs  []string
}

// New returns a Machine with every CLI-enabled language initially active.
func New(languages []string) *Machine {
	active := make([]string, len(languages))
	copy(active, languages)
	all := make([]string, len(languages))
	copy(all, languages)
	return &Machine{allLanguages: all, activeLangs: active}
}

// ProcessingEnabled reports spec.md §4.1's processing_enabled gate: true
// unless some enclosing symbol-conditional branch was not taken.
func (m *Machine) ProcessingEnabled() bool {
	for _, f := range m.stack {
		if f.origin == originSymbol && !f.taken {
			return false
		}
	}
	return true
}

// LangEnabled reports whether lang is in the current lang_enable_vec[]
// (spec.md §4.1), i.e. whether a backend for lang should be called for a
// member appended under the current conditional nesting.
func (m *Machine) LangEnabled(lang string) bool {
	for _, l := range m.activeLangs {
		if l == lang {
			return true
		}
	}
	return false
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func intersect(a, b []string) []string {
	out := make([]string, 0, len(a))
	for _, v := range a {
		if contains(b, v) {
			out = append(out, v)
		}
	}
	return out
}

func subtract(a, b []string) []string {
	out := make([]string, 0, len(a))
	for _, v := range a {
		if !contains(b, v) {
			out = append(out, v)
		}
	}
	return out
}

func (m *Machine) top() (frame, bool) {
	if len(m.stack) == 0 {
		return frame{}, false
	}
	return m.stack[len(m.stack)-1], true
}

// IfSymbol pushes a new symbol-conditional frame, evaluating cond as the
// result of the IFSYMBOL directive's condition expression.
func (m *Machine) IfSymbol(cond bool) error {
	top, ok := m.top()
	if ok && top.origin == originSymbol && (top.state == stateIf || top.state == stateElseIf) {
		return newError(diag.InvalidConditionalState, "IFSYMBOL")
	}
	m.stack = append(m.stack, frame{origin: originSymbol, state: stateIf, taken: cond, anyTaken: cond})
	return nil
}

// ElseIfSymbol evaluates cond only if no earlier branch in the chain has
// already matched (spec.md §4.1 transition table row 2).
func (m *Machine) ElseIfSymbol(cond bool) error {
	top, ok := m.top()
	if !ok || top.origin != originSymbol || top.state != stateIf {
		return newError(diag.InvalidConditionalState, "ELSEIFSYMBOL")
	}
	f := &m.stack[len(m.stack)-1]
	f.state = stateElseIf
	if f.anyTaken {
		f.taken = false
		return nil
	}
	f.taken = cond
	f.anyTaken = f.anyTaken || cond
	return nil
}

// Else handles the ELSE directive, dispatching to whichever conditional
// family currently owns the top frame.
func (m *Machine) Else() error {
	top, ok := m.top()
	if !ok {
		return newError(diag.InvalidConditionalState, "ELSE")
	}
	f := &m.stack[len(m.stack)-1]
	switch top.origin {
	case originSymbol:
		if top.state != stateIf && top.state != stateElseIf {
			return newError(diag.InvalidConditionalState, "ELSE")
		}
		f.state = stateElse
		f.taken = !f.anyTaken
		return nil
	case originLanguage:
		if top.state != stateIf {
			return newError(diag.InvalidConditionalState, "ELSE")
		}
		f.state = stateElse
		m.activeLangs = subtract(f.savedLangs, f.listedLangs)
		return nil
	default:
		return newError(diag.InvalidConditionalState, "ELSE")
	}
}

// EndIfSymbol closes the innermost open symbol-conditional frame.
func (m *Machine) EndIfSymbol() error {
	top, ok := m.top()
	if !ok || top.origin != originSymbol {
		return newError(diag.InvalidConditionalState, "ENDIFSYMBOL")
	}
	m.stack = m.stack[:len(m.stack)-1]
	return nil
}

// IfLanguage pushes a new language-conditional frame, narrowing the
// active-language set to the intersection with langs.
func (m *Machine) IfLanguage(langs ...string) error {
	m.stack = append(m.stack, frame{
		origin:      originLanguage,
		state:       stateIf,
		savedLangs:  m.activeLangs,
		listedLangs: langs,
	})
	m.activeLangs = intersect(m.activeLangs, langs)
	return nil
}

// EndIfLanguage closes the innermost open language-conditional frame,
// restoring the active-language set it narrowed.
func (m *Machine) EndIfLanguage() error {
	top, ok := m.top()
	if !ok || top.origin != originLanguage {
		return newError(diag.InvalidConditionalState, "ENDIFLANGUAGE")
	}
	m.activeLangs = top.savedLangs
	m.stack = m.stack[:len(m.stack)-1]
	return nil
}

// Depth returns the current nesting depth. Only the tests call it; the
// dispatcher does not check for an unterminated conditional at end_module.
func (m *Machine) Depth() int { return len(m.stack) }
