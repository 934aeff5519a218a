package dispatch

import (
	"sdlc/internal/backend"
	"sdlc/internal/diag"
	"sdlc/internal/source"
	"sdlc/internal/typeset"
	"sdlc/internal/value"
)

// ConstantSpec is one name/value pair from a Constant list statement
// (spec.md §4.5 "Constant list parsing"): names delimited by commas, an
// optional per-item comment, and an optional explicit value overriding
// the running counter.
type ConstantSpec struct {
	Name    string
	Comment string
	Value   *value.Value // nil when the counter should supply the value
}

// ConstantList handles a Constant directive's whole comma-delimited run
// as one call, since spec.md's Counter/Increment/Radix/Enumerate options
// apply across the entire list rather than per name. When Enumerate
// names a target, the list is built as an Enumeration instead (spec.md
// line 156) and the returned *typeset.Constant slice is nil.
func (d *Dispatcher) ConstantList(specs []ConstantSpec, span source.Span) ([]*typeset.Constant, *typeset.Enumeration, error) {
	if !d.Cond.ProcessingEnabled() {
		d.takeOptions()
		return nil, nil, nil
	}

	opts := d.takeOptions()
	prefix, _ := optString(opts, OptPrefix)
	tag, _ := optString(opts, OptTag)
	typeName, _ := optString(opts, OptTypeName)
	typedef := optBool(opts, OptTypedef)

	radix := value.RadixDecimal
	if r, ok := optInt(opts, OptRadix); ok {
		switch r {
		case 8:
			radix = value.RadixOctal
		case 16:
			radix = value.RadixHex
		}
	}
	unsigned := !optBool(opts, OptSigned)

	counterName, hasCounter := optString(opts, OptCounter)

	// Default Increment is 0, meaning the same value repeats (spec.md
	// line 163); auto-increment-by-1 is reserved for enumerations, not
	// plain constant lists (_examples/original_source/library/utility/
	// opensdl_actions.c:1720 `int64_t increment = 0;`, only applied
	// `if (incrementPresent == true)` at lines 2066-2068).
	increment := int64(0)
	if inc, ok := optInt(opts, OptIncrement); ok {
		increment = inc
	}

	if enumName, ok := optString(opts, OptEnumerate); ok {
		e, err := d.constantListAsEnum(enumName, prefix, tag, typedef, specs, counterName, hasCounter, span)
		return nil, e, err
	}

	counter := int64(0)
	out := make([]*typeset.Constant, 0, len(specs))
	for _, spec := range specs {
		if !d.Reg.Unique(typeset.NSConstant, spec.Name) {
			d.report(diag.MatchEndName, span, "duplicate constant name "+spec.Name)
			return out, nil, newDispatchError(diag.MatchEndName, spec.Name)
		}

		var v value.Value
		if spec.Value != nil {
			v = *spec.Value
			if v.Kind == value.KindNumeric {
				counter = v.Numeric + increment
			}
		} else {
			v = value.NewNumeric(counter, unsigned, radix, 0)
			counter += increment
		}

		c := &typeset.Constant{
			Name:     spec.Name,
			Prefix:   prefix,
			Tag:      tag,
			Comment:  spec.Comment,
			TypeName: typeName,
			Value:    v,
		}
		d.Reg.AddConstant(c)
		out = append(out, c)

		// Counter <local> binds the running value to a local variable on
		// each step (spec.md line 153), not a seed for the counter itself
		// (opensdl_actions.c:1760-1767, 2059-2065 call sdl_set_local with
		// the current value, never reading it back as a starting point).
		if hasCounter {
			d.Symbols.SetLocal(counterName, v)
		}

		if err := d.fanout(func(b backend.Backend) error {
			return b.EmitConstant(c, d.enableVector())
		}); err != nil {
			return out, nil, err
		}
	}
	return out, nil, nil
}

// constantListAsEnum builds an Enumeration from a Constant directive's
// list when Enumerate retargets it (spec.md line 156, "Re-interprets
// list as an enumeration"), reusing Enum's auto-increment/explicit-value
// rule rather than the plain constant list's zero-default counter.
func (d *Dispatcher) constantListAsEnum(enumName, prefix, tag string, typedef bool, specs []ConstantSpec, counterName string, hasCounter bool, span source.Span) (*typeset.Enumeration, error) {
	if !d.Reg.Unique(typeset.NSEnum, enumName) {
		d.report(diag.MatchEndName, span, "duplicate enum name "+enumName)
		return nil, newDispatchError(diag.MatchEndName, enumName)
	}

	e := &typeset.Enumeration{
		Name:    enumName,
		Prefix:  prefix,
		Tag:     tag,
		Typedef: typedef,
	}
	for _, spec := range specs {
		var v int64
		explicit := spec.Value != nil && spec.Value.Kind == value.KindNumeric
		if explicit {
			v = spec.Value.Numeric
		} else {
			v = e.NextValue()
		}
		e.Members = append(e.Members, typeset.EnumMember{
			Name:     spec.Name,
			Value:    v,
			Explicit: explicit,
			Comment:  spec.Comment,
		})
		if hasCounter {
			d.Symbols.SetLocal(counterName, value.NewNumeric(v, true, value.RadixDecimal, 0))
		}
	}
	d.Reg.AddEnum(e)

	if err := d.fanout(func(b backend.Backend) error {
		return b.EmitEnum(e, d.enableVector())
	}); err != nil {
		return e, err
	}
	return e, nil
}
