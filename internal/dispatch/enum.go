package dispatch

import (
	"sdlc/internal/backend"
	"sdlc/internal/diag"
	"sdlc/internal/source"
	"sdlc/internal/typeset"
)

// EnumMemberSpec is one entry of an Enum directive's member list, values
// defaulting to the prior member's value plus one when omitted (spec.md
// §4.5 "Constant list parsing", reused for enums by the same rule).
type EnumMemberSpec struct {
	Name    string
	Value   *int64
	Comment string
}

// Enum handles an Enum directive, producing one Enumeration with its
// members valued in source order.
func (d *Dispatcher) Enum(name string, specs []EnumMemberSpec, span source.Span) (*typeset.Enumeration, error) {
	if !d.Cond.ProcessingEnabled() {
		d.takeOptions()
		return nil, nil
	}

	if !d.Reg.Unique(typeset.NSEnum, name) {
		d.report(diag.MatchEndName, span, "duplicate enum name "+name)
		return nil, newDispatchError(diag.MatchEndName, name)
	}

	opts := d.takeOptions()
	prefix, _ := optString(opts, OptPrefix)
	tag, _ := optString(opts, OptTag)
	typedef := optBool(opts, OptTypedef)

	e := &typeset.Enumeration{
		Name:    name,
		Prefix:  prefix,
		Tag:     tag,
		Typedef: typedef,
	}
	for _, spec := range specs {
		var v int64
		explicit := spec.Value != nil
		if explicit {
			v = *spec.Value
		} else {
			v = e.NextValue()
		}
		e.Members = append(e.Members, typeset.EnumMember{
			Name:     spec.Name,
			Value:    v,
			Explicit: explicit,
			Comment:  spec.Comment,
		})
	}
	d.Reg.AddEnum(e)

	if err := d.fanout(func(b backend.Backend) error {
		return b.EmitEnum(e, d.enableVector())
	}); err != nil {
		return e, err
	}
	return e, nil
}
