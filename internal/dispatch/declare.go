package dispatch

import (
	"sdlc/internal/diag"
	"sdlc/internal/source"
	"sdlc/internal/typeset"
)

// Declare handles a type-alias directive (spec.md §3 Declare, §4.5 entry
// point). base is the scalar or user TypeID being aliased.
func (d *Dispatcher) Declare(name string, base typeset.TypeID, unsigned bool, span source.Span) (*typeset.Declare, error) {
	if !d.Cond.ProcessingEnabled() {
		d.takeOptions()
		return nil, nil
	}

	if !d.Reg.Unique(typeset.NSDeclare, name) {
		d.report(diag.MatchEndName, span, "duplicate declare name "+name)
		return nil, newDispatchError(diag.MatchEndName, name)
	}

	opts := d.takeOptions()
	tag, _ := optString(opts, OptTag)
	prefix, _ := optString(opts, OptPrefix)

	decl := &typeset.Declare{
		Name:     name,
		Prefix:   prefix,
		Tag:      tag,
		Unsigned: unsigned,
		Base:     base,
		Size:     baseSize(base),
	}
	d.Reg.AddDeclare(decl)
	return decl, nil
}

func baseSize(id typeset.TypeID) int {
	if tag, ok := id.AsScalar(); ok {
		return tag.Size()
	}
	return 0
}
