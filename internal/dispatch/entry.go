package dispatch

import (
	"sdlc/internal/backend"
	"sdlc/internal/diag"
	"sdlc/internal/source"
	"sdlc/internal/typeset"
)

// Entry handles an Entry directive (spec.md §3 Entry model): params is
// the fully-parsed parameter list, ret describes the function's return
// value (its Type may be NoTypeID for a void entry).
func (d *Dispatcher) Entry(name string, params []typeset.Parameter, ret typeset.ReturnDescriptor, variadic bool, span source.Span) (*typeset.Entry, error) {
	if !d.Cond.ProcessingEnabled() {
		d.takeOptions()
		return nil, nil
	}

	if !d.Reg.Unique(typeset.NSEntry, name) {
		d.report(diag.MatchEndName, span, "duplicate entry name "+name)
		return nil, newDispatchError(diag.MatchEndName, name)
	}

	opts := d.takeOptions()
	e := &typeset.Entry{
		Name:     name,
		Variadic: variadic,
		Return:   ret,
		Params:   params,
	}
	if alias, ok := optString(opts, OptAlias); ok {
		e.Alias = alias
	}
	if linkage, ok := optString(opts, OptLinkage); ok {
		e.Linkage = linkage
	}
	if typeName, ok := optString(opts, OptTypeName); ok {
		e.TypeName = typeName
	}
	if retType, ok := optString(opts, OptReturnType); ok && e.TypeName == "" {
		e.TypeName = retType
	}
	if retName, ok := optString(opts, OptReturnName); ok {
		e.Return.Named = retName
	}

	d.Reg.AddEntry(e)

	if err := d.fanout(func(b backend.Backend) error {
		return b.EmitEntry(e, d.enableVector())
	}); err != nil {
		return e, err
	}
	return e, nil
}
