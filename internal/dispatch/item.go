package dispatch

import (
	"sdlc/internal/backend"
	"sdlc/internal/diag"
	"sdlc/internal/source"
	"sdlc/internal/typeset"
	"sdlc/internal/value"
)

// buildItem assembles an Item from name/type plus the pending options
// buffer, shared by top-level Item() and aggregate Member(). A pointer-
// family item naming a target aggregate via Address fails with
// AddressObjectNotBased when that aggregate exists but carries no Based
// pointer name (spec.md line 57, §7); an Address naming an aggregate that
// does not exist (or is still open) is left unresolved rather than
// treated as an error, matching the original's "if (myAggr != NULL)"
// guard (opensdl_actions.c:1572-1586).
func (d *Dispatcher) buildItem(name string, typ typeset.TypeID, opts []Option, span source.Span) (*typeset.Item, error) {
	it := &typeset.Item{
		Name:      name,
		Type:      typ,
		Size:      baseSize(typ),
		Alignment: applyAlignment(opts),
		Storage:   applyStorage(opts),
	}
	if tag, ok := optString(opts, OptTag); ok {
		it.Tag = tag
	}
	if prefix, ok := optString(opts, OptPrefix); ok {
		it.Prefix = prefix
	}
	tag, isScalar := typ.AsScalar()
	if n, ok := optInt(opts, OptLength); ok {
		if isScalar && tag.IsBitfield() {
			it.LengthBits = int(n)
		} else {
			it.Length = int(n)
		}
	}
	if dimName, ok := optString(opts, OptDimension); ok {
		if dim, found := d.Symbols.Dimension(dimName); found {
			it.Dimension = &dim
		}
	}
	it.Mask = optBool(opts, OptMask)
	if isScalar {
		if w := explicitBitfieldHostWidth(tag); w > 0 {
			it.HostWidth = w
			it.SizedExplicitly = true
		}
		if tag.IsPointerFamily() {
			if aggName, ok := optString(opts, OptAddress); ok {
				if agg, found := d.Reg.AggregateByName(aggName); found {
					it.Subtype = agg.ID
					if agg.Based == "" {
						d.report(diag.AddressObjectNotBased, span, "aggregate "+aggName+" has no Based pointer name")
						return it, newDispatchError(diag.AddressObjectNotBased, aggName)
					}
				}
			}
		}
	}
	return it, nil
}

// explicitBitfieldHostWidth returns the fixed host width a bitfield_b/w/l/q/o
// tag carries, 0 for the generic, promotable "bitfield" tag.
func explicitBitfieldHostWidth(tag value.ScalarTag) int {
	switch tag {
	case value.TagBitfieldB:
		return 8
	case value.TagBitfieldW:
		return 16
	case value.TagBitfieldL:
		return 32
	case value.TagBitfieldQ:
		return 64
	case value.TagBitfieldO:
		return 128
	default:
		return 0
	}
}

// Item handles a top-level (module-scope) item directive. An item
// declared while an aggregate is open is a member instead; see Member.
func (d *Dispatcher) Item(name string, typ typeset.TypeID, span source.Span) (*typeset.Item, error) {
	if !d.Cond.ProcessingEnabled() {
		d.takeOptions()
		return nil, nil
	}
	if d.current() != nil {
		return nil, d.Member(name, typ, span)
	}

	if !d.Reg.Unique(typeset.NSItem, name) {
		d.report(diag.MatchEndName, span, "duplicate item name "+name)
		return nil, newDispatchError(diag.MatchEndName, name)
	}

	opts := d.takeOptions()
	it, err := d.buildItem(name, typ, opts, span)
	if err != nil {
		return it, err
	}
	d.Reg.AddItem(it)

	if err := d.fanout(func(b backend.Backend) error {
		return b.EmitItem(it, d.enableVector())
	}); err != nil {
		return it, err
	}
	return it, nil
}
