package dispatch

import (
	"sdlc/internal/backend"
	"sdlc/internal/diag"
	"sdlc/internal/source"
	"sdlc/internal/typeset"
)

// BeginAggregate opens a struct/union/implicit-union (spec.md §3, §4.5).
// implicitScalar is only meaningful when kind == AggregateImplicitUnion
// ("STRUCTURE LONGWORD"-style coercion).
func (d *Dispatcher) BeginAggregate(name string, kind typeset.AggregateKind, implicitScalar typeset.TypeID, span source.Span) error {
	if !d.Cond.ProcessingEnabled() {
		d.takeOptions()
		return nil
	}

	if d.current() == nil {
		if !d.Reg.Unique(typeset.NSAggregate, name) {
			d.report(diag.MatchEndName, span, "duplicate aggregate name "+name)
			return newDispatchError(diag.MatchEndName, name)
		}
	}

	opts := d.takeOptions()
	ag := &typeset.Aggregate{
		Name:           name,
		Kind:           kind,
		ImplicitScalar: implicitScalar,
		Alignment:      applyAlignment(opts),
		Storage:        applyStorage(opts),
		Parent:         d.current(),
	}
	if tag, ok := optString(opts, OptTag); ok {
		ag.Tag = tag
	}
	if prefix, ok := optString(opts, OptPrefix); ok {
		ag.Prefix = prefix
	}
	if based, ok := optString(opts, OptBased); ok {
		ag.Based = based
	}
	if marker, ok := optString(opts, OptMarker); ok {
		ag.Marker = marker
	}
	if origin, ok := optString(opts, OptOrigin); ok {
		ag.Origin = origin
	}

	d.stack = append(d.stack, aggFrame{agg: ag})

	if err := d.fanout(func(b backend.Backend) error {
		return b.EmitAggregateBegin(ag, d.enableVector())
	}); err != nil {
		return err
	}
	return nil
}

// EndAggregate closes the innermost open aggregate: resolves its layout
// and size (spec.md §4.4), registers its constants, and either files it
// into the registry (top level) or appends it as a subaggregate member of
// its parent.
func (d *Dispatcher) EndAggregate(name string, span source.Span) (*typeset.Aggregate, []typeset.Constant, error) {
	if !d.Cond.ProcessingEnabled() {
		return nil, nil, nil
	}
	if len(d.stack) == 0 {
		d.report(diag.MatchEndName, span, "end without an open aggregate")
		return nil, nil, newDispatchError(diag.MatchEndName, name)
	}
	frame := d.stack[len(d.stack)-1]
	ag := frame.agg
	if name != "" && name != ag.Name {
		d.report(diag.MatchEndName, span, "end name "+name+" does not match "+ag.Name)
		return nil, nil, newDispatchError(diag.MatchEndName, name)
	}

	consts, err := d.Layout.CloseAggregate(ag)
	if err != nil {
		d.report(diag.NullStructure, span, err.Error())
		d.stack = d.stack[:len(d.stack)-1]
		return ag, nil, err
	}

	d.stack = d.stack[:len(d.stack)-1]

	for i := range consts {
		d.Reg.AddConstant(&consts[i])
		if err := d.fanout(func(b backend.Backend) error {
			return b.EmitConstant(&consts[i], d.enableVector())
		}); err != nil {
			return ag, consts, err
		}
	}

	if err := d.fanout(func(b backend.Backend) error {
		return b.EmitAggregateEnd(ag, d.enableVector())
	}); err != nil {
		return ag, consts, err
	}

	if parent := d.current(); parent != nil {
		m := &typeset.Member{Kind: typeset.MemberSubaggregate, Subaggr: ag}
		if err := d.Layout.AppendMember(parent, m); err != nil {
			d.report(diag.NullStructure, span, err.Error())
			return ag, consts, err
		}
		return ag, consts, nil
	}

	d.Reg.AddAggregate(ag)
	return ag, consts, nil
}

// Member appends an item to the innermost open aggregate (spec.md §4.4).
func (d *Dispatcher) Member(name string, typ typeset.TypeID, span source.Span) error {
	agg := d.current()
	if agg == nil {
		return newDispatchError(diag.MatchEndName, "member outside aggregate")
	}

	opts := d.takeOptions()
	it, err := d.buildItem(name, typ, opts, span)
	if err != nil {
		return err
	}
	m := &typeset.Member{Kind: typeset.MemberItem, ItemData: it}

	if err := d.Layout.AppendMember(agg, m); err != nil {
		d.report(diag.ZeroLength, span, err.Error())
		return err
	}
	d.stack[len(d.stack)-1].predecessor = m

	return d.fanout(func(b backend.Backend) error {
		return b.EmitMember(m, d.enableVector())
	})
}

// Comment records a free-text member (spec.md §4.6): stored as a Member
// without participating in layout when an aggregate is open, otherwise
// passed straight to every enabled backend.
func (d *Dispatcher) Comment(text string, pos typeset.CommentPosition, span source.Span) error {
	if !d.Cond.ProcessingEnabled() {
		return nil
	}
	c := &typeset.Comment{Text: text, Position: pos}

	if agg := d.current(); agg != nil {
		m := &typeset.Member{Kind: typeset.MemberComment, CommentData: c}
		agg.Members = append(agg.Members, m)
		d.stack[len(d.stack)-1].predecessor = m
		return nil
	}

	return d.fanout(func(b backend.Backend) error {
		return b.EmitComment(c, d.enableVector())
	})
}

// Predecessor returns the last member appended to the innermost open
// aggregate, for options that spec.md §4.5 "Ordering" says attach to the
// previously completed member rather than the one about to be created.
func (d *Dispatcher) Predecessor() *typeset.Member {
	if len(d.stack) == 0 {
		return nil
	}
	return d.stack[len(d.stack)-1].predecessor
}
