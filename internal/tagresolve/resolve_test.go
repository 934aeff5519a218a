package tagresolve

import (
	"testing"

	"sdlc/internal/typeset"
	"sdlc/internal/value"
)

func TestExplicitTagTrimsTrailingUnderscores(t *testing.T) {
	r := New(typeset.NewRegistry())
	got := r.Resolve("MYTAG__", typeset.ScalarTypeID(value.TagByte), false)
	if got != "MYTAG" {
		t.Fatalf("got %q, want MYTAG", got)
	}
}

func TestBaseScalarReturnsDefaultTag(t *testing.T) {
	r := New(typeset.NewRegistry())
	got := r.Resolve("", typeset.ScalarTypeID(value.TagWord), false)
	if got != "W" {
		t.Fatalf("got %q, want W", got)
	}
}

func TestDeclareWithTagReturnsItsOwnTag(t *testing.T) {
	reg := typeset.NewRegistry()
	id := reg.AddDeclare(&typeset.Declare{Name: "myint", Tag: "MI", Base: typeset.ScalarTypeID(value.TagLong)})

	r := New(reg)
	got := r.Resolve("", id, false)
	if got != "MI" {
		t.Fatalf("got %q, want MI", got)
	}
}

func TestDeclareWithoutTagRecursesToBase(t *testing.T) {
	reg := typeset.NewRegistry()
	id := reg.AddDeclare(&typeset.Declare{Name: "myint", Base: typeset.ScalarTypeID(value.TagQuad)})

	r := New(reg)
	got := r.Resolve("", id, false)
	if got != "Q" {
		t.Fatalf("got %q, want Q (recursed through declare to its base scalar)", got)
	}
}

func TestItemRecursesThroughDeclareChain(t *testing.T) {
	reg := typeset.NewRegistry()
	declID := reg.AddDeclare(&typeset.Declare{Name: "myint", Base: typeset.ScalarTypeID(value.TagByte)})
	itemID := reg.AddItem(&typeset.Item{Name: "field", Type: declID})

	r := New(reg)
	got := r.Resolve("", itemID, false)
	if got != "B" {
		t.Fatalf("got %q, want B", got)
	}
}

func TestAggregateWithoutTagReturnsEmpty(t *testing.T) {
	reg := typeset.NewRegistry()
	id := reg.AddAggregate(&typeset.Aggregate{Name: "s"})

	r := New(reg)
	got := r.Resolve("", id, false)
	if got != "" {
		t.Fatalf("got %q, want empty (spec.md rule 5, unknown/untagged type)", got)
	}
}

func TestHostLowercaseLowersResolvedTag(t *testing.T) {
	reg := typeset.NewRegistry()
	id := reg.AddDeclare(&typeset.Declare{Name: "myint", Tag: "MI"})

	r := New(reg)
	got := r.Resolve("", id, true)
	if got != "mi" {
		t.Fatalf("got %q, want mi", got)
	}
}

func TestUnknownIDReturnsEmpty(t *testing.T) {
	r := New(typeset.NewRegistry())
	got := r.Resolve("", typeset.ItemMin+5, false)
	if got != "" {
		t.Fatalf("got %q, want empty for an unregistered id", got)
	}
}

func TestResolveConstantDefaultsToK(t *testing.T) {
	if got := ResolveConstant(false); got != "K" {
		t.Fatalf("got %q, want K", got)
	}
	if got := ResolveConstant(true); got != "k" {
		t.Fatalf("got %q, want k", got)
	}
}
