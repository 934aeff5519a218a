package typeset

import (
	"testing"

	"sdlc/internal/value"
)

func TestAddDeclareAssignsMonotonicIDs(t *testing.T) {
	r := NewRegistry()
	a := &Declare{Name: "myint"}
	b := &Declare{Name: "myflag"}

	idA := r.AddDeclare(a)
	idB := r.AddDeclare(b)

	if idA != DeclareMin || idB != DeclareMin+1 {
		t.Fatalf("ids = (%d, %d), want (%d, %d)", idA, idB, DeclareMin, DeclareMin+1)
	}
	if idA.Namespace() != NSDeclare {
		t.Fatalf("namespace = %v, want NSDeclare", idA.Namespace())
	}

	got, ok := r.Declare(idB)
	if !ok || got != b {
		t.Fatalf("Declare(%d) = %+v, %v", idB, got, ok)
	}
}

func TestAddItemAndAddAggregateUseDisjointNamespaces(t *testing.T) {
	r := NewRegistry()
	it := &Item{Name: "counter"}
	ag := &Aggregate{Name: "header"}

	itemID := r.AddItem(it)
	aggID := r.AddAggregate(ag)

	if itemID.Namespace() != NSItem {
		t.Fatalf("item namespace = %v, want NSItem", itemID.Namespace())
	}
	if aggID.Namespace() != NSAggregate {
		t.Fatalf("aggregate namespace = %v, want NSAggregate", aggID.Namespace())
	}
	if itemID == aggID {
		t.Fatal("item and aggregate ids must never collide")
	}

	if _, ok := r.Item(aggID); ok {
		t.Fatal("looking up an aggregate id as an item must fail")
	}
	if _, ok := r.Aggregate(itemID); ok {
		t.Fatal("looking up an item id as an aggregate must fail")
	}
}

func TestLookupOutOfRangeFails(t *testing.T) {
	r := NewRegistry()
	r.AddItem(&Item{Name: "only"})

	if _, ok := r.Item(ItemMin + 1); ok {
		t.Fatal("expected lookup past the registered range to fail")
	}
	if _, ok := r.Item(NoTypeID); ok {
		t.Fatal("expected NoTypeID lookup to fail")
	}
}

func TestUniqueRejectsDuplicateWithinNamespace(t *testing.T) {
	r := NewRegistry()
	if !r.Unique(NSItem, "widget") {
		t.Fatal("first reservation of a name should succeed")
	}
	if r.Unique(NSItem, "widget") {
		t.Fatal("duplicate reservation within the same namespace must fail")
	}
	if !r.Unique(NSAggregate, "widget") {
		t.Fatal("the same name in a different namespace must be allowed")
	}
}

func TestEntriesPreserveDeclarationOrder(t *testing.T) {
	r := NewRegistry()
	r.AddEntry(&Entry{Name: "first"})
	r.AddEntry(&Entry{Name: "second"})

	entries := r.Entries()
	if len(entries) != 2 || entries[0].Name != "first" || entries[1].Name != "second" {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestScalarTypeIDRoundTrip(t *testing.T) {
	id := ScalarTypeID(value.TagQuad)
	tag, ok := id.AsScalar()
	if !ok || tag != value.TagQuad {
		t.Fatalf("AsScalar() = %v, %v, want TagQuad, true", tag, ok)
	}
	if id.Namespace() != NSScalar {
		t.Fatalf("namespace = %v, want NSScalar", id.Namespace())
	}
}

func TestNamespaceOfDeclareIDIsNotScalar(t *testing.T) {
	r := NewRegistry()
	id := r.AddDeclare(&Declare{Name: "x"})
	if id.Namespace() == NSScalar {
		t.Fatal("a declare id must never fall in the scalar range")
	}
}
