package layout

import (
	"testing"

	"sdlc/internal/typeset"
	"sdlc/internal/value"
)

func scalarItem(name string, tag value.ScalarTag) *typeset.Item {
	return &typeset.Item{Name: name, Type: typeset.ScalarTypeID(tag), Size: tag.Size()}
}

func itemMember(it *typeset.Item) *typeset.Member {
	return &typeset.Member{Kind: typeset.MemberItem, ItemData: it}
}

func TestEmptyStructureIsNullStructure(t *testing.T) {
	e := New(0)
	agg := &typeset.Aggregate{Name: "s", Kind: typeset.AggregateStruct}

	_, err := e.CloseAggregate(agg)
	if err == nil {
		t.Fatal("expected NullStructure error")
	}
	if agg.Size != 0 {
		t.Fatalf("size = %d, want 0", agg.Size)
	}
}

func TestThreeScalarsUnaligned(t *testing.T) {
	e := New(0)
	agg := &typeset.Aggregate{Name: "s", Kind: typeset.AggregateStruct}

	a := scalarItem("a", value.TagByte)
	b := scalarItem("b", value.TagWord)
	c := scalarItem("c", value.TagLong)
	for _, it := range []*typeset.Item{a, b, c} {
		if err := e.AppendMember(agg, itemMember(it)); err != nil {
			t.Fatalf("AppendMember(%s): %v", it.Name, err)
		}
	}
	if _, err := e.CloseAggregate(agg); err != nil {
		t.Fatalf("CloseAggregate: %v", err)
	}

	if a.Offset != 0 || b.Offset != 1 || c.Offset != 3 {
		t.Fatalf("offsets = (%d, %d, %d), want (0, 1, 3)", a.Offset, b.Offset, c.Offset)
	}
	if agg.Size != 7 {
		t.Fatalf("size = %d, want 7", agg.Size)
	}
}

func TestThreeScalarsAligned(t *testing.T) {
	e := New(4)
	agg := &typeset.Aggregate{Name: "s", Kind: typeset.AggregateStruct}

	a := scalarItem("a", value.TagByte)
	b := scalarItem("b", value.TagWord)
	c := scalarItem("c", value.TagLong)
	for _, it := range []*typeset.Item{a, b, c} {
		if err := e.AppendMember(agg, itemMember(it)); err != nil {
			t.Fatalf("AppendMember(%s): %v", it.Name, err)
		}
	}
	if _, err := e.CloseAggregate(agg); err != nil {
		t.Fatalf("CloseAggregate: %v", err)
	}

	if a.Offset != 0 || b.Offset != 2 || c.Offset != 4 {
		t.Fatalf("offsets = (%d, %d, %d), want (0, 2, 4)", a.Offset, b.Offset, c.Offset)
	}
	if agg.Size != 8 {
		t.Fatalf("size = %d, want 8", agg.Size)
	}
}

func TestImplicitUnionScalarFloor(t *testing.T) {
	e := New(0)
	agg := &typeset.Aggregate{
		Name:           "x",
		Kind:           typeset.AggregateImplicitUnion,
		ImplicitScalar: typeset.ScalarTypeID(value.TagLong),
	}

	a := &typeset.Item{Name: "a", Type: typeset.ScalarTypeID(value.TagBitfield), LengthBits: 4}
	if err := e.AppendMember(agg, itemMember(a)); err != nil {
		t.Fatalf("AppendMember: %v", err)
	}
	if _, err := e.CloseAggregate(agg); err != nil {
		t.Fatalf("CloseAggregate: %v", err)
	}

	if agg.Size != 4 {
		t.Fatalf("size = %d, want 4 (longword floor)", agg.Size)
	}

	var tailFiller *typeset.Member
	for _, m := range agg.Members {
		if m.Filler == typeset.FillerAlignment {
			tailFiller = m
		}
	}
	if tailFiller == nil {
		t.Fatal("expected a FillerAlignment trailing member")
	}
	if tailFiller.ItemData.LengthBits != 28 {
		t.Fatalf("trailing filler length = %d, want 28", tailFiller.ItemData.LengthBits)
	}
}

func TestOriginRecordsMemberOffset(t *testing.T) {
	e := New(0)
	agg := &typeset.Aggregate{Name: "q", Kind: typeset.AggregateStruct, Origin: "b"}

	a := scalarItem("a", value.TagAddr)
	b := scalarItem("b", value.TagAddr)
	if err := e.AppendMember(agg, itemMember(a)); err != nil {
		t.Fatal(err)
	}
	if err := e.AppendMember(agg, itemMember(b)); err != nil {
		t.Fatal(err)
	}
	if _, err := e.CloseAggregate(agg); err != nil {
		t.Fatal(err)
	}

	if a.Offset != 0 || b.Offset != 8 {
		t.Fatalf("offsets = (%d, %d), want (0, 8)", a.Offset, b.Offset)
	}
	if agg.OriginOffset != 8 {
		t.Fatalf("origin offset = %d, want 8", agg.OriginOffset)
	}
	if agg.Size != 16 {
		t.Fatalf("size = %d, want 16", agg.Size)
	}
}

func TestUnionSizeIsMaxMember(t *testing.T) {
	e := New(0)
	agg := &typeset.Aggregate{Name: "u", Kind: typeset.AggregateUnion}

	a := scalarItem("a", value.TagByte)
	b := scalarItem("b", value.TagQuad)
	if err := e.AppendMember(agg, itemMember(a)); err != nil {
		t.Fatal(err)
	}
	if err := e.AppendMember(agg, itemMember(b)); err != nil {
		t.Fatal(err)
	}
	if _, err := e.CloseAggregate(agg); err != nil {
		t.Fatal(err)
	}

	if a.Offset != 0 || b.Offset != 0 {
		t.Fatalf("union members must share offset 0, got (%d, %d)", a.Offset, b.Offset)
	}
	if agg.Size != 8 {
		t.Fatalf("size = %d, want 8 (max member size)", agg.Size)
	}
}

func TestZeroLengthBitfieldRejected(t *testing.T) {
	e := New(0)
	agg := &typeset.Aggregate{Name: "s", Kind: typeset.AggregateStruct}
	bad := &typeset.Item{Name: "bad", Type: typeset.ScalarTypeID(value.TagBitfield), LengthBits: 0}

	if err := e.AppendMember(agg, itemMember(bad)); err == nil {
		t.Fatal("expected ZeroLength error")
	}
}

func TestMemberOffsetWithinAggregateSize(t *testing.T) {
	e := New(0)
	agg := &typeset.Aggregate{Name: "s", Kind: typeset.AggregateStruct}

	a := scalarItem("a", value.TagByte)
	b := scalarItem("b", value.TagWord)
	for _, it := range []*typeset.Item{a, b} {
		if err := e.AppendMember(agg, itemMember(it)); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := e.CloseAggregate(agg); err != nil {
		t.Fatal(err)
	}

	for _, it := range []*typeset.Item{a, b} {
		if it.Offset < 0 || it.Offset >= agg.Size {
			t.Fatalf("member %s offset %d out of [0, %d)", it.Name, it.Offset, agg.Size)
		}
		if it.Offset+it.Size > agg.Size {
			t.Fatalf("member %s extends past aggregate size: %d+%d > %d", it.Name, it.Offset, it.Size, agg.Size)
		}
	}
}
