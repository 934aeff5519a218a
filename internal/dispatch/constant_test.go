package dispatch

import (
	"testing"

	"sdlc/internal/source"
	"sdlc/internal/typeset"
	"sdlc/internal/value"
)

func TestConstantListDefaultsToZeroAndRepeats(t *testing.T) {
	d, _, be := newTestDispatcher(t)
	d.BeginModule("MOD", source.Span{})
	specs := []ConstantSpec{{Name: "A"}, {Name: "B"}, {Name: "C"}}
	consts, enum, err := d.ConstantList(specs, source.Span{})
	if err != nil {
		t.Fatalf("ConstantList: %v", err)
	}
	if enum != nil {
		t.Fatal("expected no Enumeration without the Enumerate option")
	}
	for i, c := range consts {
		if c.Value.Numeric != 0 {
			t.Fatalf("const %d = %d, want 0 (default Increment is 0, same value repeats)", i, c.Value.Numeric)
		}
	}
	if len(be.constants) != 3 {
		t.Fatalf("backend received %d constants, want 3", len(be.constants))
	}
}

func TestConstantListIncrementOptionAdvancesEachStep(t *testing.T) {
	d, _, _ := newTestDispatcher(t)
	d.BeginModule("MOD", source.Span{})
	d.AddOption(OptIncrement, int64(5))
	consts, _, err := d.ConstantList([]ConstantSpec{{Name: "A"}, {Name: "B"}, {Name: "C"}}, source.Span{})
	if err != nil {
		t.Fatalf("ConstantList: %v", err)
	}
	want := []int64{0, 5, 10}
	for i, c := range consts {
		if c.Value.Numeric != want[i] {
			t.Fatalf("const %d = %d, want %d", i, c.Value.Numeric, want[i])
		}
	}
}

func TestConstantListCounterBindsRunningValueToLocal(t *testing.T) {
	d, _, _ := newTestDispatcher(t)
	d.BeginModule("MOD", source.Span{})
	d.AddOption(OptCounter, "CTR")
	d.AddOption(OptIncrement, int64(5))
	consts, _, err := d.ConstantList([]ConstantSpec{{Name: "A"}, {Name: "B"}}, source.Span{})
	if err != nil {
		t.Fatalf("ConstantList: %v", err)
	}
	if consts[0].Value.Numeric != 0 || consts[1].Value.Numeric != 5 {
		t.Fatalf("values = %d, %d, want 0, 5", consts[0].Value.Numeric, consts[1].Value.Numeric)
	}
	local, found := d.Symbols.Local("CTR")
	if !found {
		t.Fatal("expected Counter to bind a local named CTR")
	}
	if local.Numeric != 5 {
		t.Fatalf("local CTR = %d, want 5 (the last emitted value)", local.Numeric)
	}
}

func TestConstantListExplicitValueResumesCounterAfterIt(t *testing.T) {
	d, _, _ := newTestDispatcher(t)
	d.BeginModule("MOD", source.Span{})
	d.AddOption(OptIncrement, int64(1))
	explicit := value.NewNumeric(100, true, value.RadixDecimal, 0)
	consts, _, err := d.ConstantList([]ConstantSpec{
		{Name: "A"},
		{Name: "B", Value: &explicit},
		{Name: "C"},
	}, source.Span{})
	if err != nil {
		t.Fatalf("ConstantList: %v", err)
	}
	if consts[2].Value.Numeric != 101 {
		t.Fatalf("C = %d, want 101 (resumed after explicit B)", consts[2].Value.Numeric)
	}
}

func TestConstantListRejectsDuplicateName(t *testing.T) {
	d, _, _ := newTestDispatcher(t)
	d.BeginModule("MOD", source.Span{})
	d.ConstantList([]ConstantSpec{{Name: "A"}}, source.Span{})
	if _, _, err := d.ConstantList([]ConstantSpec{{Name: "A"}}, source.Span{}); err == nil {
		t.Fatal("expected duplicate constant name to fail")
	}
}

func TestConstantListEnumerateBuildsAnEnumerationInstead(t *testing.T) {
	d, _, be := newTestDispatcher(t)
	d.BeginModule("MOD", source.Span{})
	d.AddOption(OptEnumerate, "COLOR")
	consts, enum, err := d.ConstantList([]ConstantSpec{
		{Name: "RED"},
		{Name: "GREEN"},
		{Name: "BLUE"},
	}, source.Span{})
	if err != nil {
		t.Fatalf("ConstantList: %v", err)
	}
	if consts != nil {
		t.Fatal("expected no constants once Enumerate retargets the list")
	}
	if enum == nil || enum.Name != "COLOR" {
		t.Fatalf("enum = %+v, want name COLOR", enum)
	}
	want := []int64{0, 1, 2}
	for i, m := range enum.Members {
		if m.Value != want[i] {
			t.Fatalf("member %d value = %d, want %d", i, m.Value, want[i])
		}
	}
	if len(be.enums) != 1 {
		t.Fatal("backend did not receive the enum")
	}
	if len(be.constants) != 0 {
		t.Fatal("backend should not have received any constants")
	}
}

func TestConstantListEnumerateHonorsExplicitValue(t *testing.T) {
	d, _, _ := newTestDispatcher(t)
	d.BeginModule("MOD", source.Span{})
	d.AddOption(OptEnumerate, "E")
	explicit := value.NewNumeric(10, true, value.RadixDecimal, 0)
	_, enum, err := d.ConstantList([]ConstantSpec{
		{Name: "A"},
		{Name: "B", Value: &explicit},
		{Name: "C"},
	}, source.Span{})
	if err != nil {
		t.Fatalf("ConstantList: %v", err)
	}
	if enum.Members[2].Value != 11 {
		t.Fatalf("C = %d, want 11", enum.Members[2].Value)
	}
	if !enum.Members[1].Explicit {
		t.Fatal("B should be flagged explicit")
	}
}

func TestEnumAutoIncrementsFromZero(t *testing.T) {
	d, _, be := newTestDispatcher(t)
	d.BeginModule("MOD", source.Span{})
	e, err := d.Enum("COLOR", []EnumMemberSpec{
		{Name: "RED"},
		{Name: "GREEN"},
		{Name: "BLUE"},
	}, source.Span{})
	if err != nil {
		t.Fatalf("Enum: %v", err)
	}
	for i, m := range e.Members {
		if m.Value != int64(i) {
			t.Fatalf("member %d value = %d, want %d", i, m.Value, i)
		}
	}
	if len(be.enums) != 1 {
		t.Fatal("backend did not receive the enum")
	}
}

func TestEnumExplicitValueShiftsSubsequentAutoIncrement(t *testing.T) {
	d, _, _ := newTestDispatcher(t)
	d.BeginModule("MOD", source.Span{})
	explicit := int64(10)
	e, err := d.Enum("E", []EnumMemberSpec{
		{Name: "A"},
		{Name: "B", Value: &explicit},
		{Name: "C"},
	}, source.Span{})
	if err != nil {
		t.Fatalf("Enum: %v", err)
	}
	if e.Members[2].Value != 11 {
		t.Fatalf("C = %d, want 11", e.Members[2].Value)
	}
	if e.Members[1].Explicit != true {
		t.Fatal("B should be flagged explicit")
	}
}

func TestEntryRegistersWithAliasAndLinkage(t *testing.T) {
	d, _, be := newTestDispatcher(t)
	d.BeginModule("MOD", source.Span{})
	d.AddOption(OptAlias, "sys_open")
	d.AddOption(OptLinkage, "external")
	params := []typeset.Parameter{
		{Name: "path", Type: typeset.ScalarTypeID(value.TagLong), In: true},
	}
	ret := typeset.ReturnDescriptor{Type: typeset.ScalarTypeID(value.TagLong)}
	e, err := d.Entry("OPEN", params, ret, false, source.Span{})
	if err != nil {
		t.Fatalf("Entry: %v", err)
	}
	if e.Alias != "sys_open" || e.Linkage != "external" {
		t.Fatalf("e = %+v, want alias/linkage set", e)
	}
	if len(be.entries) != 1 {
		t.Fatal("backend did not receive the entry")
	}
}

func TestEntryRejectsDuplicateName(t *testing.T) {
	d, _, _ := newTestDispatcher(t)
	d.BeginModule("MOD", source.Span{})
	ret := typeset.ReturnDescriptor{Type: typeset.ScalarTypeID(value.TagLong)}
	d.Entry("FN", nil, ret, false, source.Span{})
	if _, err := d.Entry("FN", nil, ret, false, source.Span{}); err == nil {
		t.Fatal("expected duplicate entry name to fail")
	}
}
