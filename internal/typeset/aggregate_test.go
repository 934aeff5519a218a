package typeset

import "testing"

func TestNextFillerNameIsSequentialPerAggregate(t *testing.T) {
	agg := &Aggregate{Name: "s"}
	if got := agg.NextFillerName(); got != "filler_000" {
		t.Fatalf("first filler name = %q, want filler_000", got)
	}
	if got := agg.NextFillerName(); got != "filler_001" {
		t.Fatalf("second filler name = %q, want filler_001", got)
	}

	other := &Aggregate{Name: "t"}
	if got := other.NextFillerName(); got != "filler_000" {
		t.Fatalf("a fresh aggregate must restart its own counter, got %q", got)
	}
}

func TestRecordOriginOnlyFiresOnce(t *testing.T) {
	agg := &Aggregate{Name: "q", Origin: "b"}
	agg.RecordOrigin("a", 0)
	if agg.OriginOffset != 0 || agg.originSet {
		t.Fatal("a non-matching member must not set the origin")
	}
	agg.RecordOrigin("b", 8)
	if !agg.originSet || agg.OriginOffset != 8 {
		t.Fatalf("origin offset = %d, set = %v, want 8, true", agg.OriginOffset, agg.originSet)
	}
	agg.RecordOrigin("b", 99)
	if agg.OriginOffset != 8 {
		t.Fatalf("origin offset must latch to the first match, got %d", agg.OriginOffset)
	}
}

func TestRecordOriginNoopWhenUnset(t *testing.T) {
	agg := &Aggregate{Name: "q"}
	agg.RecordOrigin("a", 4)
	if agg.originSet {
		t.Fatal("an aggregate with no Origin must never latch one")
	}
}

func TestHostRunLifecycle(t *testing.T) {
	agg := &Aggregate{Name: "s"}
	if agg.HostOpen() {
		t.Fatal("a fresh aggregate must start with no open host run")
	}

	agg.OpenHost(8, 4, true, 3)
	if !agg.HostOpen() {
		t.Fatal("expected an open host run after OpenHost")
	}
	if agg.HostWidthBits() != 8 || agg.HostByteBase() != 4 || !agg.HostExplicit() || agg.BitCursor() != 3 {
		t.Fatalf("unexpected host state after OpenHost: width=%d base=%d explicit=%v cursor=%d",
			agg.HostWidthBits(), agg.HostByteBase(), agg.HostExplicit(), agg.BitCursor())
	}

	agg.AdvanceBitCursor(2)
	if agg.BitCursor() != 5 {
		t.Fatalf("bit cursor = %d, want 5", agg.BitCursor())
	}

	agg.PromoteHostWidth(16)
	if agg.HostWidthBits() != 16 || agg.HostByteBase() != 4 || agg.BitCursor() != 5 {
		t.Fatal("promotion must widen the host without moving its base or cursor")
	}

	agg.CloseHost()
	if agg.HostOpen() || agg.HostWidthBits() != 0 || agg.HostByteBase() != 0 || agg.BitCursor() != 0 {
		t.Fatal("CloseHost must fully reset the run state")
	}
}
