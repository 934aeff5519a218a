package typeset

import "testing"

func TestMemberNameAndOffsetByKind(t *testing.T) {
	item := &Member{Kind: MemberItem, ItemData: &Item{Name: "count", Offset: 4}}
	if item.Name() != "count" || item.Offset() != 4 {
		t.Fatalf("item member = %q, %d, want count, 4", item.Name(), item.Offset())
	}

	sub := &Member{Kind: MemberSubaggregate, Subaggr: &Aggregate{Name: "inner", Offset: 8}}
	if sub.Name() != "inner" || sub.Offset() != 8 {
		t.Fatalf("subaggregate member = %q, %d, want inner, 8", sub.Name(), sub.Offset())
	}

	comment := &Member{Kind: MemberComment, CommentData: &Comment{Text: "hello"}}
	if comment.Name() != "" || comment.Offset() != 0 {
		t.Fatalf("comment member = %q, %d, want empty, 0", comment.Name(), comment.Offset())
	}
}

func TestFillerKindDefaultsToNone(t *testing.T) {
	m := &Member{Kind: MemberItem, ItemData: &Item{Name: "x"}}
	if m.Filler != FillerNone {
		t.Fatalf("filler kind = %v, want FillerNone", m.Filler)
	}
}
