package typeset

// MemberKind discriminates the Member tagged sum (spec.md §3 Member:
// {Item, Subaggregate, Comment}).
type MemberKind uint8

const (
	MemberItem MemberKind = iota
	MemberSubaggregate
	MemberComment
)

// CommentPosition records where a comment sat relative to source lines,
// used only for emission (spec.md §3, §4.6); never participates in layout.
type CommentPosition uint8

const (
	CommentLine CommentPosition = iota
	CommentStart
	CommentMiddle
	CommentEnd
)

// Comment is a free-text Member that carries no layout.
type Comment struct {
	Text     string
	Position CommentPosition
}

// Member is a tagged variant over {Item, Subaggregate, Comment}
// (spec.md §3). Exactly one of ItemData/Subaggregate/CommentData is set,
// selected by Kind; callers switch on Kind rather than checking for nil,
// keeping the match exhaustive.
type Member struct {
	Kind        MemberKind
	ItemData    *Item
	Subaggr     *Aggregate
	CommentData *Comment

	// Filler is non-zero when this member was synthesized by the layout
	// engine or bitfield packer rather than declared in source
	// (spec.md §4.3/§4.4, GLOSSARY "Filler").
	Filler FillerKind
}

// FillerKind distinguishes the two reasons a filler member is synthesized
// (see SPEC_FULL.md §4, grounded on original_source's distinct
// parentAlignment flag).
type FillerKind uint8

const (
	FillerNone FillerKind = iota
	// FillerBitfieldTail pads the unused tail bits of a bitfield host.
	FillerBitfieldTail
	// FillerAlignment rounds an implicit union up to its scalar floor.
	FillerAlignment
)

// Name returns the member's identifier for diagnostics/backtraces, or ""
// for a comment.
func (m *Member) Name() string {
	switch m.Kind {
	case MemberItem:
		if m.ItemData != nil {
			return m.ItemData.Name
		}
	case MemberSubaggregate:
		if m.Subaggr != nil {
			return m.Subaggr.Name
		}
	}
	return ""
}

// Offset returns the member's byte offset, 0 for a comment.
func (m *Member) Offset() int {
	switch m.Kind {
	case MemberItem:
		if m.ItemData != nil {
			return m.ItemData.Offset
		}
	case MemberSubaggregate:
		if m.Subaggr != nil {
			return m.Subaggr.Offset
		}
	}
	return 0
}
