package typeset

// AlignmentKind selects how a member/item/aggregate is aligned (spec.md §4.5
// options table: Align/NoAlign/BaseAlign N).
type AlignmentKind uint8

const (
	// AlignNatural pads to the entity's own natural size ("Align").
	AlignNatural AlignmentKind = iota
	// AlignNone packs with no padding ("NoAlign").
	AlignNone
	// AlignExplicit pads to a caller-specified power-of-two ("BaseAlign N").
	AlignExplicit
)

// Alignment is an alignment rule attached to an item, member, or aggregate.
type Alignment struct {
	Kind     AlignmentKind
	Explicit int // bytes, only meaningful when Kind == AlignExplicit
}

// Resolve returns the effective alignment in bytes given the entity's own
// natural size.
func (a Alignment) Resolve(natural int) int {
	switch a.Kind {
	case AlignNone:
		return 1
	case AlignExplicit:
		if a.Explicit > 0 {
			return a.Explicit
		}
		return 1
	default:
		if natural > 0 {
			return natural
		}
		return 1
	}
}
