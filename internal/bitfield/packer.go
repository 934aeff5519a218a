// Package bitfield implements spec.md §4.3's Bitfield Packer: bit-offset
// assignment within a contiguous run of bitfield members, adaptive host-
// width promotion, and the size/mask constants an aggregate's bitfields
// emit when it closes.
package bitfield

import (
	"sdlc/internal/typeset"
	"sdlc/internal/value"
)

// Widths is the adaptive-promotion ladder (DESIGN.md Open Question
// decision: monotone, smallest-sufficient width, tested at the 64-bit
// boundary).
var Widths = []int{8, 16, 32, 64, 128}

func promote(needBits int) int {
	for _, w := range Widths {
		if needBits <= w {
			return w
		}
	}
	return Widths[len(Widths)-1]
}

func byteCeil(bits int) int {
	return (bits + 7) / 8
}

func roundUp(n, align int) int {
	if align <= 1 {
		return n
	}
	if r := n % align; r != 0 {
		return n + (align - r)
	}
	return n
}

// Append places it, a bitfield item, within agg's open host run, starting
// a fresh run at byteBase (rounded up to align) when none is open, or
// extending/promoting the current one (spec.md §4.3 rules 2-3 and
// "Adaptive promotion"). Returns a synthesized tail filler Member when an
// incompatible run had to be sealed first; the caller is responsible for
// appending both the filler (if non-nil) and m to agg.Members, in order.
func Append(agg *typeset.Aggregate, it *typeset.Item, byteBase, align int) *typeset.Member {
	width := 0
	if it.SizedExplicitly {
		width = it.HostWidth
		if width == 0 {
			width = promote(it.LengthBits)
		}
	}

	if !agg.HostOpen() {
		openRun(agg, it, byteBase, align, width)
		return nil
	}

	sameExplicitWidth := it.SizedExplicitly && agg.HostExplicit() && width == agg.HostWidthBits()
	bothUnsized := !it.SizedExplicitly && !agg.HostExplicit()

	switch {
	case sameExplicitWidth && agg.BitCursor()+it.LengthBits <= agg.HostWidthBits():
		extend(agg, it)
		return nil
	case bothUnsized && agg.BitCursor()+it.LengthBits <= agg.HostWidthBits():
		extend(agg, it)
		return nil
	case bothUnsized:
		promoteRun(agg, it.LengthBits)
		extend(agg, it)
		return nil
	default:
		filler := Seal(agg)
		openRun(agg, it, byteBase, align, width)
		return filler
	}
}

func openRun(agg *typeset.Aggregate, it *typeset.Item, byteBase, align, width int) {
	if width <= 0 {
		width = promote(it.LengthBits)
	}
	base := roundUp(byteBase, maxInt(align, 1))
	agg.OpenHost(width, base, it.SizedExplicitly, 0)
	extend(agg, it)
}

func extend(agg *typeset.Aggregate, it *typeset.Item) {
	it.HostWidth = agg.HostWidthBits()
	it.BitOffset = agg.BitCursor()
	it.Offset = agg.HostByteBase()
	agg.AdvanceBitCursor(it.LengthBits)
}

// promoteRun widens the currently open, all-unsized run to the smallest
// width in Widths that fits every member already in it plus addBits more
// (spec.md §4.3 "Adaptive promotion"). Bit offsets of members already
// placed are preserved; only the host width changes.
func promoteRun(agg *typeset.Aggregate, addBits int) {
	sum := addBits
	base := agg.HostByteBase()
	for i := len(agg.Members) - 1; i >= 0; i-- {
		m := agg.Members[i]
		if m.Kind != typeset.MemberItem || m.ItemData == nil {
			break
		}
		it := m.ItemData
		if it.Offset != base || it.SizedExplicitly {
			break
		}
		sum += it.LengthBits
	}
	width := promote(sum)
	if width < agg.HostWidthBits() {
		width = agg.HostWidthBits()
	}
	agg.PromoteHostWidth(width)
	for i := len(agg.Members) - 1; i >= 0; i-- {
		m := agg.Members[i]
		if m.Kind != typeset.MemberItem || m.ItemData == nil {
			break
		}
		it := m.ItemData
		if it.Offset != base || it.SizedExplicitly {
			break
		}
		it.HostWidth = width
	}
}

// Seal closes the currently open host run, if any, synthesizing a tail
// filler member for its unused bits when the parent is not a union
// (spec.md §4.3 rule 4). Returns nil when no run is open or no bits
// remain.
func Seal(agg *typeset.Aggregate) *typeset.Member {
	if !agg.HostOpen() {
		return nil
	}
	width := agg.HostWidthBits()
	base := agg.HostByteBase()
	remaining := width - agg.BitCursor()
	bitOffset := agg.BitCursor()
	agg.CloseHost()

	if remaining <= 0 || agg.Kind == typeset.AggregateUnion {
		return nil
	}
	filler := &typeset.Item{
		Name:            agg.NextFillerName(),
		Type:            typeset.ScalarTypeID(value.TagBitfield),
		HostWidth:       width,
		BitOffset:       bitOffset,
		LengthBits:      remaining,
		Offset:          base,
		SizedExplicitly: true,
	}
	return &typeset.Member{Kind: typeset.MemberItem, ItemData: filler, Filler: typeset.FillerBitfieldTail}
}

// SealToWidth forcibly widens the currently open run to exactly widthBits
// and emits a filler for the remainder regardless of the parent's kind,
// used only for an implicit union's scalar-floor padding (spec.md §4.4
// "Aggregate size computation", union case; SPEC_FULL.md §4 FillerAlignment).
func SealToWidth(agg *typeset.Aggregate, widthBits int) *typeset.Member {
	if !agg.HostOpen() {
		return nil
	}
	base := agg.HostByteBase()
	bitOffset := agg.BitCursor()
	remaining := widthBits - bitOffset
	agg.CloseHost()
	if remaining <= 0 {
		return nil
	}
	filler := &typeset.Item{
		Name:            agg.NextFillerName(),
		Type:            typeset.ScalarTypeID(value.TagBitfield),
		HostWidth:       widthBits,
		BitOffset:       bitOffset,
		LengthBits:      remaining,
		Offset:          base,
		SizedExplicitly: true,
	}
	return &typeset.Member{Kind: typeset.MemberItem, ItemData: filler, Filler: typeset.FillerAlignment}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Constants returns the size (and, when requested, mask) constants an
// aggregate's direct bitfield members emit on close (spec.md §4.3 "Mask
// and size constants"). lowercase selects the "s"/"m" tag case to match
// the case of the host id.
func Constants(agg *typeset.Aggregate, lowercase bool) []typeset.Constant {
	sizeTag, maskTag := "S", "M"
	if lowercase {
		sizeTag, maskTag = "s", "m"
	}
	var out []typeset.Constant
	for _, m := range agg.Members {
		if m.Kind != typeset.MemberItem || m.ItemData == nil || m.Filler != typeset.FillerNone {
			continue
		}
		it := m.ItemData
		tag, ok := it.Type.AsScalar()
		if !ok || !tag.IsBitfield() {
			continue
		}
		out = append(out, typeset.Constant{
			Name:  it.Name,
			Tag:   sizeTag,
			Value: value.NewNumeric(int64(it.LengthBits), true, value.RadixDecimal, 4),
		})
		if it.Mask {
			out = append(out, typeset.Constant{
				Name:  it.Name,
				Tag:   maskTag,
				Value: value.Mask(it.LengthBits, it.BitOffset, byteCeil(it.HostWidth)),
			})
		}
	}
	return out
}
