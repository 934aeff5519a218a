// Package layout implements spec.md §4.4's Layout Engine: byte-offset
// assignment, alignment padding, dimension multiplication, union sizing,
// origin tracking, and recursive subaggregate sizing. It delegates bit-
// level packing to internal/bitfield and shares its synthesized filler
// members.
package layout

import (
	"sdlc/internal/bitfield"
	"sdlc/internal/diag"
	"sdlc/internal/typeset"
	"sdlc/internal/value"

	"fortio.org/safecast"
)

// Engine resolves member offsets and aggregate sizes for one module. Align
// is the global alignment cap from the CLI's --align=N flag (spec.md §6);
// 0 packs everything tight, a positive power-of-two caps every member's
// natural alignment at that bound.
type Engine struct {
	Align int
}

// New returns an Engine with the given global alignment cap.
func New(align int) *Engine {
	return &Engine{Align: align}
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

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func byteCeil(bits int) int {
	return (bits + 7) / 8
}

// effectiveAlign resolves an Alignment rule against a natural size, capped
// by the engine's global --align=N (spec.md §4.5 Align/NoAlign/BaseAlign).
func (e *Engine) effectiveAlign(a typeset.Alignment, natural int) int {
	switch a.Kind {
	case typeset.AlignNone:
		return 1
	case typeset.AlignExplicit:
		if a.Explicit > 0 {
			return a.Explicit
		}
		return 1
	default:
		if natural <= 0 {
			return 1
		}
		if e.Align <= 0 {
			return 1
		}
		return minInt(natural, e.Align)
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func scalarFlags(id typeset.TypeID) (charVary, decimalTag bool) {
	tag, ok := id.AsScalar()
	if !ok {
		return false, false
	}
	return tag == value.TagCharVary, tag == value.TagDecimal
}

// AppendMember adds m to agg, assigning its byte offset (and, for a
// bitfield item, delegating to internal/bitfield for its bit offset)
// according to spec.md §4.4 rules 1-5. Comments never participate in
// layout and are appended as-is.
func (e *Engine) AppendMember(agg *typeset.Aggregate, m *typeset.Member) error {
	switch m.Kind {
	case typeset.MemberComment:
		agg.Members = append(agg.Members, m)
		return nil
	case typeset.MemberItem:
		return e.appendItem(agg, m)
	case typeset.MemberSubaggregate:
		return e.appendSubaggregate(agg, m)
	default:
		return nil
	}
}

func (e *Engine) appendItem(agg *typeset.Aggregate, m *typeset.Member) error {
	it := m.ItemData
	tag, _ := it.Type.AsScalar()

	if tag.IsBitfield() {
		if it.LengthBits <= 0 {
			return newError(diag.ZeroLength, it.Name)
		}
		base := agg.Cursor
		align := 1
		if agg.Kind != typeset.AggregateStruct {
			base = 0
		}
		filler := bitfield.Append(agg, it, base, align)
		if filler != nil {
			agg.Members = append(agg.Members, filler)
		}
		agg.Members = append(agg.Members, m)
		agg.RecordOrigin(it.Name, it.Offset)
		if agg.Kind == typeset.AggregateStruct {
			agg.Cursor = agg.HostByteBase() + byteCeil(agg.HostWidthBits())
		}
		return nil
	}

	if agg.HostOpen() {
		if filler := bitfield.Seal(agg); filler != nil {
			agg.Members = append(agg.Members, filler)
		}
	}

	if agg.Kind != typeset.AggregateStruct {
		it.Offset = 0
		agg.Members = append(agg.Members, m)
		agg.RecordOrigin(it.Name, it.Offset)
		return nil
	}

	align := e.effectiveAlign(it.Alignment, it.Size)
	it.Offset = roundUp(agg.Cursor, align)
	agg.Members = append(agg.Members, m)
	agg.RecordOrigin(it.Name, it.Offset)

	charVary, decimalTag := scalarFlags(it.Type)
	agg.Cursor = it.Offset + it.RealSize(charVary, decimalTag)
	return nil
}

func (e *Engine) appendSubaggregate(agg *typeset.Aggregate, m *typeset.Member) error {
	sub := m.Subaggr

	if agg.HostOpen() {
		if filler := bitfield.Seal(agg); filler != nil {
			agg.Members = append(agg.Members, filler)
		}
	}

	if agg.Kind != typeset.AggregateStruct {
		sub.Offset = 0
		agg.Members = append(agg.Members, m)
		agg.RecordOrigin(sub.Name, 0)
		return nil
	}

	align := e.effectiveAlign(sub.Alignment, sub.Size)
	offset := roundUp(agg.Cursor, align)
	sub.Offset = offset
	agg.Members = append(agg.Members, m)
	agg.RecordOrigin(sub.Name, offset)

	card := 1
	if sub.Dimension != nil {
		if n := sub.Dimension.Cardinality(); n > 0 {
			c, err := safecast.Conv[int](n)
			if err == nil && c >= 0 {
				card = c
			}
		}
	}
	agg.Cursor = offset + sub.Size*card
	return nil
}
