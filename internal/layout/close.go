package layout

import (
	"unicode"

	"sdlc/internal/bitfield"
	"sdlc/internal/diag"
	"sdlc/internal/typeset"
	"sdlc/internal/value"
)

// CloseAggregate computes agg's final size (spec.md §4.4 "Aggregate size
// computation") and returns the size constant plus any bitfield mask/size
// constants its direct members emit (spec.md §4.3 "Mask and size
// constants"). The dispatcher is responsible for registering the returned
// constants.
func (e *Engine) CloseAggregate(agg *typeset.Aggregate) ([]typeset.Constant, error) {
	if !hasContent(agg) {
		return nil, newError(diag.NullStructure, agg.Name)
	}

	switch agg.Kind {
	case typeset.AggregateUnion, typeset.AggregateImplicitUnion:
		e.closeUnion(agg)
	default:
		e.closeStruct(agg)
	}

	lowercase := isAllLower(agg.Name)
	consts := bitfield.Constants(agg, lowercase)
	sizeTag := "S"
	if lowercase {
		sizeTag = "s"
	}
	consts = append(consts, typeset.Constant{
		Name:  agg.Name,
		Tag:   sizeTag,
		Value: value.NewNumeric(int64(agg.Size), true, value.RadixDecimal, 4),
	})
	return consts, nil
}

func hasContent(agg *typeset.Aggregate) bool {
	for _, m := range agg.Members {
		if m.Kind != typeset.MemberComment {
			return true
		}
	}
	return false
}

func isAllLower(name string) bool {
	seenLetter := false
	for _, r := range name {
		if unicode.IsUpper(r) {
			return false
		}
		if unicode.IsLetter(r) {
			seenLetter = true
		}
	}
	return seenLetter
}

func (e *Engine) closeStruct(agg *typeset.Aggregate) {
	if agg.HostOpen() {
		if filler := bitfield.Seal(agg); filler != nil {
			agg.Members = append(agg.Members, filler)
		}
	}
	agg.Size = agg.Cursor
}

func (e *Engine) closeUnion(agg *typeset.Aggregate) {
	scalarFloor := 0
	if agg.Kind == typeset.AggregateImplicitUnion {
		if tag, ok := agg.ImplicitScalar.AsScalar(); ok {
			scalarFloor = tag.Size()
		}
	}

	if agg.HostOpen() {
		if scalarFloor > 0 && scalarFloor*8 > agg.BitCursor() {
			if filler := bitfield.SealToWidth(agg, scalarFloor*8); filler != nil {
				agg.Members = append(agg.Members, filler)
			}
		} else if filler := bitfield.Seal(agg); filler != nil {
			agg.Members = append(agg.Members, filler)
		}
	}

	size := 0
	for _, m := range agg.Members {
		switch m.Kind {
		case typeset.MemberItem:
			it := m.ItemData
			var s int
			if tag, ok := it.Type.AsScalar(); ok && tag.IsBitfield() {
				s = byteCeil(it.HostWidth)
			} else {
				cv, dec := scalarFlags(it.Type)
				s = it.RealSize(cv, dec)
			}
			size = maxInt(size, s)
		case typeset.MemberSubaggregate:
			sub := m.Subaggr
			card := 1
			if sub.Dimension != nil {
				if n := sub.Dimension.Cardinality(); n > 0 {
					card = int(n)
				}
			}
			size = maxInt(size, sub.Size*card)
		}
	}

	agg.Size = maxInt(size, scalarFloor)
}
