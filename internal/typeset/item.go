package typeset

import (
	"sdlc/internal/symbols"

	"fortio.org/safecast"
)

// Item is a named data slot (spec.md §3): a scalar or user-type reference,
// with optional dimension, alignment, storage flags, and type-specific
// extras (length for char/char_vary, precision/scale for decimal, subtype
// for bitfields and pointer targets).
type Item struct {
	ID        TypeID
	Name      string
	Prefix    string
	Tag       string
	Type      TypeID // the scalar or user TypeID this item holds
	Unsigned  bool
	Size      int // natural size in bytes, before dimension/length adjustment
	Alignment Alignment
	Dimension *symbols.Dimension // nil when the item is not an array

	Storage StorageFlags

	// Length is the character count for CHARACTER/CHARACTER_VARY items.
	Length int
	// Precision/Scale describe a DECIMAL item's digit count and scale.
	Precision int
	Scale     int

	// Subtype names the bitfield host width (when Type's scalar tag
	// IsBitfield()) or the pointer target aggregate (when Type's scalar tag
	// IsPointerFamily()).
	Subtype TypeID

	// --- assigned by the layout engine / bitfield packer ---

	// Offset is the byte offset within the enclosing aggregate.
	Offset int
	// BitOffset, LengthBits, HostWidth, Mask, SizedExplicitly are only
	// meaningful when this item is a bitfield member (spec.md §3 Member).
	BitOffset       int
	LengthBits      int
	HostWidth       int
	Mask            bool
	SizedExplicitly bool
}

// RealSize returns the "real size" spec.md §4.4 rule 1 defines: natural
// size times (length, precision, or 1), plus the char_vary length-prefix
// and decimal sign-nibble adjustments, times the dimension cardinality.
func (it *Item) RealSize(charVary, decimalTag bool) int {
	mult := 1
	if it.Length > 0 {
		mult = it.Length
	} else if it.Precision > 0 {
		mult = it.Precision
	}
	size := it.Size * mult
	if charVary {
		size += 2
	}
	if decimalTag {
		size++
	}
	if it.Dimension != nil {
		if n := it.Dimension.Cardinality(); n > 0 {
			mult, err := safecast.Conv[int](n)
			if err != nil || mult < 0 {
				mult = 0
			}
			size *= mult
		}
	}
	return size
}
