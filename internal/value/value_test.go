package value

import "testing"

func TestScalarSizes(t *testing.T) {
	cases := []struct {
		tag  ScalarTag
		size int
		tag2 string
	}{
		{TagByte, 1, "B"},
		{TagWord, 2, "W"},
		{TagLong, 4, "L"},
		{TagQuad, 8, "Q"},
		{TagOcta, 16, "O"},
		{TagChar, 1, "C"},
		{TagPtr, 8, "PS"},
	}
	for _, c := range cases {
		if got := c.tag.Size(); got != c.size {
			t.Errorf("%v size = %d, want %d", c.tag, got, c.size)
		}
		if got := c.tag.DefaultTag(); got != c.tag2 {
			t.Errorf("%v tag = %q, want %q", c.tag, got, c.tag2)
		}
	}
}

func TestIsBitfield(t *testing.T) {
	if !TagBitfield.IsBitfield() || !TagBitfieldQ.IsBitfield() {
		t.Fatal("expected bitfield variants to report true")
	}
	if TagByte.IsBitfield() {
		t.Fatal("byte is not a bitfield")
	}
}

func TestMask(t *testing.T) {
	m := Mask(3, 5, 2)
	if m.Numeric != 0b1110_0000 {
		t.Fatalf("mask = %#x, want %#x", m.Numeric, 0b1110_0000)
	}
	if m.Radix != RadixHex {
		t.Fatalf("mask radix = %v, want hex", m.Radix)
	}
}

func TestMaskFullWidth(t *testing.T) {
	m := Mask(64, 0, 8)
	if uint64(m.Numeric) != ^uint64(0) {
		t.Fatalf("mask = %#x, want all ones", uint64(m.Numeric))
	}
}
