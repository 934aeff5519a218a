package typeset

import "sdlc/internal/value"

// EnumMember is one value of an Enumeration (spec.md §3).
type EnumMember struct {
	Name     string
	Value    int64
	Explicit bool // true when the value was given in source, not auto-incremented
	Comment  string
}

// Enumeration is an enum declaration (spec.md §3).
type Enumeration struct {
	ID      TypeID
	Name    string
	Prefix  string
	Tag     string
	Typedef bool
	Members []EnumMember
}

// NextValue computes the value for a new member given the prior one,
// applying the auto-increment-by-1 default for enumerations (spec.md §4.5
// "Constant list parsing").
func (e *Enumeration) NextValue() int64 {
	if len(e.Members) == 0 {
		return 0
	}
	return e.Members[len(e.Members)-1].Value + 1
}

// ValueWidth returns the smallest scalar tag that can represent the
// enumeration's widest member (used by backends; the core only exposes
// the raw values).
func (e *Enumeration) ValueWidth() value.ScalarTag {
	var maxAbs int64
	for _, m := range e.Members {
		v := m.Value
		if v < 0 {
			v = -v
		}
		if v > maxAbs {
			maxAbs = v
		}
	}
	switch {
	case maxAbs < 1<<7:
		return value.TagByte
	case maxAbs < 1<<15:
		return value.TagWord
	default:
		return value.TagLong
	}
}
