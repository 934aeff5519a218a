// Package typeset implements spec.md §3/§4's Type Registry: three
// disjoint, monotonically-issued TypeID namespaces (declares, items,
// aggregates) plus a fourth for enums, each storing resolved attributes
// keyed by a stable TypeID, and the resolved entity types themselves
// (Declare, Item, Aggregate, Member, Enumeration, Entry, Constant).
package typeset

import "sdlc/internal/value"

// TypeID is a 32-bit id drawn from one of four disjoint, contiguous
// ranges (spec.md §3). Scalar type tags occupy the reserved low range
// below DeclareMin so that a ScalarTag can be embedded directly as a
// TypeID without a registry lookup.
type TypeID uint32

// NoTypeID marks the absence of a type reference.
const NoTypeID TypeID = 0

// Namespace ranges. Each namespace's ids are monotonically issued from
// its Min and never reused within a module (spec.md §3 invariant).
const (
	ScalarMin TypeID = 1
	ScalarMax TypeID = 999

	DeclareMin TypeID = 1_000
	DeclareMax TypeID = 999_999

	ItemMin TypeID = 1_000_000
	ItemMax TypeID = 4_999_999

	AggregateMin TypeID = 5_000_000
	AggregateMax TypeID = 9_999_999

	EnumMin TypeID = 10_000_000
	EnumMax TypeID = 14_999_999
)

// Namespace identifies which of the four TypeID ranges an id falls in.
type Namespace uint8

const (
	NSInvalid Namespace = iota
	NSScalar
	NSDeclare
	NSItem
	NSAggregate
	NSEnum
	// NSConstant and NSEntry back Registry.Unique's duplicate-name check
	// only; neither Constant nor Entry is TypeID-addressable (spec.md §3
	// lists no range for either), so they carry no Min/Max pair above.
	NSConstant
	NSEntry
)

// Namespace classifies id by range membership.
func (id TypeID) Namespace() Namespace {
	switch {
	case id >= ScalarMin && id <= ScalarMax:
		return NSScalar
	case id >= DeclareMin && id <= DeclareMax:
		return NSDeclare
	case id >= ItemMin && id <= ItemMax:
		return NSItem
	case id >= AggregateMin && id <= AggregateMax:
		return NSAggregate
	case id >= EnumMin && id <= EnumMax:
		return NSEnum
	default:
		return NSInvalid
	}
}

// ScalarTypeID embeds a base ScalarTag as a TypeID, valid because every
// ScalarTag value fits under ScalarMax.
func ScalarTypeID(tag value.ScalarTag) TypeID { return TypeID(tag) }

// AsScalar recovers the ScalarTag embedded by ScalarTypeID, when id is in
// the scalar namespace.
func (id TypeID) AsScalar() (value.ScalarTag, bool) {
	if id.Namespace() != NSScalar {
		return value.TagInvalid, false
	}
	return value.ScalarTag(id), true
}
