package typeset

import (
	"fmt"

	"sdlc/internal/symbols"
)

// AggregateKind is struct, union, or the scalar-coerced implicit union
// (spec.md §3 GLOSSARY "Implicit union").
type AggregateKind uint8

const (
	AggregateStruct AggregateKind = iota
	AggregateUnion
	AggregateImplicitUnion
)

// Aggregate is a structure/union definition with ordered members and a
// computed layout (spec.md §3).
type Aggregate struct {
	ID     TypeID
	Name   string
	Prefix string
	Marker string
	Tag    string

	// Based is the pointer name required when this aggregate is targeted
	// by an address-family item (spec.md §3 invariant, §7 AddressObjectNotBased).
	Based string

	Kind AggregateKind
	// ImplicitScalar is the coercing scalar type when Kind ==
	// AggregateImplicitUnion (e.g. "STRUCTURE LONGWORD").
	ImplicitScalar TypeID

	Alignment Alignment

	// Origin names a member whose offset becomes the aggregate's logical
	// zero (spec.md §4.4 "Origin"). Offsets stay source-literal; see
	// DESIGN.md for the Open Question resolution.
	Origin       string
	OriginOffset int
	originSet    bool

	Dimension *symbols.Dimension
	Storage   StorageFlags

	Size int
	// Offset is this aggregate's own byte offset when it appears as a
	// subaggregate Member within a parent (spec.md §3 Member.Subaggregate
	// "mirror into subaggregate.offset").
	Offset int

	// Cursor is the next free byte offset for a struct-kind aggregate
	// while it is being populated (internal/layout's running offset,
	// spec.md §4.4 rule 2). Unused for union/implicit-union kinds, where
	// every member shares offset 0.
	Cursor int

	Members []*Member

	Parent *Aggregate // nil for a top-level aggregate

	// --- bitfield packer scratch state, valid only while open ---
	bitCursor     int // current bit offset within the open host run
	hostWidth     int // bit width of the open host run, 0 when none is open
	hostByteBase  int // byte offset at which the open host run starts
	hostExplicit  bool
	fillerCounter int
}

// RecordOrigin sets the origin offset the first time a member matching
// Origin is appended (spec.md §4.4 "Origin").
func (a *Aggregate) RecordOrigin(name string, offset int) {
	if a.originSet || name == "" || name != a.Origin {
		return
	}
	a.OriginOffset = offset
	a.originSet = true
}

// NextFillerName returns the next "filler_NNN" identifier and advances the
// per-aggregate counter (SPEC_FULL.md §4, grounded on original_source's
// context->fillerCount).
func (a *Aggregate) NextFillerName() string {
	n := a.fillerCounter
	a.fillerCounter++
	return fillerName(n)
}

func fillerName(n int) string {
	return fmt.Sprintf("filler_%03d", n)
}

// HostOpen reports whether a contiguous bitfield host run is currently
// open (internal/bitfield's packer state, spec.md §4.3).
func (a *Aggregate) HostOpen() bool { return a.hostWidth > 0 }

// HostWidthBits returns the open host run's width in bits, 0 if none is open.
func (a *Aggregate) HostWidthBits() int { return a.hostWidth }

// HostByteBase returns the byte offset at which the open host run starts.
func (a *Aggregate) HostByteBase() int { return a.hostByteBase }

// HostExplicit reports whether the open host run's width was fixed by an
// explicitly sized bitfield (spec.md §4.3 rule 1), and so cannot be
// promoted further.
func (a *Aggregate) HostExplicit() bool { return a.hostExplicit }

// BitCursor returns the next free bit offset within the open host run.
func (a *Aggregate) BitCursor() int { return a.bitCursor }

// OpenHost starts a new bitfield host run at byteBase with the given
// width, advancing the cursor past the first member's length.
func (a *Aggregate) OpenHost(widthBits, byteBase int, explicit bool, cursor int) {
	a.hostWidth = widthBits
	a.hostByteBase = byteBase
	a.hostExplicit = explicit
	a.bitCursor = cursor
}

// AdvanceBitCursor moves the cursor forward by n bits within the open run.
func (a *Aggregate) AdvanceBitCursor(n int) { a.bitCursor += n }

// PromoteHostWidth widens the open run to widthBits without moving its
// byte base or cursor (spec.md §4.3 "Adaptive promotion").
func (a *Aggregate) PromoteHostWidth(widthBits int) { a.hostWidth = widthBits }

// CloseHost clears the open-run state once it has been sealed.
func (a *Aggregate) CloseHost() {
	a.hostWidth = 0
	a.hostByteBase = 0
	a.hostExplicit = false
	a.bitCursor = 0
}
