package typeset

// Declare is a type alias (spec.md §3): id, resolved prefix, tag, base
// type reference, signedness, and the size derived from that base type.
type Declare struct {
	ID       TypeID
	Name     string
	Prefix   string
	Tag      string
	Unsigned bool
	Base     TypeID // the aliased scalar or user TypeID
	Size     int
}
