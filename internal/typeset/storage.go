package typeset

// StorageFlags are the storage-class bits an item or aggregate may carry
// (spec.md §3, §4.5 options table: COMMON/GLOBAL/TYPEDEF).
type StorageFlags uint8

const (
	StorageCommon StorageFlags = 1 << iota
	StorageGlobal
	StorageTypedef
)

// Has reports whether f includes flag.
func (f StorageFlags) Has(flag StorageFlags) bool { return f&flag != 0 }
