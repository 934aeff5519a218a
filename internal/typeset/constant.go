package typeset

import "sdlc/internal/value"

// Constant is a named value (spec.md §3): either numeric (with radix) or
// string, with an optional inline comment and type-name override.
type Constant struct {
	Name     string
	Prefix   string
	Tag      string
	Comment  string
	TypeName string
	Value    value.Value
}
