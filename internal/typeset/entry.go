package typeset

// PassMechanism is how a parameter is passed to an Entry (spec.md §3).
type PassMechanism uint8

const (
	ByValue PassMechanism = iota
	ByReference
)

// Parameter is one Entry parameter (spec.md §3).
type Parameter struct {
	Name      string
	Type      TypeID
	Mechanism PassMechanism
	In        bool
	Out       bool
	Default   *string // nil when no default value was given
	Dimension *string // named dimension, nil when scalar
	TypeName  string
	Optional  bool
	List      bool
	// StarLength marks a `CHARACTER *` parameter. Permitted only here
	// (spec.md §9 Open Question resolution); anywhere else it is
	// InvalidUnknownLength.
	StarLength bool
}

// ReturnDescriptor describes an Entry's return value.
type ReturnDescriptor struct {
	Type     TypeID
	Unsigned bool
	Named    string // optional named result identifier
}

// Entry is a function/procedure signature (spec.md §3).
type Entry struct {
	ID       TypeID
	Name     string
	Alias    string
	Linkage  string
	TypeName string
	Variadic bool
	Return   ReturnDescriptor
	Params   []Parameter
}
