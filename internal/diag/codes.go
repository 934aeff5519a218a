package diag

// Code identifies the kind of a Diagnostic. Codes are grouped into bands by
// the subsystem that raises them, mirroring spec.md §7's error-kind list.
type Code uint16

const (
	UnknownCode Code = 0

	// 1000s: parser/driver-surfaced, passed through the dispatcher untouched.
	SyntaxError Code = 1000
	ParseError  Code = 1001

	// 2000s: aggregate/member/layout faults (Layout Engine, Bitfield Packer).
	MatchEndName          Code = 2000
	NullStructure         Code = 2001
	AddressObjectNotBased Code = 2002
	ZeroLength            Code = 2003
	InvalidUnknownLength  Code = 2004
	InvalidAlignment      Code = 2005
	RecursiveAggregate    Code = 2006

	// 3000s: conditional-compilation faults.
	SymbolNotDefined        Code = 3000
	InvalidConditionalState Code = 3001

	// 4000s: CLI / driver-level faults.
	DuplicateLanguage        Code = 4000
	DuplicateListingQualifer Code = 4001
	InvalidQualifier         Code = 4002
	NoOutput                 Code = 4003
	NoInputFile              Code = 4004
	InputFileOpen            Code = 4005
	OutputFileOpen           Code = 4006
	NoCopyFile               Code = 4007

	// 9000s: fatal.
	Abort     Code = 9000
	ErrorExit Code = 9001
)

var codeNames = map[Code]string{
	UnknownCode:              "UNKNOWN",
	SyntaxError:              "SYNTAXERROR",
	ParseError:               "PARSEERROR",
	MatchEndName:             "MATCHENDNAME",
	NullStructure:            "NULLSTRUCTURE",
	AddressObjectNotBased:    "ADDRESSOBJECTNOTBASED",
	ZeroLength:               "ZEROLENGTH",
	InvalidUnknownLength:     "INVALIDUNKNOWNLENGTH",
	InvalidAlignment:         "INVALIDALIGNMENT",
	RecursiveAggregate:       "RECURSIVEAGGREGATE",
	SymbolNotDefined:         "SYMBOLNOTDEFINED",
	InvalidConditionalState:  "INVALIDCONDITIONALSTATE",
	DuplicateLanguage:        "DUPLICATELANGUAGE",
	DuplicateListingQualifer: "DUPLICATELISTINGQUALIFIER",
	InvalidQualifier:         "INVALIDQUALIFIER",
	NoOutput:                 "NOOUTPUT",
	NoInputFile:              "NOINPUTFILE",
	InputFileOpen:            "INPUTFILEOPEN",
	OutputFileOpen:           "OUTPUTFILEOPEN",
	NoCopyFile:               "NOCOPYFILE",
	Abort:                    "ABORT",
	ErrorExit:                "ERROREXIT",
}

// String renders the code the way spec.md §7 formats it: "%<KIND>".
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}

// Fatal reports whether c belongs to the fatal band (spec.md §4.9/§7):
// memory exhaustion, I/O failure at the backend surface, or a cascaded
// ErrorExit. All other codes are recoverable — the dispatcher returns the
// code but processing continues.
func (c Code) Fatal() bool {
	switch c {
	case Abort, ErrorExit, InputFileOpen, OutputFileOpen, NoCopyFile:
		return true
	default:
		return false
	}
}
