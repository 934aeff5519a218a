package dispatch

import (
	"fmt"

	"sdlc/internal/diag"
)

// Error is the dispatcher's own return value (spec.md §4.9): a result
// code plus the insert the caller can render without re-walking state.
// Fatal codes (diag.Code.Fatal) mean the caller should unwind the
// module; every other code is recoverable and the parser may continue.
type Error struct {
	Code   diag.Code
	Insert string
}

func newDispatchError(code diag.Code, insert string) *Error {
	return &Error{Code: code, Insert: insert}
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Insert == "" {
		return e.Code.String()
	}
	return fmt.Sprintf("%s, %s", e.Code, e.Insert)
}

// Fatal reports whether the caller must unwind the module (spec.md §4.9).
func (e *Error) Fatal() bool {
	return e != nil && e.Code.Fatal()
}
