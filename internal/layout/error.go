package layout

import (
	"fmt"
	"strings"

	"sdlc/internal/diag"
)

// Error is a layout-engine fault: a diag.Code plus the small fixed-arity
// insert vector spec.md §7 says the message formatter renders.
type Error struct {
	Code    diag.Code
	Inserts []string
}

func newError(code diag.Code, inserts ...string) *Error {
	return &Error{Code: code, Inserts: inserts}
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if len(e.Inserts) == 0 {
		return e.Code.String()
	}
	return fmt.Sprintf("%s, %s", e.Code, strings.Join(e.Inserts, ", "))
}
