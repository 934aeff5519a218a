package condstate

import (
	"fmt"

	"sdlc/internal/diag"
)

// Error reports an invalid conditional-directive transition (spec.md §4.1
// "Any transition not listed fails with InvalidConditionalState").
type Error struct {
	Code      diag.Code
	Directive string
}

func newError(code diag.Code, directive string) *Error {
	return &Error{Code: code, Directive: directive}
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Directive)
}
