package parse

import (
	"errors"
	"fmt"
)

var (
	ErrMalformed   = errors.New("malformed xml")
	ErrInputTooBig = errors.New("input too big")
)

// SyntaxError locates a well-formedness violation. It unwraps to
// ErrMalformed.
type SyntaxError struct {
	Line   int
	Col    int
	Offset int64
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s at %d:%d", ErrMalformed, e.Msg, e.Line, e.Col)
}

func (e *SyntaxError) Unwrap() error {
	return ErrMalformed
}
