package osmchange

import (
	"errors"
	"fmt"
)

var (
	ErrDiff              = errors.New("bad osmChange")
	ErrBadXML            = fmt.Errorf("%w: bad xml", ErrDiff)
	ErrUnsupportedAction = fmt.Errorf("%w: unsupported action", ErrDiff)
	ErrCreateBadID       = fmt.Errorf("%w: create with positive id", ErrDiff)
	ErrBadVersion        = fmt.Errorf("%w: bad version", ErrDiff)
)

// Error carries the client-facing message of a rejected upload. It unwraps
// to one of the sentinels above.
type Error struct {
	Err    error
	Detail string
}

func (e *Error) Error() string {
	return e.Detail
}

func (e *Error) Unwrap() error {
	return e.Err
}

func badXML(name string, format string, args ...any) error {
	return &Error{
		Err:    ErrBadXML,
		Detail: fmt.Sprintf("Cannot parse valid %s from xml string: %s", name, fmt.Sprintf(format, args...)),
	}
}

func unsupportedAction(action string) error {
	return &Error{
		Err:    ErrUnsupportedAction,
		Detail: fmt.Sprintf("Unknown action %s, choices are create, modify, delete", action),
	}
}

func createBadID(t ElementType) error {
	detail := fmt.Sprintf("Cannot create %s: data is invalid.", t)
	if t == Relation {
		detail = "Cannot create relation: data or member data is invalid."
	}
	return &Error{Err: ErrCreateBadID, Detail: detail}
}

func badVersion(e *Element) error {
	return &Error{
		Err:    ErrBadVersion,
		Detail: fmt.Sprintf("Update action requires version >= 1, got %d", e.Version-1),
	}
}
