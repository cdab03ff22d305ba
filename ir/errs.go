package ir

import (
	"errors"
)

var (
	ErrNotDocument = errors.New("not a single-root document")
	ErrType        = errors.New("type error")
	ErrJSON        = errors.New("json error")
)
