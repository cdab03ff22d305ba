package encode

import "errors"

var (
	ErrMultipleRoots = errors.New("document must have exactly one root")
	ErrEncoding      = errors.New("encoding error")
)
