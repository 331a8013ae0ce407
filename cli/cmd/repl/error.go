package repl

import "errors"

// Sentinel errors.
var (
	ErrOutOfBounds = errors.New("index out of range")
	ErrNoMenu      = errors.New("no menu to evaluate against")
)
