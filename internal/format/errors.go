package format

import "errors"

var (
	// ErrTruncated indicates a header or payload extends past the arena.
	ErrTruncated = errors.New("format: block extends past arena")
	// ErrEmptyBlock indicates a header whose size cannot hold even itself.
	ErrEmptyBlock = errors.New("format: zero-size block")
)
