package alloc

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSpace indicates that no free block was large enough and the source could not grow.
	ErrNoSpace = errors.New("alloc: out of memory")

	// ErrBadRef indicates a reference that cannot name a block in this allocator.
	ErrBadRef = errors.New("alloc: bad block reference")

	// ErrNegativeSize indicates a negative allocation request.
	ErrNegativeSize = errors.New("alloc: negative size")

	// ErrTooLarge indicates a request whose unit count cannot be addressed.
	ErrTooLarge = errors.New("alloc: request too large")

	// ErrBadRegion indicates the source returned a region the allocator cannot use
	// (unaligned, overlapping an earlier region, or beyond the addressable range).
	ErrBadRegion = errors.New("alloc: unusable region from source")

	// ErrNilSource indicates New was called without a backing source.
	ErrNilSource = errors.New("alloc: nil source")
)

// InvariantError describes a free-list corruption found by Verify.
type InvariantError struct {
	Unit uint32 // header unit where the violation was observed
	Msg  string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("alloc: invariant violation at unit %d: %s", e.Unit, e.Msg)
}

func invariantf(unit uint32, format string, args ...any) *InvariantError {
	return &InvariantError{Unit: unit, Msg: fmt.Sprintf(format, args...)}
}
