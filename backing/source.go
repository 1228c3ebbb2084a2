package backing

import "errors"

var (
	// ErrNoMemory indicates the source cannot commit the requested bytes.
	ErrNoMemory = errors.New("backing: out of memory")

	// ErrInvalidSize indicates a non-positive extension or reservation size.
	ErrInvalidSize = errors.New("backing: size must be positive")

	// ErrClosed indicates use of a source after Close.
	ErrClosed = errors.New("backing: source closed")
)

// Source is the address-space extension primitive an allocator draws from.
type Source interface {
	// Extend commits n more bytes at the break and returns the byte offset of
	// the first new byte.
	Extend(n int) (int, error)

	// Bytes returns every committed byte, from offset 0 to the break.
	Bytes() []byte
}

// brk is the bookkeeping shared by the sources: a fixed reservation and a
// break that moves toward it.
type brk struct {
	reserve int
	cur     int
}

// check reports whether n more bytes fit in the reservation.
func (b *brk) check(n int) error {
	if n <= 0 {
		return ErrInvalidSize
	}
	if n > b.reserve-b.cur {
		return ErrNoMemory
	}
	return nil
}

// advance moves the break by n bytes, returning the old break.
func (b *brk) advance(n int) (int, error) {
	if err := b.check(n); err != nil {
		return 0, err
	}
	old := b.cur
	b.cur += n
	return old, nil
}

// alignUp rounds n up to a multiple of the power-of-two align.
func alignUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}
