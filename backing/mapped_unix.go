//go:build unix

package backing

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Mapped is a Source backed by an anonymous private mapping. The whole
// reservation is mapped PROT_NONE up front so its address never changes;
// pages become readable and writable only as the break crosses them.
type Mapped struct {
	region    []byte
	brk       brk
	committed int
	page      int
}

// NewMapped reserves reserve bytes of address space, rounded up to a page.
func NewMapped(reserve int) (*Mapped, error) {
	if reserve <= 0 {
		return nil, ErrInvalidSize
	}
	page := unix.Getpagesize()
	reserve = alignUp(reserve, page)

	region, err := unix.Mmap(-1, 0, reserve, unix.PROT_NONE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("mapped: reserve %d bytes: %w", reserve, err)
	}
	return &Mapped{
		region: region,
		brk:    brk{reserve: reserve},
		page:   page,
	}, nil
}

// Extend implements Source. Pages up to the new break are committed with
// mprotect before the break moves.
func (m *Mapped) Extend(n int) (int, error) {
	if m.region == nil {
		return 0, ErrClosed
	}
	if err := m.brk.check(n); err != nil {
		return 0, fmt.Errorf("mapped: extend %d bytes at %d/%d: %w", n, m.brk.cur, m.brk.reserve, err)
	}

	if end := m.brk.cur + n; end > m.committed {
		next := min(alignUp(end, m.page), m.brk.reserve)
		if err := unix.Mprotect(m.region[m.committed:next], unix.PROT_READ|unix.PROT_WRITE); err != nil {
			return 0, fmt.Errorf("mapped: commit [%d,%d): %w: %w", m.committed, next, ErrNoMemory, err)
		}
		m.committed = next
	}

	return m.brk.advance(n)
}

// Bytes implements Source.
func (m *Mapped) Bytes() []byte {
	if m.region == nil {
		return nil
	}
	return m.region[:m.brk.cur]
}

// Brk returns the current break.
func (m *Mapped) Brk() int { return m.brk.cur }

// Committed returns how many bytes are currently readable and writable.
func (m *Mapped) Committed() int { return m.committed }

// Close unmaps the reservation. Every slice obtained from the source becomes
// invalid.
func (m *Mapped) Close() error {
	if m.region == nil {
		return nil
	}
	err := unix.Munmap(m.region)
	m.region = nil
	m.committed = 0
	return err
}
