//go:build !unix

package backing

import "fmt"

// Mapped reserves a Go slice on platforms without mmap.
type Mapped struct {
	region []byte
	brk    brk
}

// NewMapped reserves reserve bytes.
func NewMapped(reserve int) (*Mapped, error) {
	if reserve <= 0 {
		return nil, ErrInvalidSize
	}
	return &Mapped{
		region: make([]byte, reserve),
		brk:    brk{reserve: reserve},
	}, nil
}

// Extend implements Source.
func (m *Mapped) Extend(n int) (int, error) {
	if m.region == nil {
		return 0, ErrClosed
	}
	off, err := m.brk.advance(n)
	if err != nil {
		return 0, fmt.Errorf("mapped: extend %d bytes at %d/%d: %w", n, m.brk.cur, m.brk.reserve, err)
	}
	return off, nil
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

// Committed returns how many bytes are currently usable.
func (m *Mapped) Committed() int { return m.brk.cur }

// Close drops the reservation.
func (m *Mapped) Close() error {
	m.region = nil
	return nil
}
