package backing

import "fmt"

// Heap is a Source backed by a Go slice reserved to a fixed limit.
type Heap struct {
	data []byte
	brk  brk
}

// NewHeap reserves limit bytes. Nothing is committed until the first Extend.
func NewHeap(limit int) (*Heap, error) {
	if limit <= 0 {
		return nil, ErrInvalidSize
	}
	return &Heap{
		data: make([]byte, 0, limit),
		brk:  brk{reserve: limit},
	}, nil
}

// Extend implements Source.
func (h *Heap) Extend(n int) (int, error) {
	off, err := h.brk.advance(n)
	if err != nil {
		return 0, fmt.Errorf("heap: extend %d bytes at %d/%d: %w", n, h.brk.cur, h.brk.reserve, err)
	}
	h.data = h.data[:h.brk.cur]
	return off, nil
}

// Bytes implements Source.
func (h *Heap) Bytes() []byte { return h.data }

// Brk returns the current break.
func (h *Heap) Brk() int { return h.brk.cur }

// Limit returns the reservation size.
func (h *Heap) Limit() int { return h.brk.reserve }
