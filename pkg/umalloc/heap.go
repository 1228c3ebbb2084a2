package umalloc

import (
	"sync"

	"github.com/joshuapare/umalloc/alloc"
	"github.com/joshuapare/umalloc/backing"
)

// Heap is an allocator guarded by a mutex.
type Heap struct {
	mu sync.Mutex
	a  *alloc.Allocator
}

// Stats summarizes a heap's free list.
type Stats struct {
	SpanUnits  uint64 `json:"span_units"`  // units obtained from the source
	FreeUnits  uint64 `json:"free_units"`  // units on the free list
	FreeBlocks int    `json:"free_blocks"` // nodes on the free list
	Largest    uint32 `json:"largest"`     // units in the largest free block
}

// New creates a heap drawing from src.
//
// Parameters:
//   - src: the address-space source to grow into
//   - opts: growth policy (use nil for alloc.DefaultOptions)
func New(src backing.Source, opts *alloc.Options) (*Heap, error) {
	a, err := alloc.New(src, opts)
	if err != nil {
		return nil, err
	}
	return &Heap{a: a}, nil
}

// Malloc allocates a block with room for at least n bytes.
func (h *Heap) Malloc(n int) (alloc.Ref, []byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.a.Alloc(n)
}

// Free returns the block at ref to the heap.
func (h *Heap) Free(ref alloc.Ref) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.a.Free(ref)
}

// Bytes returns the payload of the block at ref.
func (h *Heap) Bytes(ref alloc.Ref) ([]byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.a.Bytes(ref)
}

// Units returns the size in units of the block at ref, header included.
func (h *Heap) Units(ref alloc.Ref) (uint32, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.a.Units(ref)
}

// Blocks returns a snapshot of the free list in address order.
func (h *Heap) Blocks() []alloc.Block {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.a.Blocks()
}

// Verify checks the free list. See alloc.Allocator.Verify.
func (h *Heap) Verify() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.a.Verify()
}

// Stats returns a summary of the free list.
func (h *Heap) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()

	s := Stats{SpanUnits: h.a.Span()}
	for _, b := range h.a.Blocks() {
		s.FreeBlocks++
		s.FreeUnits += uint64(b.Units)
		s.Largest = max(s.Largest, b.Units)
	}
	return s
}
