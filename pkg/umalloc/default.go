package umalloc

import (
	"fmt"
	"sync"

	"github.com/joshuapare/umalloc/alloc"
	"github.com/joshuapare/umalloc/backing"
)

// DefaultReserve is the address space reserved for the default heap.
const DefaultReserve = 1 << 30

var (
	defaultOnce sync.Once
	defaultHeap *Heap
	errDefault  error
)

// Default returns the process-wide heap, creating it on first call.
func Default() (*Heap, error) {
	defaultOnce.Do(func() {
		src, err := backing.NewMapped(DefaultReserve)
		if err != nil {
			errDefault = fmt.Errorf("umalloc: default heap: %w", err)
			return
		}
		defaultHeap, errDefault = New(src, nil)
	})
	return defaultHeap, errDefault
}

// Malloc allocates n bytes from the default heap.
func Malloc(n int) (alloc.Ref, []byte, error) {
	h, err := Default()
	if err != nil {
		return alloc.Nil, nil, err
	}
	return h.Malloc(n)
}

// Free returns ref to the default heap.
func Free(ref alloc.Ref) error {
	h, err := Default()
	if err != nil {
		return err
	}
	return h.Free(ref)
}

// Bytes returns the payload of ref in the default heap.
func Bytes(ref alloc.Ref) ([]byte, error) {
	h, err := Default()
	if err != nil {
		return nil, err
	}
	return h.Bytes(ref)
}
