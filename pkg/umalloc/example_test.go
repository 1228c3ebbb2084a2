package umalloc_test

import (
	"fmt"

	"github.com/joshuapare/umalloc/alloc"
	"github.com/joshuapare/umalloc/backing"
	"github.com/joshuapare/umalloc/pkg/umalloc"
)

// Example shows the reuse of a freed block.
func Example() {
	src, _ := backing.NewHeap(1 << 16)
	h, _ := umalloc.New(src, &alloc.Options{MinGrowUnits: 64})

	p, _, _ := h.Malloc(10)
	q, _, _ := h.Malloc(20)
	_ = h.Free(p)
	r, _, _ := h.Malloc(10)

	fmt.Println(p != q, r == p)
	// Output: true true
}
