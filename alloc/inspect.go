package alloc

import (
	"fmt"

	"github.com/joshuapare/umalloc/internal/format"
)

// Bytes returns the payload of the allocated block at ref.
func (a *Allocator) Bytes(ref Ref) ([]byte, error) {
	hdr, err := a.header(ref)
	if err != nil {
		return nil, err
	}
	p, err := format.Payload(a.src.Bytes(), hdr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadRef, err)
	}
	return p, nil
}

// Units returns the size in units, header included, of the block at ref.
func (a *Allocator) Units(ref Ref) (uint32, error) {
	hdr, err := a.header(ref)
	if err != nil {
		return 0, err
	}
	return format.BlockSize(a.src.Bytes(), hdr), nil
}

// Span returns the total number of units obtained from the source.
func (a *Allocator) Span() uint64 { return a.span }

// Cursor returns the header unit the next search starts after, and false
// when the free list is empty.
func (a *Allocator) Cursor() (uint32, bool) {
	return a.cursor, a.cursor != format.NilUnit
}

// Blocks returns the free list in address order, lowest block first.
// It does not move the cursor.
func (a *Allocator) Blocks() []Block {
	if a.cursor == format.NilUnit {
		return nil
	}
	data := a.src.Bytes()

	var blocks []Block
	low := 0
	node := a.cursor
	for steps := uint64(0); steps <= a.span; steps++ {
		blocks = append(blocks, Block{Start: node, Units: format.BlockSize(data, node)})
		if node < blocks[low].Start {
			low = len(blocks) - 1
		}
		node = format.Next(data, node)
		if node == a.cursor {
			break
		}
	}
	out := make([]Block, 0, len(blocks))
	out = append(out, blocks[low:]...)
	return append(out, blocks[:low]...)
}

// Verify walks the free list from the cursor and checks that:
//   - every node has a header inside the source and a non-zero size
//   - every block lies inside one region obtained from the source
//   - the list returns to the cursor within Span() steps
//   - addresses ascend except at exactly one wrap-around link
//   - no two consecutive blocks overlap or touch without being merged
func (a *Allocator) Verify() error {
	if a.cursor == format.NilUnit {
		return nil
	}
	data := a.src.Bytes()

	wraps := 0
	node := a.cursor
	for steps := uint64(0); ; steps++ {
		if steps >= a.span {
			return invariantf(node, "list does not return to cursor %d within %d steps", a.cursor, a.span)
		}
		if !format.HasHeader(data, node) {
			return invariantf(node, "header outside source (%d bytes)", len(data))
		}
		size := format.BlockSize(data, node)
		if size == 0 {
			return invariantf(node, "zero-size free block")
		}
		if !a.within(node, size) {
			return invariantf(node, "block of %d units outside source regions", size)
		}

		next := format.Next(data, node)
		if !format.HasHeader(data, next) {
			return invariantf(node, "link to unit %d outside source", next)
		}
		end := format.End(data, node)
		switch {
		case next <= node:
			wraps++
		case end > uint64(next):
			return invariantf(node, "block ending at %d overlaps next block at %d", end, next)
		case end == uint64(next):
			return invariantf(node, "block is adjacent to next block at %d but not merged", next)
		}

		node = next
		if node == a.cursor {
			break
		}
	}

	if wraps != 1 {
		return invariantf(a.cursor, "free list has %d address wrap-arounds, want 1", wraps)
	}
	return nil
}
