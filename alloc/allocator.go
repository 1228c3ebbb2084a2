package alloc

import (
	"fmt"
	"slices"
	"sort"

	"github.com/joshuapare/umalloc/backing"
	"github.com/joshuapare/umalloc/internal/buf"
	"github.com/joshuapare/umalloc/internal/format"
	"github.com/joshuapare/umalloc/internal/logger"
)

// Allocator is a next-fit allocator with address-ordered coalescing.
type Allocator struct {
	src     backing.Source
	minGrow uint32

	// cursor is the rotating start of the next search. It is format.NilUnit
	// while the free list is empty.
	cursor uint32

	// Regions obtained from src, in ascending address order
	extents []extent
	span    uint64 // total units across extents

	// Test hook: called after each successful growth (nil in production)
	onGrow func(units uint32)
}

// New creates an allocator drawing from src. Nothing is requested from src
// until the first Alloc.
//
// Parameters:
//   - src: the address-space source to grow into
//   - opts: growth policy (use nil for DefaultOptions)
func New(src backing.Source, opts *Options) (*Allocator, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	if opts == nil {
		opts = &DefaultOptions
	}
	minGrow := opts.MinGrowUnits
	if minGrow == 0 {
		minGrow = DefaultMinGrowUnits
	}
	return &Allocator{
		src:     src,
		minGrow: minGrow,
		cursor:  format.NilUnit,
	}, nil
}

// Alloc returns a block with room for at least n bytes. The returned slice
// covers the whole payload, which may be up to 7 bytes longer than n.
//
// On failure Alloc returns Nil and an error; the free list is unchanged.
// errors.Is(err, ErrNoSpace) reports exhaustion of the source.
func (a *Allocator) Alloc(n int) (Ref, []byte, error) {
	if n < 0 {
		return Nil, nil, ErrNegativeSize
	}
	need, ok := format.Units(n)
	if !ok {
		return Nil, nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, n)
	}

	if a.cursor == format.NilUnit {
		if err := a.grow(need); err != nil {
			return Nil, nil, err
		}
	}

	data := a.src.Bytes()
	prev := a.cursor
	node := format.Next(data, prev)
	for {
		size := format.BlockSize(data, node)

		if size == need {
			if node == prev {
				// Sole free block handed out whole.
				a.cursor = format.NilUnit
			} else {
				format.SetNext(data, prev, format.Next(data, node))
				a.cursor = prev
			}
			break
		}

		if size > need {
			// Carve the tail so the link at the head stays put.
			size -= need
			format.SetBlockSize(data, node, size)
			node += size
			format.SetBlockSize(data, node, need)
			a.cursor = prev
			break
		}

		if node == a.cursor {
			if err := a.grow(need); err != nil {
				return Nil, nil, err
			}
			data = a.src.Bytes()
			node = a.cursor
		}

		prev = node
		node = format.Next(data, node)
	}

	a.checkInvariants("alloc")

	p, err := format.Payload(data, node)
	if err != nil {
		return Nil, nil, fmt.Errorf("%w: %w", ErrBadRef, err)
	}
	return Ref(node + format.HeaderUnits), p, nil
}

// Free returns the block at ref to the free list, merging it with free
// neighbours that touch it.
//
// Only cheap bounds checks are made: Nil and references whose header or
// extent falls outside the source return ErrBadRef. Freeing a block twice or
// freeing a reference Alloc never returned corrupts the list.
func (a *Allocator) Free(ref Ref) error {
	hdr, err := a.header(ref)
	if err != nil {
		return err
	}
	a.release(hdr)
	a.checkInvariants("free")
	return nil
}

// release links the block whose header is at mem into the free list.
func (a *Allocator) release(mem uint32) {
	data := a.src.Bytes()

	if a.cursor == format.NilUnit {
		format.SetNext(data, mem, mem)
		a.cursor = mem
		return
	}

	// Find node such that mem lies between node and node.next, or node is the
	// wrap point and mem lies beyond either end of the list.
	node := a.cursor
	var steps uint64
	for {
		next := format.Next(data, node)
		if mem > node && mem < next {
			break
		}
		if node >= next && (mem > node || mem < next) {
			break
		}
		if steps++; steps > a.span {
			panic(invariantf(node, "free of unit %d: list does not return to cursor %d", mem, a.cursor))
		}
		node = next
	}

	next := format.Next(data, node)
	if format.End(data, mem) == uint64(next) {
		format.SetBlockSize(data, mem, format.BlockSize(data, mem)+format.BlockSize(data, next))
		if next == node {
			// mem swallowed the only free block.
			format.SetNext(data, mem, mem)
			a.cursor = mem
			return
		}
		format.SetNext(data, mem, format.Next(data, next))
	} else {
		format.SetNext(data, mem, next)
	}

	if format.End(data, node) == uint64(mem) {
		format.SetBlockSize(data, node, format.BlockSize(data, node)+format.BlockSize(data, mem))
		format.SetNext(data, node, format.Next(data, mem))
	} else {
		format.SetNext(data, node, mem)
	}

	a.cursor = node
}

// grow asks the source for at least need units and frees the new region into
// the list. On failure the allocator is unchanged.
func (a *Allocator) grow(need uint32) error {
	units := max(need, a.minGrow)
	n, ok := buf.MulOverflowSafe(int(units), format.Size)
	if !ok {
		return fmt.Errorf("%w: %d units", ErrTooLarge, units)
	}

	off, err := a.src.Extend(n)
	if err != nil {
		logger.L.Debug("alloc: grow failed", "units", units, "bytes", n, "err", err)
		return fmt.Errorf("%w: grow by %d units: %w", ErrNoSpace, units, err)
	}

	if off < 0 || !format.Aligned(off) {
		return fmt.Errorf("%w: offset %d is not unit aligned", ErrBadRegion, off)
	}
	if uint64(off/format.Size)+uint64(units) > uint64(format.MaxUnits) {
		return fmt.Errorf("%w: region at %d exceeds addressable units", ErrBadRegion, off)
	}
	start := format.UnitOf(off)
	end := uint64(start) + uint64(units)

	// Sources may hand out regions below earlier ones; extents stay sorted.
	i := sort.Search(len(a.extents), func(i int) bool {
		return a.extents[i].start >= start
	})
	if i > 0 && a.extents[i-1].end() > uint64(start) {
		return fmt.Errorf("%w: region at unit %d overlaps [%d,%d)",
			ErrBadRegion, start, a.extents[i-1].start, a.extents[i-1].end())
	}
	if i < len(a.extents) && end > uint64(a.extents[i].start) {
		return fmt.Errorf("%w: region [%d,%d) overlaps [%d,%d)",
			ErrBadRegion, start, end, a.extents[i].start, a.extents[i].end())
	}
	data := a.src.Bytes()
	if !buf.Has(data, off, n) {
		return fmt.Errorf("%w: region [%d,%d) not committed", ErrBadRegion, off, off+n)
	}

	format.SetBlockSize(data, start, units)
	a.addExtent(i, extent{start: start, units: units})
	a.span += uint64(units)

	logger.L.Debug("alloc: grew", "need", need, "units", units, "start", start, "span", a.span)

	a.release(start)

	if a.onGrow != nil {
		a.onGrow(units)
	}
	return nil
}

// addExtent records e at index i of the sorted extents, merging it with
// neighbours it touches so blocks may straddle the seam.
func (a *Allocator) addExtent(i int, e extent) {
	joinPrev := i > 0 && a.extents[i-1].end() == uint64(e.start)
	joinNext := i < len(a.extents) && e.end() == uint64(a.extents[i].start)

	switch {
	case joinPrev && joinNext:
		a.extents[i-1].units += e.units + a.extents[i].units
		a.extents = slices.Delete(a.extents, i, i+1)
	case joinPrev:
		a.extents[i-1].units += e.units
	case joinNext:
		a.extents[i].start = e.start
		a.extents[i].units += e.units
	default:
		a.extents = slices.Insert(a.extents, i, e)
	}
}

// header resolves ref to its header unit after checking that the whole block
// lies inside one extent.
func (a *Allocator) header(ref Ref) (uint32, error) {
	if ref == Nil {
		return 0, ErrBadRef
	}
	hdr := uint32(ref) - format.HeaderUnits
	data := a.src.Bytes()
	if !format.HasHeader(data, hdr) {
		return 0, fmt.Errorf("%w: %d", ErrBadRef, ref)
	}
	size := format.BlockSize(data, hdr)
	if size < format.HeaderUnits || !a.within(hdr, size) {
		return 0, fmt.Errorf("%w: %d (size %d)", ErrBadRef, ref, size)
	}
	return hdr, nil
}

// within reports whether [start, start+units) lies inside a single extent.
// O(log E) via binary search on extents.
func (a *Allocator) within(start, units uint32) bool {
	i := sort.Search(len(a.extents), func(i int) bool {
		return a.extents[i].end() > uint64(start)
	})
	if i == len(a.extents) {
		return false
	}
	e := a.extents[i]
	return start >= e.start && uint64(start)+uint64(units) <= e.end()
}

func (a *Allocator) checkInvariants(op string) {
	if !debugChecks {
		return
	}
	if err := a.Verify(); err != nil {
		panic(fmt.Errorf("alloc: after %s: %w", op, err))
	}
}
