// Package alloc implements a next-fit free-list allocator over a growable
// address space.
//
// # Overview
//
// Every block, free or allocated, starts with a one-unit header holding a
// link and a size (see internal/format). Free blocks form one circular list
// ordered by address, with a single wrap-around point where the highest block
// links back to the lowest. A rotating cursor remembers where the last
// operation finished so the next search starts there.
//
// # Allocator API
//
//   - Alloc(n): find a block of at least ceil(n/8)+1 units, starting after
//     the cursor. An exact fit is unlinked; a larger block is shrunk and its
//     tail handed out, so the link at the block's head never moves.
//   - Free(ref): return a block to the list, merging it with the free blocks
//     that end where it starts or start where it ends.
//
// When a full lap of the list finds nothing, the allocator asks its
// backing.Source for at least MinGrowUnits units (4096 by default), stamps a
// header on the new region and frees it into the list.
//
// # Usage Example
//
//	src, err := backing.NewHeap(64 << 20)
//	if err != nil {
//	    return err
//	}
//	a, err := alloc.New(src, nil)
//	if err != nil {
//	    return err
//	}
//
//	ref, buf, err := a.Alloc(256)
//	if errors.Is(err, alloc.ErrNoSpace) {
//	    // source exhausted
//	}
//	copy(buf, payload)
//
//	// Later
//	err = a.Free(ref)
//
// # References
//
// A Ref is the unit index of a payload; its header sits one unit lower. Nil
// (zero) is never a valid payload. Payload slices returned by Alloc alias the
// source's memory and stay valid until the block is freed.
//
// # Invariants
//
// Verify walks the list and reports an *InvariantError when the address
// order, coalescing or extent bounds are broken. Building with
// -tags umallocdebug runs Verify after every Alloc and Free and panics on
// the first violation. Release builds only bound the walk in Free so that a
// corrupted list panics instead of spinning.
//
// # Thread Safety
//
// Allocator instances are not thread-safe. Callers must synchronize access
// externally; pkg/umalloc wraps an allocator in a mutex.
package alloc
