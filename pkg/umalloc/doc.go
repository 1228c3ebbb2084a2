/*
Package umalloc provides a process-wide, mutex-guarded allocator.

# Quick Start

Allocate from the default heap:

	ref, buf, err := umalloc.Malloc(128)
	if err != nil {
	    log.Fatal(err)
	}
	copy(buf, data)
	defer umalloc.Free(ref)

The default heap is created on first use over an anonymous mapping of
DefaultReserve bytes. Pages are committed only as the heap grows.

# Independent Heaps

New wraps any backing.Source in its own lock:

	src, _ := backing.NewHeap(1 << 20)
	h, err := umalloc.New(src, &alloc.Options{MinGrowUnits: 256})
	if err != nil {
	    log.Fatal(err)
	}
	ref, buf, err := h.Malloc(64)

# Error Handling

Errors are the alloc package's sentinels:

	if errors.Is(err, alloc.ErrNoSpace) {
	    // heap exhausted
	}

# Thread Safety

Every Heap method takes the heap's mutex, so a Heap may be shared between
goroutines. Payload slices are not guarded: two goroutines must not touch
the same block without their own synchronization.
*/
package umalloc
