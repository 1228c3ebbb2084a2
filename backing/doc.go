// Package backing provides the address-space sources an allocator grows into.
//
// # Overview
//
// A Source plays the role of sbrk: it owns one contiguous byte space that
// only ever grows. Extend(n) commits n more bytes at the current break and
// returns the offset where they start. Bytes returns the whole committed
// space; the allocator re-reads it after every Extend.
//
// # Contract
//
//   - Committed bytes never move. Payload slices handed out by an allocator
//     stay valid for the lifetime of the source.
//   - Extend either commits exactly n bytes or fails with an error wrapping
//     ErrNoMemory and leaves the source unchanged.
//   - Nothing is ever returned to the source.
//
// # Implementations
//
// Heap: a Go slice whose capacity is reserved up front and resliced on
// Extend. Portable and ideal for tests.
//
// Mapped: an anonymous mapping reserved with PROT_NONE and committed page by
// page with mprotect as the break advances, mirroring how an OS grows a
// process data segment. Platforms without mmap fall back to a Go slice.
//
// # Thread Safety
//
// Sources are not thread-safe. They are driven by a single allocator, which is
// itself single-owner.
package backing
