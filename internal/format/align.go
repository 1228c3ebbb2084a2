package format

import "github.com/joshuapare/umalloc/internal/buf"

// Units returns the number of units a request of n payload bytes occupies,
// header included: ceil(n/Size) + 1. ok is false for negative n or when the
// result cannot be addressed.
//
// Example:
//
//	Units(0)  = 1
//	Units(1)  = 2
//	Units(8)  = 2
//	Units(9)  = 3
func Units(n int) (uint32, bool) {
	if n < 0 {
		return 0, false
	}
	rounded, ok := buf.AddOverflowSafe(n, sizeMask)
	if !ok {
		return 0, false
	}
	u := uint64(rounded/Size) + HeaderUnits
	if u > uint64(MaxUnits) {
		return 0, false
	}
	return uint32(u), true
}

// Bytes returns the byte length of units units.
func Bytes(units uint32) int {
	return int(units) * Size
}

// PayloadBytes returns how many bytes a caller may use in a block of units units.
func PayloadBytes(units uint32) int {
	if units < HeaderUnits {
		return 0
	}
	return Bytes(units - HeaderUnits)
}

// Aligned reports whether the byte offset off starts a unit.
func Aligned(off int) bool {
	return off&sizeMask == 0
}

// UnitOf converts a unit-aligned byte offset to a unit index.
func UnitOf(off int) uint32 {
	return uint32(off / Size)
}
