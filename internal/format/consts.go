// Package format defines the layout shared by every block, free or allocated.
//
// The arena is measured in units. One unit is the size of a block header: a
// little-endian uint32 link to the next free block followed by a little-endian
// uint32 block size, both expressed in units. A caller's payload starts one
// unit after its header, so header and payload addresses differ by exactly
// HeaderUnits.
//
// Layout of a header (offsets relative to the header's first byte):
//
//	0x00  next  uint32  unit index of the next free block (free blocks only)
//	0x04  size  uint32  block length in units, header included
//
// All raw byte arithmetic over the arena lives in this package; callers work
// with unit indices.
package format

const (
	// Size is the size of one unit in bytes.
	Size = 8

	// NextOffset is the byte offset of the link field inside a header.
	NextOffset = 0

	// SizeOffset is the byte offset of the size field inside a header.
	SizeOffset = 4

	// HeaderUnits is the number of units reserved for a block header.
	HeaderUnits = 1

	// NilUnit marks the absence of a block (an empty free list).
	NilUnit = ^uint32(0)

	// MaxUnits is the largest arena, in units, that block links can address.
	MaxUnits = NilUnit - 1

	sizeMask = Size - 1
)
