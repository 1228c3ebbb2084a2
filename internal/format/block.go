package format

import "github.com/joshuapare/umalloc/internal/buf"

// Next returns the link field of the header at unit u.
func Next(data []byte, u uint32) uint32 {
	return ReadU32(data, Bytes(u)+NextOffset)
}

// SetNext writes the link field of the header at unit u.
func SetNext(data []byte, u, next uint32) {
	PutU32(data, Bytes(u)+NextOffset, next)
}

// BlockSize returns the size field, in units, of the header at unit u.
func BlockSize(data []byte, u uint32) uint32 {
	return ReadU32(data, Bytes(u)+SizeOffset)
}

// SetBlockSize writes the size field of the header at unit u.
func SetBlockSize(data []byte, u, units uint32) {
	PutU32(data, Bytes(u)+SizeOffset, units)
}

// End returns the first unit past the block whose header is at u.
func End(data []byte, u uint32) uint64 {
	return uint64(u) + uint64(BlockSize(data, u))
}

// HasHeader reports whether a full header at unit u lies inside data.
func HasHeader(data []byte, u uint32) bool {
	return u != NilUnit && buf.Has(data, Bytes(u), Size)
}

// Payload returns the caller-visible bytes of the block whose header is at
// unit u. The slice covers every unit after the header and its capacity is
// clipped to the block.
func Payload(data []byte, u uint32) ([]byte, error) {
	if !HasHeader(data, u) {
		return nil, ErrTruncated
	}
	units := BlockSize(data, u)
	if units < HeaderUnits {
		return nil, ErrEmptyBlock
	}
	p, ok := buf.Slice(data, Bytes(u+HeaderUnits), PayloadBytes(units))
	if !ok {
		return nil, ErrTruncated
	}
	return p, nil
}
