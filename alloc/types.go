package alloc

// Ref is the unit index of a block's payload. The header is at Ref-1.
type Ref uint32

// Nil is the failure sentinel returned by Alloc. No payload starts at unit 0.
const Nil Ref = 0

// DefaultMinGrowUnits is the smallest extension requested from a source.
const DefaultMinGrowUnits = 4096

// Options configures an Allocator.
type Options struct {
	// MinGrowUnits is the smallest number of units requested from the source
	// per growth. Requests below it are rounded up to amortize extension
	// cost. Zero selects DefaultMinGrowUnits.
	MinGrowUnits uint32
}

// DefaultOptions is used when New receives nil options.
var DefaultOptions = Options{
	MinGrowUnits: DefaultMinGrowUnits,
}

// Block describes one free block.
type Block struct {
	Start uint32 // header unit
	Units uint32 // length in units, header included
}

// End returns the first unit past the block.
func (b Block) End() uint64 { return uint64(b.Start) + uint64(b.Units) }

// extent is one region obtained from the source.
type extent struct {
	start uint32
	units uint32
}

func (e extent) end() uint64 { return uint64(e.start) + uint64(e.units) }
