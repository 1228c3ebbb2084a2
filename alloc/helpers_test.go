package alloc

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/umalloc/backing"
	"github.com/joshuapare/umalloc/internal/format"
)

// countingSource wraps a Heap, recording every Extend call and optionally
// failing them.
type countingSource struct {
	*backing.Heap
	calls int
	lastN int
	fail  bool
}

func (s *countingSource) Extend(n int) (int, error) {
	s.calls++
	s.lastN = n
	if s.fail {
		return 0, backing.ErrNoMemory
	}
	return s.Heap.Extend(n)
}

// funcSource lets a test script the source's answers.
type funcSource struct {
	data   []byte
	extend func(n int) (int, error)
}

func (s *funcSource) Extend(n int) (int, error) { return s.extend(n) }
func (s *funcSource) Bytes() []byte             { return s.data }

// newTestAllocator creates an allocator over a counting heap of limit bytes.
func newTestAllocator(t testing.TB, limit int, opts *Options) (*Allocator, *countingSource) {
	t.Helper()
	h, err := backing.NewHeap(limit)
	require.NoError(t, err)
	src := &countingSource{Heap: h}
	a, err := New(src, opts)
	require.NoError(t, err)
	return a, src
}

// smallChunks grows 16 units at a time so tests can reason about exact layouts.
var smallChunks = &Options{MinGrowUnits: 16}

// freeUnits sums the sizes of all free blocks.
func freeUnits(a *Allocator) uint64 {
	var total uint64
	for _, b := range a.Blocks() {
		total += uint64(b.Units)
	}
	return total
}

// requireConservation checks that live and free blocks account for every
// unit obtained from the source, and that live blocks do not overlap each
// other or any free block.
func requireConservation(t testing.TB, a *Allocator, live []Ref) {
	t.Helper()

	spans := a.Blocks()
	var total uint64
	for _, b := range spans {
		total += uint64(b.Units)
	}
	for _, ref := range live {
		units, err := a.Units(ref)
		require.NoError(t, err)
		total += uint64(units)
		spans = append(spans, Block{Start: uint32(ref) - format.HeaderUnits, Units: units})
	}
	require.Equal(t, a.Span(), total, "free + allocated units must equal units obtained from source")

	sort.Slice(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })
	for i := 1; i < len(spans); i++ {
		require.LessOrEqual(t, spans[i-1].End(), uint64(spans[i].Start),
			"block at %d overlaps block at %d", spans[i-1].Start, spans[i].Start)
	}
}

// hdr returns the header unit of ref.
func hdr(ref Ref) uint32 { return uint32(ref) - format.HeaderUnits }
