package backing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapped_ExtendCommitsWritableBytes(t *testing.T) {
	m, err := NewMapped(1 << 20)
	require.NoError(t, err)
	defer m.Close()

	off, err := m.Extend(32768)
	require.NoError(t, err)
	require.Equal(t, 0, off)

	data := m.Bytes()
	require.Len(t, data, 32768)
	for i := range data {
		data[i] = byte(i)
	}
	require.GreaterOrEqual(t, m.Committed(), 32768)

	// Odd-sized extension crosses into a partially committed page.
	off, err = m.Extend(24)
	require.NoError(t, err)
	require.Equal(t, 32768, off)
	tail := m.Bytes()[off:]
	tail[23] = 0xEE
	require.Equal(t, byte(0xEE), m.Bytes()[32768+23])
	require.Equal(t, byte(100), data[100], "earlier bytes survive growth")
}

func TestMapped_ExhaustionLeavesBreak(t *testing.T) {
	m, err := NewMapped(4096)
	require.NoError(t, err)
	defer m.Close()

	_, err = m.Extend(1 << 30)
	require.ErrorIs(t, err, ErrNoMemory)
	require.Zero(t, m.Brk())

	_, err = m.Extend(-1)
	require.ErrorIs(t, err, ErrInvalidSize)
}

func TestMapped_Close(t *testing.T) {
	m, err := NewMapped(4096)
	require.NoError(t, err)

	_, err = m.Extend(64)
	require.NoError(t, err)
	require.NoError(t, m.Close())
	require.NoError(t, m.Close(), "double close is a no-op")

	require.Nil(t, m.Bytes())
	_, err = m.Extend(8)
	require.ErrorIs(t, err, ErrClosed)
}

func TestSourceImplementations(t *testing.T) {
	var _ Source = (*Mapped)(nil)
	var _ Source = (*Heap)(nil)
}
