package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuf(t *testing.T) {
	o := OutputBuf{}
	o.AppendUint32(7)
	o.AppendUint64(1 << 40)
	o.AppendUint64s([]uint64{3, 1, 2})
	o.AppendUint64s(nil)
	assert.Len(t, o.Bytes(), 4+8+8+3*8+8)

	in := NewInputBuf(o.Bytes())
	assert.Equal(t, uint32(7), in.ReadUint32())
	assert.Equal(t, uint64(1<<40), in.ReadUint64())
	assert.Equal(t, []uint64{3, 1, 2}, in.ReadUint64s())
	assert.Empty(t, in.ReadUint64s())
	assert.Equal(t, 0, in.Len())
}

func TestShortBuffer(t *testing.T) {
	in := NewInputBuf([]byte{1, 2, 3})
	require.PanicsWithValue(t, ErrShortBuffer, func() { in.ReadUint32() })

	o := OutputBuf{}
	o.AppendUint64(1000)
	o.AppendUint64(1)
	in = NewInputBuf(o.Bytes())
	require.PanicsWithValue(t, ErrShortBuffer, func() { in.ReadUint64s() })
}
