package plaintext

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	require.Equal(t, []bool{true, false, true, false}, EncodeUint(5, 4))
	require.Equal(t, uint64(5), DecodeUint([]bool{true, false, true}))
	require.Equal(t, []bool{}, EncodeUint(7, 0))

	r := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		x := r.Uint64()
		require.Equal(t, x, DecodeUint(EncodeUint(x, 64)))
		require.Equal(t, x&0xff, DecodeUint(EncodeUint(x, 8)))
	}
}

func TestEncodeBits(t *testing.T) {
	bits := EncodeBits(3, 1, 6)
	require.Equal(t, []bool{true, false, false, false, true, true}, bits)
	require.Equal(t, []uint64{1, 6}, DecodeBits(3, bits))
}

func TestOps(t *testing.T) {
	var ops Ops
	for _, a := range []bool{false, true} {
		require.Equal(t, !a, ops.Not(a))
		require.Equal(t, a, ops.CopyOf(a))
		var dst bool
		ops.Copy(a, &dst)
		require.Equal(t, a, dst)
		for _, b := range []bool{false, true} {
			require.Equal(t, a && b, ops.And(a, b))
			require.Equal(t, a || b, ops.Or(a, b))
		}
	}
	require.True(t, ops.Constant(true))
	require.False(t, ops.Constant(false))
}
