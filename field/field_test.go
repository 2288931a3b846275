package field

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"
)

func TestTruthTables(t *testing.T) {
	var ops Ops
	for _, a := range []bool{false, true} {
		ea := FromBool(a)
		require.Equal(t, !a, ToBool(ops.Not(ea)))
		for _, b := range []bool{false, true} {
			eb := FromBool(b)
			require.Equal(t, a && b, ToBool(ops.And(ea, eb)), "and(%v, %v)", a, b)
			require.Equal(t, a || b, ToBool(ops.Or(ea, eb)), "or(%v, %v)", a, b)
		}
	}
}

func TestCopy(t *testing.T) {
	var ops Ops
	var dst fr.Element
	ops.Copy(ops.Constant(true), &dst)
	require.True(t, dst.IsOne())
	require.Equal(t, []bool{true, false, true}, Decode(Encode([]bool{true, false, true})))
}

func TestNotABit(t *testing.T) {
	var e fr.Element
	e.SetUint64(2)
	require.Panics(t, func() { ToBool(e) })
}
