// Package field encodes bits as 0/1 elements of the BN254 scalar field and
// evaluates gates arithmetically.
//
//	AND(a, b) = a·b
//	OR(a, b)  = a + b - a·b
//	NOT(a)    = 1 - a
//
// The encoding stays valid as long as the inputs are 0 or 1.
package field

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

var ScalarField = fr.Modulus()

// Ops implements engine.BitOperations[fr.Element].
type Ops struct{}

func (Ops) And(lhs, rhs fr.Element) fr.Element {
	var res fr.Element
	res.Mul(&lhs, &rhs)
	return res
}

func (Ops) Or(lhs, rhs fr.Element) fr.Element {
	var sum, prod fr.Element
	sum.Add(&lhs, &rhs)
	prod.Mul(&lhs, &rhs)
	return *sum.Sub(&sum, &prod)
}

func (Ops) Not(in fr.Element) fr.Element {
	var res fr.Element
	res.SetOne()
	return *res.Sub(&res, &in)
}

func (Ops) Constant(value bool) fr.Element {
	return FromBool(value)
}

func (Ops) Copy(src fr.Element, dst *fr.Element) {
	dst.Set(&src)
}

func (Ops) CopyOf(in fr.Element) fr.Element {
	return in
}

func FromBool(b bool) fr.Element {
	var res fr.Element
	if b {
		res.SetOne()
	}
	return res
}

// ToBool decodes a 0/1 element. Any other value means the circuit was fed
// something that is not a bit.
func ToBool(e fr.Element) bool {
	if e.IsZero() {
		return false
	}
	if e.IsOne() {
		return true
	}
	var x big.Int
	panic(fmt.Sprintf("not a bit: %s", e.BigInt(&x).String()))
}

func Encode(bits []bool) []fr.Element {
	res := make([]fr.Element, len(bits))
	for i, b := range bits {
		res[i] = FromBool(b)
	}
	return res
}

func Decode(es []fr.Element) []bool {
	res := make([]bool, len(es))
	for i, e := range es {
		res[i] = ToBool(e)
	}
	return res
}
