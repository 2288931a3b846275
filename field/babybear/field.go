// Package babybear encodes bits as 0/1 elements of the BabyBear prime field,
// stored in the first limb of a gnark constraint.Element.
package babybear

import (
	"math/big"
	"strconv"

	"github.com/consensys/gnark/constraint"
)

const P = 2013265921

var ScalarField = big.NewInt(P)

// Ops implements engine.BitOperations[constraint.Element]. Elements are
// always kept reduced, so only limb 0 is ever non zero.
type Ops struct{}

func (Ops) And(lhs, rhs constraint.Element) constraint.Element {
	return mul(lhs, rhs)
}

func (Ops) Or(lhs, rhs constraint.Element) constraint.Element {
	return sub(add(lhs, rhs), mul(lhs, rhs))
}

func (Ops) Not(in constraint.Element) constraint.Element {
	return sub(constraint.Element{1}, in)
}

func (Ops) Constant(value bool) constraint.Element {
	return FromBool(value)
}

func (Ops) Copy(src constraint.Element, dst *constraint.Element) {
	*dst = src
}

func (Ops) CopyOf(in constraint.Element) constraint.Element {
	return in
}

func mul(a, b constraint.Element) constraint.Element {
	return constraint.Element{(a[0] * b[0]) % P}
}

func add(a, b constraint.Element) constraint.Element {
	res := a[0] + b[0]
	if res >= P {
		res -= P
	}
	return constraint.Element{res}
}

func sub(a, b constraint.Element) constraint.Element {
	res := int64(a[0]) - int64(b[0])
	if res < 0 {
		res += P
	}
	return constraint.Element{uint64(res)}
}

func FromBool(b bool) constraint.Element {
	if b {
		return constraint.Element{1}
	}
	return constraint.Element{}
}

func ToBool(a constraint.Element) bool {
	switch a[0] {
	case 0:
		return false
	case 1:
		return true
	}
	panic("not a bit: " + String(a))
}

func String(a constraint.Element) string {
	return strconv.FormatUint(a[0], 10)
}
