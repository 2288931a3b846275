// Package plaintext is the cleartext bit backend: every encoded bit is a bool.
package plaintext

import (
	"fmt"
)

// Ops implements engine.BitOperations[bool].
type Ops struct{}

func (Ops) And(lhs, rhs bool) bool {
	return lhs && rhs
}

func (Ops) Or(lhs, rhs bool) bool {
	return lhs || rhs
}

func (Ops) Not(in bool) bool {
	return !in
}

func (Ops) Constant(value bool) bool {
	return value
}

func (Ops) Copy(src bool, dst *bool) {
	*dst = src
}

func (Ops) CopyOf(in bool) bool {
	return in
}

// EncodeUint returns the width low bits of x, least significant first.
func EncodeUint(x uint64, width int) []bool {
	if width < 0 || width > 64 {
		panic(fmt.Sprintf("invalid width %d", width))
	}
	res := make([]bool, width)
	for i := range res {
		res[i] = (x>>uint(i))&1 == 1
	}
	return res
}

// DecodeUint is the inverse of EncodeUint.
func DecodeUint(bits []bool) uint64 {
	if len(bits) > 64 {
		panic(fmt.Sprintf("%d bits do not fit in an uint64", len(bits)))
	}
	var x uint64
	for i, b := range bits {
		if b {
			x |= 1 << uint(i)
		}
	}
	return x
}

// EncodeBits concatenates the encodings of xs, each on width bits. It is the
// flat layout of an array of width-bit elements.
func EncodeBits(width int, xs ...uint64) []bool {
	res := make([]bool, 0, width*len(xs))
	for _, x := range xs {
		res = append(res, EncodeUint(x, width)...)
	}
	return res
}

// DecodeBits splits bits into elements of width bits and decodes each of them.
func DecodeBits(width int, bits []bool) []uint64 {
	if width <= 0 || len(bits)%width != 0 {
		panic(fmt.Sprintf("cannot split %d bits into elements of %d", len(bits), width))
	}
	res := make([]uint64, 0, len(bits)/width)
	for i := 0; i < len(bits); i += width {
		res = append(res, DecodeUint(bits[i:i+width]))
	}
	return res
}
