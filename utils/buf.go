package utils

import (
	"encoding/binary"
	"errors"
)

// OutputBuf accumulates little-endian integers.
type OutputBuf struct {
	buf []byte
}

func (o *OutputBuf) AppendUint32(x uint32) {
	o.buf = binary.LittleEndian.AppendUint32(o.buf, x)
}

func (o *OutputBuf) AppendUint64(x uint64) {
	o.buf = binary.LittleEndian.AppendUint64(o.buf, x)
}

// AppendUint64s writes the length of xs followed by its elements.
func (o *OutputBuf) AppendUint64s(xs []uint64) {
	o.AppendUint64(uint64(len(xs)))
	for _, x := range xs {
		o.AppendUint64(x)
	}
}

func (o *OutputBuf) Bytes() []byte {
	return o.buf
}

// InputBuf reads what an OutputBuf wrote. Reading past the end panics with
// ErrShortBuffer.
type InputBuf struct {
	buf []byte
}

var ErrShortBuffer = errors.New("unexpected end of buffer")

func NewInputBuf(buf []byte) *InputBuf {
	return &InputBuf{buf: buf}
}

func (i *InputBuf) next(n int) []byte {
	if len(i.buf) < n {
		panic(ErrShortBuffer)
	}
	b := i.buf[:n]
	i.buf = i.buf[n:]
	return b
}

func (i *InputBuf) ReadUint32() uint32 {
	return binary.LittleEndian.Uint32(i.next(4))
}

func (i *InputBuf) ReadUint64() uint64 {
	return binary.LittleEndian.Uint64(i.next(8))
}

// ReadUint64s reads a slice written by AppendUint64s.
func (i *InputBuf) ReadUint64s() []uint64 {
	n := i.ReadUint64()
	if n > uint64(len(i.buf)/8) {
		panic(ErrShortBuffer)
	}
	res := make([]uint64, n)
	for j := range res {
		res[j] = i.ReadUint64()
	}
	return res
}

func (i *InputBuf) Len() int {
	return len(i.buf)
}
