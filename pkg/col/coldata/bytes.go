// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package coldata

import (
	"strconv"

	"github.com/cockroachdb/vecexpr/pkg/col/coltypes"
)

// defaultBytesBufferSize is the size of the shared value buffer allocated by
// InitBuffer when the caller has no better estimate.
const defaultBytesBufferSize = 16 * 1024

// defaultBytesValueSize is the per-row size estimate used to size the shared
// buffer on first use.
const defaultBytesValueSize = 16

// BytesVec is a column of variable-length byte values.
//
// The value of physical row i is Vector[i][Start[i]:Start[i]+Length[i]]. The
// slices in Vector may reference memory owned by somebody else (see SetRef)
// or the vector's own shared buffer (see SetVal). Values referenced with
// SetRef must never be modified in place; writers produce new values through
// SetVal instead.
type BytesVec struct {
	VecHeader
	Vector [][]byte
	Start  []int
	Length []int

	// buffer is the shared storage that SetVal copies values into. Values
	// occupy buffer[:nextFree].
	buffer   []byte
	nextFree int
}

var _ Vec = &BytesVec{}

// NewBytesVec returns a new BytesVec with the given capacity. The shared
// buffer is allocated lazily by InitBuffer.
func NewBytesVec(capacity int) *BytesVec {
	return &BytesVec{
		VecHeader: makeHeader(capacity),
		Vector:    make([][]byte, capacity),
		Start:     make([]int, capacity),
		Length:    make([]int, capacity),
	}
}

// Type implements the Vec interface.
func (v *BytesVec) Type() coltypes.T { return coltypes.Bytes }

// Reset implements the Vec interface. It also reclaims the shared buffer.
func (v *BytesVec) Reset() {
	v.VecHeader.Reset()
	v.InitBuffer()
}

// InitBuffer prepares the shared buffer to receive new values through SetVal.
// Space used by earlier values is reclaimed, so values previously written by
// SetVal must no longer be referenced once this is called. The existing
// allocation is reused when it is large enough.
func (v *BytesVec) InitBuffer() {
	v.InitBufferWithSize(defaultBytesValueSize)
}

// InitBufferWithSize is like InitBuffer, sizing a fresh buffer for
// estimatedValueSize bytes per row.
func (v *BytesVec) InitBufferWithSize(estimatedValueSize int) {
	v.nextFree = 0
	if v.buffer != nil {
		return
	}
	size := estimatedValueSize * v.Capacity()
	if size < defaultBytesBufferSize {
		size = defaultBytesBufferSize
	}
	v.buffer = make([]byte, size)
}

// BufferSize returns the number of bytes of the shared buffer currently
// occupied by values.
func (v *BytesVec) BufferSize() int {
	return v.nextFree
}

// SetRef makes physical row i reference buf[start:start+length] without
// copying it.
func (v *BytesVec) SetRef(i int, buf []byte, start, length int) {
	v.Vector[i] = buf
	v.Start[i] = start
	v.Length[i] = length
}

// SetVal copies src into the shared buffer and makes physical row i reference
// the copy.
func (v *BytesVec) SetVal(i int, src []byte) {
	length := len(src)
	if length > len(v.buffer)-v.nextFree {
		v.increaseBufferSpace(length)
	}
	copy(v.buffer[v.nextFree:], src)
	v.Vector[i] = v.buffer
	v.Start[i] = v.nextFree
	v.Length[i] = length
	v.nextFree += length
}

// increaseBufferSpace makes room for at least nextElemLength more bytes. A new
// buffer is allocated rather than grown in place, so rows already pointing
// into the old buffer stay valid.
func (v *BytesVec) increaseBufferSpace(nextElemLength int) {
	newSize := 2 * len(v.buffer)
	if newSize < defaultBytesBufferSize {
		newSize = defaultBytesBufferSize
	}
	for newSize < nextElemLength {
		newSize *= 2
	}
	v.buffer = make([]byte, newSize)
	v.nextFree = 0
}

// Bytes returns the value of physical row i. The returned slice aliases the
// vector's storage and must not be modified.
func (v *BytesVec) Bytes(i int) []byte {
	start := v.Start[i]
	return v.Vector[i][start : start+v.Length[i]]
}

// Flatten implements the Vec interface. Repeated rows share the storage of
// row 0.
func (v *BytesVec) Flatten(selectedInUse bool, sel []int, size int) {
	v.flattenPush()
	if v.IsRepeating {
		v.IsRepeating = false
		buf, start, length := v.Vector[0], v.Start[0], v.Length[0]
		if selectedInUse {
			for _, i := range sel[:size] {
				v.SetRef(i, buf, start, length)
			}
		} else {
			for i := 0; i < size; i++ {
				v.SetRef(i, buf, start, length)
			}
		}
		v.flattenRepeatingNulls(selectedInUse, sel, size)
	}
	v.flattenNoNulls(selectedInUse, sel, size)
}

// PrettyValueAt implements the Vec interface.
func (v *BytesVec) PrettyValueAt(i int) string {
	i = v.valueIdx(i)
	if v.NullAt(i) {
		return "NULL"
	}
	return strconv.Quote(string(v.Bytes(i)))
}
