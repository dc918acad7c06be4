// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package coldata

import (
	"fmt"
	"strconv"

	"github.com/cockroachdb/apd/v3"
	"github.com/cockroachdb/vecexpr/pkg/col/coltypes"
)

// Vec is an interface that represents a column vector that's accessible by
// Go native types. The concrete types are *LongVec, *BytesVec and
// *DecimalVec; code that needs the values type-asserts to one of them.
type Vec interface {
	// Type returns the physical type of the values stored in the vector.
	Type() coltypes.T
	// Header returns the null/repeating state of the vector.
	Header() *VecHeader
	// Capacity returns the number of physical rows the vector can hold.
	Capacity() int
	// Reset prepares the vector for reuse with a new batch.
	Reset()
	// Flatten expands a repeating vector so that every active row holds its own
	// copy of the value and null flag, and makes the null markers explicit. The
	// previous flags can be restored with Unflatten.
	Flatten(selectedInUse bool, sel []int, size int)
	// Unflatten restores the flags saved by Flatten.
	Unflatten()
	// PrettyValueAt returns a printable version of the value at logical row i.
	// It takes IsRepeating and the null markers into account. It is not meant
	// to be used in hot paths.
	PrettyValueAt(i int) string
}

// NewVec returns a new, empty vector of type t able to hold capacity rows.
func NewVec(t coltypes.T, capacity int) Vec {
	switch t {
	case coltypes.Long:
		return NewLongVec(capacity)
	case coltypes.Bytes:
		return NewBytesVec(capacity)
	case coltypes.Decimal:
		return NewDecimalVec(capacity)
	default:
		panic(fmt.Sprintf("unhandled type %s", t))
	}
}

// valueIdx maps a logical row to the physical index holding its value.
func (h *VecHeader) valueIdx(i int) int {
	if h.IsRepeating {
		return 0
	}
	return i
}

// LongVec is a column of int64 values. Booleans are stored as 0 and 1.
type LongVec struct {
	VecHeader
	Vector []int64
}

var _ Vec = &LongVec{}

// NewLongVec returns a new LongVec with the given capacity.
func NewLongVec(capacity int) *LongVec {
	return &LongVec{
		VecHeader: makeHeader(capacity),
		Vector:    make([]int64, capacity),
	}
}

// Type implements the Vec interface.
func (v *LongVec) Type() coltypes.T { return coltypes.Long }

// Fill sets the first size physical rows to value and clears their nulls.
func (v *LongVec) Fill(value int64, size int) {
	for i := 0; i < size; i++ {
		v.Vector[i] = value
		v.IsNull[i] = false
	}
}

// Flatten implements the Vec interface.
func (v *LongVec) Flatten(selectedInUse bool, sel []int, size int) {
	v.flattenPush()
	if v.IsRepeating {
		v.IsRepeating = false
		repeatVal := v.Vector[0]
		if selectedInUse {
			for _, i := range sel[:size] {
				v.Vector[i] = repeatVal
			}
		} else {
			for i := 0; i < size; i++ {
				v.Vector[i] = repeatVal
			}
		}
		v.flattenRepeatingNulls(selectedInUse, sel, size)
	}
	v.flattenNoNulls(selectedInUse, sel, size)
}

// PrettyValueAt implements the Vec interface.
func (v *LongVec) PrettyValueAt(i int) string {
	i = v.valueIdx(i)
	if v.NullAt(i) {
		return "NULL"
	}
	return strconv.FormatInt(v.Vector[i], 10)
}

// DecimalVec is a column of arbitrary-precision decimals. Precision and Scale
// describe the declared SQL type; the stored values are not forced to it.
type DecimalVec struct {
	VecHeader
	Vector    []apd.Decimal
	Precision int32
	Scale     int32
}

var _ Vec = &DecimalVec{}

// NewDecimalVec returns a new DecimalVec with the given capacity.
func NewDecimalVec(capacity int) *DecimalVec {
	return &DecimalVec{
		VecHeader: makeHeader(capacity),
		Vector:    make([]apd.Decimal, capacity),
	}
}

// Type implements the Vec interface.
func (v *DecimalVec) Type() coltypes.T { return coltypes.Decimal }

// Set copies d into physical row i.
func (v *DecimalVec) Set(i int, d *apd.Decimal) {
	v.Vector[i].Set(d)
}

// Flatten implements the Vec interface.
func (v *DecimalVec) Flatten(selectedInUse bool, sel []int, size int) {
	v.flattenPush()
	if v.IsRepeating {
		v.IsRepeating = false
		repeatVal := &v.Vector[0]
		if selectedInUse {
			for _, i := range sel[:size] {
				if i != 0 {
					v.Vector[i].Set(repeatVal)
				}
			}
		} else {
			for i := 1; i < size; i++ {
				v.Vector[i].Set(repeatVal)
			}
		}
		v.flattenRepeatingNulls(selectedInUse, sel, size)
	}
	v.flattenNoNulls(selectedInUse, sel, size)
}

// PrettyValueAt implements the Vec interface.
func (v *DecimalVec) PrettyValueAt(i int) string {
	i = v.valueIdx(i)
	if v.NullAt(i) {
		return "NULL"
	}
	return v.Vector[i].String()
}
