// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package colexpr

import "github.com/cockroachdb/vecexpr/pkg/col/coldata"

// Shape is one of the disjoint ways in which the active rows of a batch and
// the markers of an input vector can be laid out. Every unary expression
// picks the loop to run based on the shape, so that the loop itself has no
// per-row branches other than the null check.
type Shape int

const (
	// ShapeEmpty is a batch with no active rows.
	ShapeEmpty Shape = iota
	// ShapeNoNullsRepeating is a repeating input without nulls. Only row 0 is
	// computed.
	ShapeNoNullsRepeating
	// ShapeNoNullsSelected is an input without nulls under a selection vector.
	ShapeNoNullsSelected
	// ShapeNoNullsDense is an input without nulls whose active rows are
	// [0, Size).
	ShapeNoNullsDense
	// ShapeNullsRepeating is a repeating input that might be null.
	ShapeNullsRepeating
	// ShapeNullsIterate is an input with nulls, with or without a selection
	// vector.
	ShapeNullsIterate
)

var shapeNames = [...]string{
	ShapeEmpty:            "empty",
	ShapeNoNullsRepeating: "no-nulls/repeating",
	ShapeNoNullsSelected:  "no-nulls/selected",
	ShapeNoNullsDense:     "no-nulls/dense",
	ShapeNullsRepeating:   "nulls/repeating",
	ShapeNullsIterate:     "nulls/iterate",
}

func (s Shape) String() string {
	if s < 0 || int(s) >= len(shapeNames) {
		return "unknown"
	}
	return shapeNames[s]
}

// ClassifyBatch returns the shape of b as seen through the input vector with
// header in. Repeating takes precedence over the selection.
func ClassifyBatch(b *coldata.Batch, in *coldata.VecHeader) Shape {
	switch {
	case b.Size == 0:
		return ShapeEmpty
	case in.NoNulls && in.IsRepeating:
		return ShapeNoNullsRepeating
	case in.NoNulls && b.SelectedInUse:
		return ShapeNoNullsSelected
	case in.NoNulls:
		return ShapeNoNullsDense
	case in.IsRepeating:
		return ShapeNullsRepeating
	default:
		return ShapeNullsIterate
	}
}

// ProjectUnary runs apply on every active non-null row of b, in selection
// order, after deriving the markers of the output vector with header out from
// those of the input vector with header in:
//   - out.NoNulls and out.IsRepeating are copied from in;
//   - when in has nulls, the null flag of every active row is copied to out
//     and apply is skipped for the null rows.
//
// apply must write the output value of the given physical row and nothing
// else. It may mark the row null on out, provided it also clears the marker
// when the row is not null. Rows that are not active are never touched.
func ProjectUnary(b *coldata.Batch, in, out *coldata.VecHeader, apply func(i int)) {
	n := b.Size
	switch ClassifyBatch(b, in) {
	case ShapeEmpty:
		return

	case ShapeNoNullsRepeating:
		out.IsRepeating = true
		out.NoNulls = true
		apply(0)

	case ShapeNoNullsSelected:
		out.IsRepeating = false
		out.NoNulls = true
		for _, i := range b.Selected[:n] {
			apply(i)
		}

	case ShapeNoNullsDense:
		out.IsRepeating = false
		out.NoNulls = true
		for i := 0; i < n; i++ {
			apply(i)
		}

	case ShapeNullsRepeating:
		out.IsRepeating = true
		out.NoNulls = false
		out.IsNull[0] = in.IsNull[0]
		if !in.IsNull[0] {
			apply(0)
		}

	case ShapeNullsIterate:
		out.IsRepeating = false
		out.NoNulls = false
		inNulls, outNulls := in.IsNull, out.IsNull
		if b.SelectedInUse {
			for _, i := range b.Selected[:n] {
				outNulls[i] = inNulls[i]
				if !inNulls[i] {
					apply(i)
				}
			}
		} else {
			copy(outNulls[:n], inNulls[:n])
			for i := 0; i < n; i++ {
				if !inNulls[i] {
					apply(i)
				}
			}
		}
	}
}

// FilterUnary narrows the active rows of b to those that are not null in the
// input vector with header in and satisfy pred. The relative order of the
// surviving rows is preserved.
func FilterUnary(b *coldata.Batch, in *coldata.VecHeader, pred func(i int) bool) {
	n := b.Size
	switch ClassifyBatch(b, in) {
	case ShapeEmpty:
		return

	case ShapeNoNullsRepeating:
		if !pred(0) {
			b.Size = 0
		}

	case ShapeNullsRepeating:
		if in.IsNull[0] || !pred(0) {
			b.Size = 0
		}

	case ShapeNoNullsSelected:
		sel := b.Selected
		newSize := 0
		for _, i := range sel[:n] {
			if pred(i) {
				sel[newSize] = i
				newSize++
			}
		}
		b.Size = newSize

	case ShapeNoNullsDense:
		sel := b.Selected
		newSize := 0
		for i := 0; i < n; i++ {
			if pred(i) {
				sel[newSize] = i
				newSize++
			}
		}
		if newSize < n {
			b.Size = newSize
			b.SelectedInUse = true
		}

	case ShapeNullsIterate:
		sel, nulls := b.Selected, in.IsNull
		newSize := 0
		if b.SelectedInUse {
			for _, i := range sel[:n] {
				if !nulls[i] && pred(i) {
					sel[newSize] = i
					newSize++
				}
			}
			b.Size = newSize
		} else {
			for i := 0; i < n; i++ {
				if !nulls[i] && pred(i) {
					sel[newSize] = i
					newSize++
				}
			}
			if newSize < n {
				b.Size = newSize
				b.SelectedInUse = true
			}
		}
	}
}
