// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package colexpr

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/vecexpr/pkg/col/coldata"
	"github.com/cockroachdb/vecexpr/pkg/col/coltypes"
	"github.com/cockroachdb/vecexpr/pkg/sql/colexecerror"
)

// vecAt returns column idx of b as a V. A missing column or a column of
// another type is a wiring bug.
func vecAt[V coldata.Vec](b *coldata.Batch, idx int, want coltypes.T) V {
	if idx < 0 || idx >= b.Width() {
		colexecerror.InternalError(errors.AssertionFailedf(
			"column %d does not exist in a batch with %d columns", idx, b.Width(),
		))
	}
	v, ok := b.ColVec(idx).(V)
	if !ok {
		colexecerror.InternalError(errors.AssertionFailedf(
			"column %d is of type %s, expected %s", idx, b.ColVec(idx).Type(), want,
		))
	}
	return v
}

func bytesVecAt(b *coldata.Batch, idx int) *coldata.BytesVec {
	return vecAt[*coldata.BytesVec](b, idx, coltypes.Bytes)
}

func decimalVecAt(b *coldata.Batch, idx int) *coldata.DecimalVec {
	return vecAt[*coldata.DecimalVec](b, idx, coltypes.Decimal)
}

func longVecAt(b *coldata.Batch, idx int) *coldata.LongVec {
	return vecAt[*coldata.LongVec](b, idx, coltypes.Long)
}

// unsafeBytesToString returns a string aliasing b. The string must not be
// retained past the next modification of b.
func unsafeBytesToString(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}
